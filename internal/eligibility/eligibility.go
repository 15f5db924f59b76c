// Package eligibility computes which selling plan groups are visible for a
// variant. Filtering is a pipeline of pure stages over an immutable snapshot;
// stage order matters and must not change (the country stage assumes the
// candidate set was already narrowed to this app's groups).
package eligibility

import "subscription-widget/internal/platform"

// Snapshot is everything a filter pass needs, captured up front so no stage
// reads shared state mid-filter.
type Snapshot struct {
	Groups        []platform.SellingPlanGroup
	VariantGroups []string
	GroupToPlans  map[string][]int64
	AppID         string

	ExcludedPlanIDs   []int64
	BundleOnlyPlanIDs []int64
	HideBundlePlans   bool
	IsBundleProduct   bool

	CountryMappingEnabled bool
	// CountryEligiblePlanIDs is nil when the country filter fetch failed or
	// never ran; the country stage is skipped in that case. An empty non-nil
	// slice is an authoritative "nothing eligible" answer.
	CountryEligiblePlanIDs []int64
}

// VisibleGroups applies the filter stages in their fixed order, preserving
// the original group ordering from the product data.
func VisibleGroups(snap Snapshot) []platform.SellingPlanGroup {
	groups := filterOwnedAndAllocated(snap)
	groups = filterExcluded(snap, groups)
	groups = filterBundleOnly(snap, groups)
	groups = filterByCountry(snap, groups)
	return groups
}

// Stage 1: keep groups allocated to the variant and owned by this app.
func filterOwnedAndAllocated(snap Snapshot) []platform.SellingPlanGroup {
	allocated := toSet(snap.VariantGroups)

	var out []platform.SellingPlanGroup
	for _, g := range snap.Groups {
		if allocated[g.ID] && g.AppID == snap.AppID {
			out = append(out, g)
		}
	}
	return out
}

// Stage 2: drop groups whose plan set intersects the merchant exclusion list.
func filterExcluded(snap Snapshot, groups []platform.SellingPlanGroup) []platform.SellingPlanGroup {
	if len(snap.ExcludedPlanIDs) == 0 {
		return groups
	}

	var out []platform.SellingPlanGroup
	for _, g := range groups {
		if !hasCommonPlan(snap.GroupToPlans[g.ID], snap.ExcludedPlanIDs) {
			out = append(out, g)
		}
	}
	return out
}

// Stage 3: hide bundle-only groups on non-bundle product pages.
func filterBundleOnly(snap Snapshot, groups []platform.SellingPlanGroup) []platform.SellingPlanGroup {
	if !snap.HideBundlePlans || snap.IsBundleProduct {
		return groups
	}

	var out []platform.SellingPlanGroup
	for _, g := range groups {
		if !hasCommonPlan(snap.GroupToPlans[g.ID], snap.BundleOnlyPlanIDs) {
			out = append(out, g)
		}
	}
	return out
}

// Stage 4: keep only groups with at least one country-eligible plan.
func filterByCountry(snap Snapshot, groups []platform.SellingPlanGroup) []platform.SellingPlanGroup {
	if !snap.CountryMappingEnabled || snap.CountryEligiblePlanIDs == nil {
		return groups
	}

	var out []platform.SellingPlanGroup
	for _, g := range groups {
		if hasCommonPlan(snap.GroupToPlans[g.ID], snap.CountryEligiblePlanIDs) {
			out = append(out, g)
		}
	}
	return out
}

func hasCommonPlan(planIDs, candidates []int64) bool {
	set := make(map[int64]bool, len(candidates))
	for _, id := range candidates {
		set[id] = true
	}
	for _, id := range planIDs {
		if set[id] {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
