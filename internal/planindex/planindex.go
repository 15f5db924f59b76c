// Package planindex derives fast lookup maps from a product's variant/plan
// allocation graph. Indices are rebuilt wholesale on every product load;
// there is no incremental update path.
package planindex

import "subscription-widget/internal/platform"

// Index holds the derived allocation maps. Every id present here exists in
// the product collections it was built from.
type Index struct {
	// VariantToGroups maps variant id -> allocated group ids, in first-seen order.
	VariantToGroups map[int64][]string
	// VariantToGroupPlans maps variant id -> group id -> plan ids.
	VariantToGroupPlans map[int64]map[string][]int64
	// GroupToPlans maps group id -> plan ids across all variants.
	GroupToPlans map[string][]int64
}

// Build walks every variant's allocations once, de-duplicating repeated
// (group, plan) pairs.
func Build(product *platform.Product) Index {
	idx := Index{
		VariantToGroups:     make(map[int64][]string),
		VariantToGroupPlans: make(map[int64]map[string][]int64),
		GroupToPlans:        make(map[string][]int64),
	}

	for _, variant := range product.Variants {
		idx.VariantToGroups[variant.ID] = []string{}
		idx.VariantToGroupPlans[variant.ID] = make(map[string][]int64)

		for _, alloc := range variant.SellingPlanAllocations {
			groupID := alloc.SellingPlanGroupID

			if !containsString(idx.VariantToGroups[variant.ID], groupID) {
				idx.VariantToGroups[variant.ID] = append(idx.VariantToGroups[variant.ID], groupID)
			}
			if !containsInt64(idx.VariantToGroupPlans[variant.ID][groupID], alloc.SellingPlanID) {
				idx.VariantToGroupPlans[variant.ID][groupID] = append(idx.VariantToGroupPlans[variant.ID][groupID], alloc.SellingPlanID)
			}
			if !containsInt64(idx.GroupToPlans[groupID], alloc.SellingPlanID) {
				idx.GroupToPlans[groupID] = append(idx.GroupToPlans[groupID], alloc.SellingPlanID)
			}
		}
	}

	return idx
}

// GroupPlansForVariant returns the plan ids the group offers on the variant.
func (idx Index) GroupPlansForVariant(variantID int64, groupID string) []int64 {
	groups, ok := idx.VariantToGroupPlans[variantID]
	if !ok {
		return nil
	}
	return groups[groupID]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsInt64(list []int64, n int64) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
