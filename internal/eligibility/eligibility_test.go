package eligibility

import (
	"testing"

	"subscription-widget/internal/platform"

	"github.com/stretchr/testify/assert"
)

const appID = "5284869"

func baseSnapshot() Snapshot {
	return Snapshot{
		Groups: []platform.SellingPlanGroup{
			{ID: "spg_a", AppID: appID, Name: "Monthly"},
			{ID: "spg_b", AppID: appID, Name: "Weekly"},
			{ID: "spg_other", AppID: "999", Name: "Rival app"},
		},
		VariantGroups: []string{"spg_a", "spg_b", "spg_other"},
		GroupToPlans: map[string][]int64{
			"spg_a":     {11, 12},
			"spg_b":     {21},
			"spg_other": {91},
		},
		AppID: appID,
	}
}

func groupIDs(groups []platform.SellingPlanGroup) []string {
	ids := make([]string, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}
	return ids
}

func TestVisibleGroupsOwnership(t *testing.T) {
	got := VisibleGroups(baseSnapshot())
	assert.Equal(t, []string{"spg_a", "spg_b"}, groupIDs(got))
}

func TestVisibleGroupsUnallocatedVariant(t *testing.T) {
	snap := baseSnapshot()
	snap.VariantGroups = []string{"spg_b"}

	got := VisibleGroups(snap)
	assert.Equal(t, []string{"spg_b"}, groupIDs(got))
}

func TestVisibleGroupsMerchantExclusion(t *testing.T) {
	snap := baseSnapshot()
	snap.ExcludedPlanIDs = []int64{12}

	got := VisibleGroups(snap)
	assert.Equal(t, []string{"spg_b"}, groupIDs(got))

	// Invariant: no surviving group intersects the exclusion list.
	for _, g := range got {
		for _, planID := range snap.GroupToPlans[g.ID] {
			assert.NotContains(t, snap.ExcludedPlanIDs, planID)
		}
	}
}

func TestVisibleGroupsBundleOnly(t *testing.T) {
	snap := baseSnapshot()
	snap.HideBundlePlans = true
	snap.BundleOnlyPlanIDs = []int64{21}

	t.Run("hidden on regular product", func(t *testing.T) {
		got := VisibleGroups(snap)
		assert.Equal(t, []string{"spg_a"}, groupIDs(got))
	})

	t.Run("kept on bundle product", func(t *testing.T) {
		bundleSnap := snap
		bundleSnap.IsBundleProduct = true
		got := VisibleGroups(bundleSnap)
		assert.Equal(t, []string{"spg_a", "spg_b"}, groupIDs(got))
	})
}

func TestVisibleGroupsCountryFilter(t *testing.T) {
	snap := baseSnapshot()
	snap.CountryMappingEnabled = true

	t.Run("keeps intersecting groups", func(t *testing.T) {
		s := snap
		s.CountryEligiblePlanIDs = []int64{11}
		got := VisibleGroups(s)
		assert.Equal(t, []string{"spg_a"}, groupIDs(got))
	})

	t.Run("nil means filter skipped", func(t *testing.T) {
		s := snap
		s.CountryEligiblePlanIDs = nil
		got := VisibleGroups(s)
		assert.Equal(t, []string{"spg_a", "spg_b"}, groupIDs(got))
	})

	t.Run("empty non-nil filters everything", func(t *testing.T) {
		s := snap
		s.CountryEligiblePlanIDs = []int64{}
		got := VisibleGroups(s)
		assert.Empty(t, got)
	})
}

func TestVisibleGroupsPreservesOrdering(t *testing.T) {
	snap := baseSnapshot()
	snap.Groups = []platform.SellingPlanGroup{
		{ID: "spg_b", AppID: appID},
		{ID: "spg_a", AppID: appID},
	}

	got := VisibleGroups(snap)
	assert.Equal(t, []string{"spg_b", "spg_a"}, groupIDs(got))
}
