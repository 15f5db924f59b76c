// Package widget aggregates everything one product's purchase-option widget
// needs: platform product data, CDN configuration, privileged API lookups,
// and the derived plan indices.
package widget

import (
	"fmt"
	"strconv"

	"subscription-widget/internal/api"
	"subscription-widget/internal/bundle"
	"subscription-widget/internal/cdn"
	"subscription-widget/internal/eligibility"
	"subscription-widget/internal/planindex"
	"subscription-widget/internal/platform"
	"subscription-widget/internal/pricing"
)

// Widget layout types.
const (
	LayoutRadio       = "RADIO_GROUP"
	LayoutButtonGroup = "BUTTON_GROUP"
	LayoutCheckbox    = "CHECKBOX"
)

// Preference keys delivered in the per-widget preference list.
const (
	PrefLayoutType                  = "layoutType"
	PrefPurchaseOptionsOrder        = "purchaseOptionsOrder"
	PrefShowPurchaseOptionsLabel    = "showPurchaseOptionsLabel"
	PrefShowCompareAtPrice          = "showCompareAtPrice"
	PrefHideEachLabel               = "hideEachLabel"
	PrefShowDiscountBadge           = "showDiscountBadgeForSubscription"
	PrefShowFullPriceForPrepaid     = "showFullPriceForPrepaidPlans"
	PrefFrequencyOptions            = "sellingPlanFrequencyOptions"
	PrefPlanSelectorAsTextIfOnePlan = "showPlanSelectorAsTextIfOnePlanAvailable"
	PrefHideWidgetIfOnePlan         = "hideWidgetIfOnePlanAvailable"
	PrefAlwaysShowPlanDetails       = "alwaysShowSellingPlanDetails"
	PrefShowDetailsPopup            = "showSubscriptionDetailsPopup"
	PrefPurchaseOptionLabel         = "purchaseOptionLabel"
)

// Text keys delivered in the per-widget text list.
const (
	TextPurchaseOptionLabel     = "purchaseOptionLabel"
	TextOneTimePurchaseLabel    = "oneTimePurchaseLabel"
	TextOneTimeDescription      = "oneTimeDescriptionText"
	TextPriceLabel              = "priceLabelText"
	TextDiscountBadge           = "discountBadgeText"
	TextPrepaidFullPrice        = "prepaidFullPriceText"
	TextAddToCartButton         = "addToCartButtonText"
	TextAddSubscriptionToCart   = "addSubscriptionToCartButtonText"
	TextOutOfStock              = "outOfStockText"
	TextSubscriptionDetails     = "subscriptionDetailsText"
	TextSubscriptionDescription = "subscriptionDetailsDescription"
)

// Model is the fully aggregated widget state for one product. It is built
// once per product load and treated as read-only afterwards; selection state
// lives in the machine, not here.
type Model struct {
	Product  *platform.Product
	Store    *cdn.StoreConfig
	WidgetID string

	Texts       []cdn.KeyValue
	Preferences []cdn.KeyValue
	Styles      string

	PrepaidPlans map[int64]api.PrepaidPlanInfo
	// CountryEligiblePlanIDs is nil when the country fetch failed or never
	// ran, meaning the eligibility country stage is skipped.
	CountryEligiblePlanIDs []int64
	Bundle                 *bundle.Data

	Index    planindex.Index
	Platform platform.Context
}

// Text returns the widget text for the key, or "" when absent.
func (m *Model) Text(key string) string {
	return lookupString(m.Texts, key)
}

// StrPref returns the string preference for the key, or "" when absent.
func (m *Model) StrPref(key string) string {
	return lookupString(m.Preferences, key)
}

// BoolPref returns the boolean preference for the key. The CDN emits both
// real booleans and the strings "true"/"false".
func (m *Model) BoolPref(key string) bool {
	for _, kv := range m.Preferences {
		if kv.Key != key {
			continue
		}
		switch v := kv.Value.(type) {
		case bool:
			return v
		case string:
			b, err := strconv.ParseBool(v)
			return err == nil && b
		}
		return false
	}
	return false
}

func lookupString(list []cdn.KeyValue, key string) string {
	for _, kv := range list {
		if kv.Key == key {
			switch v := kv.Value.(type) {
			case string:
				return v
			case nil:
				return ""
			default:
				return fmt.Sprintf("%v", v)
			}
		}
	}
	return ""
}

// Prepaid returns the billing cadence for the plan, zero-valued for regular
// pay-per-delivery plans.
func (m *Model) Prepaid(planID int64) pricing.PrepaidInfo {
	info, ok := m.PrepaidPlans[planID]
	if !ok {
		return pricing.PrepaidInfo{}
	}
	return pricing.PrepaidInfo{
		DeliveryFrequency: info.DeliveriesPerBillingCycle,
		IsPrepaid:         info.IsPrepaidV2,
	}
}

// IsBundleProduct reports whether this product sells as a preset bundle.
func (m *Model) IsBundleProduct() bool {
	return m.Bundle != nil && m.Store.IsBundleProduct(m.Product.ID)
}

// DefaultPlanIDs are the merchant's preferred default plans: the store-wide
// defaults plus, on prepaid stores, plans flagged default in the prepaid
// metadata.
func (m *Model) DefaultPlanIDs() []int64 {
	ids := append([]int64(nil), m.Store.DefaultPlanIDs...)
	if m.Store.HasPrepaid {
		for id, info := range m.PrepaidPlans {
			if info.IsDefault && !containsInt64(ids, id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// EligibilitySnapshot captures the filter inputs for one variant.
func (m *Model) EligibilitySnapshot(variantID int64) eligibility.Snapshot {
	return eligibility.Snapshot{
		Groups:        m.Product.SellingPlanGroups,
		VariantGroups: m.Index.VariantToGroups[variantID],
		GroupToPlans:  m.Index.GroupToPlans,
		AppID:         platform.LoopAppID,

		ExcludedPlanIDs:   m.Store.ExcludedPlanIDs,
		BundleOnlyPlanIDs: m.Store.BundlePlanIDs,
		HideBundlePlans:   m.Store.Preferences.HideBundleSellingPlansOnProductPage,
		IsBundleProduct:   m.IsBundleProduct(),

		CountryMappingEnabled:  m.Store.IsSellingPlanCountryMappingEnabled,
		CountryEligiblePlanIDs: m.CountryEligiblePlanIDs,
	}
}

// VisibleGroups runs the eligibility pipeline for the variant.
func (m *Model) VisibleGroups(variantID int64) []platform.SellingPlanGroup {
	return eligibility.VisibleGroups(m.EligibilitySnapshot(variantID))
}

// ShouldRender decides widget visibility for the variant:
//   - no eligible groups hides the widget entirely;
//   - hideWidgetIfOnePlanAvailable hides it when exactly one plan exists
//     (the plan still auto-applies when the product requires a selling plan);
//   - the checkbox layout hides when the product requires a selling plan,
//     since the checkbox could never be unticked.
func (m *Model) ShouldRender(variantID int64) bool {
	groups := m.VisibleGroups(variantID)
	if len(groups) == 0 {
		return false
	}

	if m.BoolPref(PrefHideWidgetIfOnePlan) && len(groups) == 1 {
		plans := m.Index.GroupPlansForVariant(variantID, groups[0].ID)
		if len(plans) == 1 {
			return false
		}
	}

	if m.StrPref(PrefLayoutType) == LayoutCheckbox && m.Product.RequiresSellingPlan {
		return false
	}

	return true
}

func containsInt64(list []int64, n int64) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
