// Package bundle models preset bundles: merchant-curated multi-item offers
// sold under one product id with their own discount rules, reserved
// server-side through a bundle transaction before checkout.
package bundle

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Purchase types a bundle can be restricted to.
const (
	PurchaseSubscription = "SUBSCRIPTION"
	PurchaseOneTime      = "ONETIME"
)

// Data is the CDN payload for one preset bundle product.
type Data struct {
	Name           string    `json:"name"`
	PurchaseType   string    `json:"purchaseType"`
	RedirectionURL string    `json:"redirectionUrl"`
	Variants       []Variant `json:"variants"`
}

// Variant is the bundle-side view of a product variant: its own pricing,
// stock state, discount mapping, and child composition.
type Variant struct {
	ShopifyID  int64 `json:"shopifyId"`
	OutOfStock bool  `json:"outOfStock"`

	// Prices are major units; multiply by 100 and the currency rate.
	OneTimePrice      float64            `json:"oneTimePrice"`
	SellingPlanPrices map[string]float64 `json:"sellingPlanPrices"`

	MappedDiscounts       []MappedDiscount `json:"mappedDiscounts"`
	MappedProductVariants []ChildVariant   `json:"mappedProductVariants"`
}

type MappedDiscount struct {
	ID           int64   `json:"id"`
	PurchaseType string  `json:"purchaseType"`
	Type         string  `json:"type"`
	Value        float64 `json:"value"`

	OneTimeDiscount              float64            `json:"oneTimeDiscount"`
	SellingPlanComputedDiscounts map[string]float64 `json:"sellingPlanComputedDiscounts"`
}

// ChildVariant is one component product of the bundle.
type ChildVariant struct {
	ShopifyID int64 `json:"shopifyId"`
	Quantity  int64 `json:"quantity"`
}

func (d *Data) VariantByID(variantID int64) (Variant, bool) {
	for _, v := range d.Variants {
		if v.ShopifyID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

// Price returns the bundle-discounted price in minor units at the given
// currency conversion rate: the subscription price for the plan, or the
// one-time price when planID is zero. Returns zero when the bundle has no
// price for the plan.
func (v Variant) Price(planID int64, rate float64) decimal.Decimal {
	var major float64
	if planID == 0 {
		major = v.OneTimePrice
	} else {
		major = v.SellingPlanPrices[strconv.FormatInt(planID, 10)]
	}

	return decimal.NewFromFloat(major).
		Mul(decimal.NewFromInt(100)).
		Mul(decimal.NewFromFloat(rate))
}

// MatchingDiscount resolves the discount entry for the purchase flavor:
// subscription when a plan is selected, anything else otherwise.
func (v Variant) MatchingDiscount(planID int64) (MappedDiscount, bool) {
	for _, d := range v.MappedDiscounts {
		if planID != 0 && d.PurchaseType == PurchaseSubscription {
			return d, true
		}
		if planID == 0 && d.PurchaseType != PurchaseSubscription {
			return d, true
		}
	}
	return MappedDiscount{}, false
}

// ComputedValue is the absolute discount applied to the cart: the
// plan-specific computed discount (or one-time discount), multiplied by the
// quantity unless the store sells bundles through a single dummy SKU.
func (d MappedDiscount) ComputedValue(planID int64, quantity int64, dummySKU bool) float64 {
	var base float64
	if planID != 0 {
		base = d.SellingPlanComputedDiscounts[strconv.FormatInt(planID, 10)]
	} else {
		base = d.OneTimeDiscount
	}

	if dummySKU {
		return base
	}
	return base * float64(quantity)
}
