// Package pricing computes displayed prices, discount amounts, and discount
// labels for a (variant, plan, bundle-context) triple.
package pricing

import (
	"fmt"

	"subscription-widget/internal/platform"

	"github.com/shopspring/decimal"
)

// PrepaidInfo is the delivery cadence of a prepaid selling plan. Zero value
// means "not prepaid, one delivery per charge".
type PrepaidInfo struct {
	DeliveryFrequency int64
	IsPrepaid         bool
}

func (p PrepaidInfo) frequency() decimal.Decimal {
	if p.DeliveryFrequency <= 0 {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(p.DeliveryFrequency)
}

// DiscountInput is an immutable view of everything a discount computation
// reads. BundlePrice is in minor units and zero when the product has no
// bundle pricing for the plan.
type DiscountInput struct {
	Plan        platform.SellingPlan
	Variant     platform.Variant
	IsBundle    bool
	BundlePrice decimal.Decimal
	Prepaid     PrepaidInfo
}

// Discount is the computed saving. Amount is percentage points for
// percentage-shaped discounts and minor units for amount-shaped ones; Label
// is shopper-facing either way.
type Discount struct {
	Amount decimal.Decimal
	Label  string
}

// Positive reports whether the discount is worth showing a badge for.
func (d Discount) Positive() bool {
	return d.Amount.IsPositive()
}

type Calculator struct {
	formatter *Formatter
}

func NewCalculator(formatter *Formatter) *Calculator {
	return &Calculator{formatter: formatter}
}

func (c *Calculator) Formatter() *Formatter {
	return c.formatter
}

// ComputeDiscount applies the rules in priority order: preset-bundle pricing
// beats everything, then the plan's price-adjustment type decides.
func (c *Calculator) ComputeDiscount(in DiscountInput) Discount {
	variantPrice := decimal.NewFromInt(in.Variant.Price)
	if variantPrice.IsZero() {
		return Discount{Amount: decimal.Zero, Label: ""}
	}

	if in.IsBundle {
		bundlePrice := in.BundlePrice
		if bundlePrice.IsZero() {
			bundlePrice = variantPrice
		}
		pct := percentOff(variantPrice, bundlePrice)
		return Discount{Amount: pct, Label: fmt.Sprintf("%s%%", pct)}
	}

	if len(in.Plan.PriceAdjustments) == 0 {
		return Discount{Amount: decimal.Zero, Label: ""}
	}

	adj := in.Plan.PriceAdjustments[0]
	value := decimal.NewFromInt(adj.Value)

	switch adj.ValueType {
	case platform.AdjustmentPrice:
		if in.Prepaid.IsPrepaid {
			perDelivery := value.Div(in.Prepaid.frequency())
			pct := percentOff(variantPrice, perDelivery)
			return Discount{Amount: pct, Label: fmt.Sprintf("%s%%", pct)}
		}
		amount := variantPrice.Sub(value)
		return Discount{Amount: amount, Label: c.formatter.FormatMinorDecimal(amount)}

	case platform.AdjustmentPercentage:
		return Discount{Amount: value, Label: fmt.Sprintf("%s%%", value)}

	case platform.AdjustmentFixedAmount:
		return Discount{Amount: value, Label: c.formatter.FormatMinorDecimal(value)}
	}

	return Discount{Amount: decimal.Zero, Label: ""}
}

// PerDeliveryPrice divides an allocation price across a prepaid plan's
// deliveries per billing cycle.
func PerDeliveryPrice(allocationPrice int64, prepaid PrepaidInfo) decimal.Decimal {
	return decimal.NewFromInt(allocationPrice).Div(prepaid.frequency())
}

// percentOff returns round(100 * (base - reduced) / base).
func percentOff(base, reduced decimal.Decimal) decimal.Decimal {
	return base.Sub(reduced).
		Div(base).
		Mul(decimal.NewFromInt(100)).
		Round(0)
}
