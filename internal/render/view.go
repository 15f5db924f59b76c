// Package render turns an aggregated widget model plus the current selection
// into layout HTML. All selection and pricing logic lives in the shared view
// builder; each layout owns only its markup and CSS class namespace.
package render

import (
	"strconv"
	"strings"

	"subscription-widget/internal/platform"
	"subscription-widget/internal/pricing"
	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

// Plan selector styles.
const (
	SelectorDropdown = "DROPDOWN"
	SelectorButton   = "BUTTON"
	SelectorText     = "TEXT"
)

// Merchant preference value that flips the option order. Subscriptions
// render first unless this exact value is configured.
const orderOneTimeFirst = "Display one-time purchase first"

// View is the layout-independent render input.
type View struct {
	Label     string
	ShowLabel bool
	// OneTimeFirst orders the one-time option ahead of subscriptions.
	OneTimeFirst bool

	// OneTime is nil when the product requires a selling plan.
	OneTime *OneTimeOption
	Groups  []GroupOption

	BundleName string

	Details            string
	DetailsDescription string
	AlwaysShowDetails  bool
	DetailsPopup       bool
}

type OneTimeOption struct {
	Label       string
	Description string
	Price       string
	CompareAt   string
	Selected    bool
}

type GroupOption struct {
	ID             string
	Name           string
	FrequencyLabel string
	Selected       bool
	SelectorStyle  string
	Plans          []PlanOption
}

type PlanOption struct {
	ID            int64
	Label         string
	Price         string
	FullPriceLine string
	Badge         string
	Selected      bool
}

// BuildView computes the shared render input for any layout.
func BuildView(model *widget.Model, state selection.State) View {
	formatter := pricing.NewFormatter(model.Platform)
	calc := pricing.NewCalculator(formatter)

	variant, _ := model.Product.VariantByID(state.VariantID)
	groups := model.VisibleGroups(state.VariantID)

	view := View{
		Label:        model.Text(widget.TextPurchaseOptionLabel),
		ShowLabel:    model.BoolPref(widget.PrefShowPurchaseOptionsLabel),
		OneTimeFirst: model.StrPref(widget.PrefPurchaseOptionsOrder) == orderOneTimeFirst,

		Details:            model.Text(widget.TextSubscriptionDetails),
		DetailsDescription: model.Text(widget.TextSubscriptionDescription),
		AlwaysShowDetails:  model.BoolPref(widget.PrefAlwaysShowPlanDetails),
		DetailsPopup:       model.BoolPref(widget.PrefShowDetailsPopup),
	}

	if model.IsBundleProduct() && model.Store.Preferences.ShowBundleName {
		view.BundleName = model.Bundle.Name
	}

	if !model.Product.RequiresSellingPlan {
		view.OneTime = buildOneTime(model, formatter, variant, state)
	}

	for _, g := range groups {
		view.Groups = append(view.Groups, buildGroup(model, calc, variant, state, g))
	}
	return view
}

func buildOneTime(model *widget.Model, formatter *pricing.Formatter, variant platform.Variant, state selection.State) *OneTimeOption {
	opt := &OneTimeOption{
		Label:       model.Text(widget.TextOneTimePurchaseLabel),
		Description: model.Text(widget.TextOneTimeDescription),
		Selected:    !state.Subscription(),
	}
	if opt.Label == "" {
		opt.Label = "One-time purchase"
	}

	price := variant.Price
	if model.IsBundleProduct() {
		if bv, ok := model.Bundle.VariantByID(variant.ID); ok {
			opt.Price = formatter.FormatMinorDecimal(bv.Price(0, model.Platform.CurrencyRate))
		}
	}
	if opt.Price == "" {
		opt.Price = formatter.FormatMinor(price)
	}

	if model.BoolPref(widget.PrefShowCompareAtPrice) && variant.CompareAtPrice > variant.Price {
		opt.CompareAt = formatter.FormatMinor(variant.CompareAtPrice)
	}
	return opt
}

func buildGroup(model *widget.Model, calc *pricing.Calculator, variant platform.Variant, state selection.State, g platform.SellingPlanGroup) GroupOption {
	opt := GroupOption{
		ID:             g.ID,
		Name:           g.Name,
		FrequencyLabel: g.FrequencyLabel(),
		Selected:       state.GroupID == g.ID,
	}

	planIDs := model.Index.GroupPlansForVariant(variant.ID, g.ID)
	for _, planID := range planIDs {
		plan, ok := g.PlanByID(planID)
		if !ok {
			continue
		}
		opt.Plans = append(opt.Plans, buildPlan(model, calc, variant, state, plan))
	}

	opt.SelectorStyle = selectorStyle(model, len(opt.Plans))
	return opt
}

func buildPlan(model *widget.Model, calc *pricing.Calculator, variant platform.Variant, state selection.State, plan platform.SellingPlan) PlanOption {
	formatter := calc.Formatter()
	prepaid := model.Prepaid(plan.ID)

	opt := PlanOption{
		ID:       plan.ID,
		Label:    plan.OptionLabel(),
		Selected: state.PlanID == plan.ID,
	}

	allocPrice := variant.Price
	if alloc, ok := variant.AllocationForPlan(plan.ID); ok {
		allocPrice = alloc.Price
	}

	in := pricing.DiscountInput{
		Plan:    plan,
		Variant: variant,
		Prepaid: prepaid,
	}
	if model.IsBundleProduct() {
		if bv, ok := model.Bundle.VariantByID(variant.ID); ok {
			in.IsBundle = true
			in.BundlePrice = bv.Price(plan.ID, model.Platform.CurrencyRate)
			opt.Price = formatter.FormatMinorDecimal(in.BundlePrice)
		}
	}
	if opt.Price == "" {
		opt.Price = formatter.FormatMinorDecimal(pricing.PerDeliveryPrice(allocPrice, prepaid))
	}

	if discount := calc.ComputeDiscount(in); discount.Positive() &&
		model.BoolPref(widget.PrefShowDiscountBadge) {
		opt.Badge = discountBadge(model, discount)
	}

	if prepaid.IsPrepaid && model.BoolPref(widget.PrefShowFullPriceForPrepaid) {
		opt.FullPriceLine = prepaidFullPriceLine(model, formatter, allocPrice, prepaid)
	}
	return opt
}

func selectorStyle(model *widget.Model, planCount int) string {
	if planCount == 1 && model.BoolPref(widget.PrefPlanSelectorAsTextIfOnePlan) {
		return SelectorText
	}
	if model.StrPref(widget.PrefFrequencyOptions) == SelectorButton {
		return SelectorButton
	}
	return SelectorDropdown
}

func discountBadge(model *widget.Model, discount pricing.Discount) string {
	tpl := model.Text(widget.TextDiscountBadge)
	if tpl == "" {
		return discount.Label
	}
	return strings.ReplaceAll(tpl, "{{discount_value}}", discount.Label)
}

func prepaidFullPriceLine(model *widget.Model, formatter *pricing.Formatter, allocPrice int64, prepaid pricing.PrepaidInfo) string {
	tpl := model.Text(widget.TextPrepaidFullPrice)
	if tpl == "" {
		return ""
	}
	line := strings.ReplaceAll(tpl, "{{prepaid_price}}", formatter.FormatMinor(allocPrice))
	return strings.ReplaceAll(line, "{{deliveries_per_charge}}", strconv.FormatInt(prepaid.DeliveryFrequency, 10))
}
