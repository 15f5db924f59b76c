package render

import (
	"strings"
	"testing"

	"subscription-widget/internal/api"
	"subscription-widget/internal/bundle"
	"subscription-widget/internal/cdn"
	"subscription-widget/internal/planindex"
	"subscription-widget/internal/platform"
	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testModel(prefs, texts []cdn.KeyValue) *widget.Model {
	product := &platform.Product{
		ID: 1,
		Variants: []platform.Variant{
			{
				ID:             101,
				Price:          2000,
				CompareAtPrice: 2500,
				Available:      true,
				SellingPlanAllocations: []platform.SellingPlanAllocation{
					{SellingPlanGroupID: "spg_a", SellingPlanID: 11, Price: 1800},
				},
			},
		},
		SellingPlanGroups: []platform.SellingPlanGroup{
			{
				ID:    "spg_a",
				AppID: platform.LoopAppID,
				Name:  "Subscribe & Save",
				SellingPlans: []platform.SellingPlan{
					{
						ID:   11,
						Name: "Deliver monthly",
						PriceAdjustments: []platform.PriceAdjustment{
							{ValueType: platform.AdjustmentPercentage, Value: 10},
						},
					},
				},
			},
		},
	}

	return &widget.Model{
		Product:     product,
		Store:       &cdn.StoreConfig{},
		Preferences: prefs,
		Texts:       texts,
		Index:       planindex.Build(product),
		Platform: platform.Context{
			ShopDomain:   "example.myshopify.com",
			Locale:       "en",
			CurrencyCode: "USD",
			CurrencyRate: 1,
		},
	}
}

func oneTimeState() selection.State {
	return selection.State{VariantID: 101}
}

func subscribedState() selection.State {
	return selection.State{VariantID: 101, GroupID: "spg_a", PlanID: 11}
}

func TestNewLayout(t *testing.T) {
	cases := map[string]any{
		widget.LayoutRadio:       &RadioLayout{},
		widget.LayoutButtonGroup: &ButtonGroupLayout{},
		widget.LayoutCheckbox:    &CheckboxLayout{},
		"":                       &RadioLayout{},
	}
	for pref, want := range cases {
		m := testModel([]cdn.KeyValue{{Key: widget.PrefLayoutType, Value: pref}}, nil)
		layout, err := NewLayout(m)
		require.NoError(t, err)
		assert.IsType(t, want, layout)
	}

	m := testModel([]cdn.KeyValue{{Key: widget.PrefLayoutType, Value: "MARQUEE"}}, nil)
	_, err := NewLayout(m)
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestRadioRender(t *testing.T) {
	model := testModel(
		[]cdn.KeyValue{{Key: widget.PrefShowDiscountBadge, Value: true}},
		[]cdn.KeyValue{
			{Key: widget.TextOneTimePurchaseLabel, Value: "Buy once"},
			{Key: widget.TextDiscountBadge, Value: "Save {{discount_value}}"},
		},
	)

	html, err := (&RadioLayout{}).Init(model, subscribedState())
	require.NoError(t, err)

	assert.Contains(t, html, `class="loop-widget"`)
	assert.Contains(t, html, "Subscribe &amp; Save")
	assert.Contains(t, html, "Buy once")
	assert.Contains(t, html, "$18.00", "per-delivery allocation price")
	assert.Contains(t, html, "Save 10%")
	assert.Contains(t, html, "Deliver monthly")
	assert.Contains(t, html, `data-group-id="spg_a"`)
}

func TestRadioSelectionMarkers(t *testing.T) {
	model := testModel(nil, nil)
	layout := &RadioLayout{}

	html, err := layout.Init(model, oneTimeState())
	require.NoError(t, err)
	assert.Contains(t, html, `value="" checked`)

	html, err = layout.OnPlanSelected(subscribedState())
	require.NoError(t, err)
	assert.Contains(t, html, `value="spg_a" checked`)
	assert.NotContains(t, html, `value="" checked`)
}

func TestRadioPurchaseOptionsOrder(t *testing.T) {
	model := testModel(nil, nil)

	html, err := (&RadioLayout{}).Init(model, oneTimeState())
	require.NoError(t, err)
	assert.Greater(t, strings.Index(html, "data-one-time"), strings.Index(html, `data-group-id="spg_a"`),
		"subscriptions render first by default")

	model = testModel([]cdn.KeyValue{
		{Key: widget.PrefPurchaseOptionsOrder, Value: "Display one-time purchase first"},
	}, nil)

	html, err = (&RadioLayout{}).Init(model, oneTimeState())
	require.NoError(t, err)
	assert.Less(t, strings.Index(html, "data-one-time"), strings.Index(html, `data-group-id="spg_a"`))
}

func TestRadioHidesOneTimeWhenPlanRequired(t *testing.T) {
	model := testModel(nil, nil)
	model.Product.RequiresSellingPlan = true

	html, err := (&RadioLayout{}).Init(model, subscribedState())
	require.NoError(t, err)
	assert.NotContains(t, html, "data-one-time")
}

func TestRadioCompareAtPrice(t *testing.T) {
	model := testModel([]cdn.KeyValue{
		{Key: widget.PrefShowCompareAtPrice, Value: true},
	}, nil)

	html, err := (&RadioLayout{}).Init(model, oneTimeState())
	require.NoError(t, err)
	assert.Contains(t, html, "$25.00")
	assert.Contains(t, html, "loop-widget-compare-at")
}

func TestRadioPrepaidFullPriceLine(t *testing.T) {
	model := testModel(
		[]cdn.KeyValue{{Key: widget.PrefShowFullPriceForPrepaid, Value: true}},
		[]cdn.KeyValue{{Key: widget.TextPrepaidFullPrice, Value: "{{prepaid_price}} for {{deliveries_per_charge}} deliveries"}},
	)
	model.PrepaidPlans = map[int64]api.PrepaidPlanInfo{
		11: {DeliveriesPerBillingCycle: 3, IsPrepaidV2: true},
	}

	html, err := (&RadioLayout{}).Init(model, subscribedState())
	require.NoError(t, err)
	assert.Contains(t, html, "$18.00 for 3 deliveries")
	assert.Contains(t, html, "$6.00", "per-delivery price for a 3-delivery prepaid charge")
}

func TestRadioPlanSelectorAsText(t *testing.T) {
	model := testModel([]cdn.KeyValue{
		{Key: widget.PrefPlanSelectorAsTextIfOnePlan, Value: true},
	}, nil)

	html, err := (&RadioLayout{}).Init(model, subscribedState())
	require.NoError(t, err)
	assert.Contains(t, html, "loop-widget-plan-text")
	assert.NotContains(t, html, "loop-widget-plan-select")
}

func TestButtonGroupRender(t *testing.T) {
	model := testModel([]cdn.KeyValue{
		{Key: widget.PrefLayoutType, Value: widget.LayoutButtonGroup},
		{Key: widget.PrefFrequencyOptions, Value: SelectorButton},
	}, nil)

	html, err := (&ButtonGroupLayout{}).Init(model, subscribedState())
	require.NoError(t, err)

	assert.Contains(t, html, `class="loop-w-btn-group"`)
	assert.Contains(t, html, "loop-w-btn-group-option-selected")
	assert.Contains(t, html, `data-plan-id="11"`)
	assert.Contains(t, html, "$18.00")
}

func TestButtonGroupPanelFollowsSelection(t *testing.T) {
	model := testModel(nil, nil)
	layout := &ButtonGroupLayout{}

	html, err := layout.Init(model, oneTimeState())
	require.NoError(t, err)
	assert.Contains(t, html, `loop-w-btn-group-panel" data-one-time`)

	html, err = layout.OnGroupSelected(subscribedState())
	require.NoError(t, err)
	assert.Contains(t, html, `loop-w-btn-group-panel" data-group-id="spg_a"`)
}

func TestCheckboxRender(t *testing.T) {
	model := testModel([]cdn.KeyValue{
		{Key: widget.PrefLayoutType, Value: widget.LayoutCheckbox},
	}, nil)
	layout := &CheckboxLayout{}

	html, err := layout.Init(model, oneTimeState())
	require.NoError(t, err)
	assert.Contains(t, html, `class="loop-w-checkbox"`)
	assert.NotContains(t, html, "checked")

	html, err = layout.OnGroupSelected(subscribedState())
	require.NoError(t, err)
	assert.Contains(t, html, "checked")
	assert.Contains(t, html, "loop-w-checkbox-plan-select")
}

func TestBundleNameShown(t *testing.T) {
	model := testModel(nil, nil)
	model.Store.HasPresetBundles = true
	model.Store.PresetBundleProductIDs = []int64{1}
	model.Store.Preferences.ShowBundleName = true
	model.Bundle = &bundle.Data{
		Name: "Starter Kit",
		Variants: []bundle.Variant{
			{ShopifyID: 101, OneTimePrice: 15, SellingPlanPrices: map[string]float64{"11": 12}},
		},
	}

	html, err := (&RadioLayout{}).Init(model, subscribedState())
	require.NoError(t, err)

	assert.Contains(t, html, "Starter Kit")
	assert.Contains(t, html, "$12.00", "bundle price replaces the allocation price")
}

func TestBindRerendersOnTransitions(t *testing.T) {
	model := testModel(nil, nil)
	layout := &RadioLayout{}
	machine := selection.NewMachine(model, 101)

	_, err := layout.Init(model, machine.Snapshot())
	require.NoError(t, err)

	var renders []string
	Bind(machine, layout, func(html string) { renders = append(renders, html) })

	machine.SelectGroup("spg_a")
	machine.SelectOneTime()

	require.Len(t, renders, 2)
	assert.Contains(t, renders[0], `value="spg_a" checked`)
	assert.Contains(t, renders[1], `value="" checked`)
}

func TestDetailsBlocks(t *testing.T) {
	texts := []cdn.KeyValue{
		{Key: widget.TextSubscriptionDetails, Value: "Cancel anytime"},
	}

	t.Run("always visible", func(t *testing.T) {
		model := testModel([]cdn.KeyValue{
			{Key: widget.PrefAlwaysShowPlanDetails, Value: true},
		}, texts)

		html, err := (&RadioLayout{}).Init(model, subscribedState())
		require.NoError(t, err)
		assert.Contains(t, html, "loop-widget-details")
		assert.Contains(t, html, "Cancel anytime")
	})

	t.Run("tooltip", func(t *testing.T) {
		model := testModel([]cdn.KeyValue{
			{Key: widget.PrefShowDetailsPopup, Value: true},
		}, texts)

		html, err := (&RadioLayout{}).Init(model, subscribedState())
		require.NoError(t, err)
		assert.Contains(t, html, "loop-widget-tooltip")
	})
}
