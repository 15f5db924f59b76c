package platform

// Product is the platform-supplied product JSON. Immutable for the session
// once fetched.
type Product struct {
	ID                  int64              `json:"id"`
	RequiresSellingPlan bool               `json:"requires_selling_plan"`
	Variants            []Variant          `json:"variants"`
	SellingPlanGroups   []SellingPlanGroup `json:"selling_plan_groups"`
}

type Variant struct {
	ID                     int64                   `json:"id"`
	Price                  int64                   `json:"price"`
	CompareAtPrice         int64                   `json:"compare_at_price"`
	Available              bool                    `json:"available"`
	SellingPlanAllocations []SellingPlanAllocation `json:"selling_plan_allocations"`
}

// SellingPlanAllocation ties a selling plan to a variant with the computed
// per-order price in minor units.
type SellingPlanAllocation struct {
	SellingPlanGroupID string `json:"selling_plan_group_id"`
	SellingPlanID      int64  `json:"selling_plan_id"`
	Price              int64  `json:"price"`
}

type SellingPlanGroup struct {
	ID           string                   `json:"id"`
	AppID        string                   `json:"app_id"`
	Name         string                   `json:"name"`
	Options      []SellingPlanGroupOption `json:"options"`
	SellingPlans []SellingPlan            `json:"selling_plans"`
}

type SellingPlanGroupOption struct {
	Name string `json:"name"`
}

type SellingPlan struct {
	ID               int64               `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description"`
	Options          []SellingPlanOption `json:"options"`
	PriceAdjustments []PriceAdjustment   `json:"price_adjustments"`
}

type SellingPlanOption struct {
	Value string `json:"value"`
}

// Price adjustment value types the platform emits.
const (
	AdjustmentPrice       = "price"
	AdjustmentPercentage  = "percentage"
	AdjustmentFixedAmount = "fixed_amount"
)

// LoopAppID identifies selling plan groups owned by the subscription app;
// groups created by other apps are never rendered.
const LoopAppID = "5284869"

type PriceAdjustment struct {
	ValueType string `json:"value_type"`
	Value     int64  `json:"value"`
}

// OptionLabel returns the plan's frequency option value, falling back to the
// plan name when the platform sent no option metadata.
func (sp SellingPlan) OptionLabel() string {
	if len(sp.Options) > 0 && sp.Options[0].Value != "" {
		return sp.Options[0].Value
	}
	return sp.Name
}

// FrequencyLabel returns the group's option axis name ("Deliver every", ...).
func (g SellingPlanGroup) FrequencyLabel() string {
	if len(g.Options) > 0 {
		return g.Options[0].Name
	}
	return ""
}

func (g SellingPlanGroup) PlanByID(planID int64) (SellingPlan, bool) {
	for _, sp := range g.SellingPlans {
		if sp.ID == planID {
			return sp, true
		}
	}
	return SellingPlan{}, false
}

func (p *Product) VariantByID(variantID int64) (Variant, bool) {
	for _, v := range p.Variants {
		if v.ID == variantID {
			return v, true
		}
	}
	return Variant{}, false
}

func (p *Product) GroupByID(groupID string) (SellingPlanGroup, bool) {
	for _, g := range p.SellingPlanGroups {
		if g.ID == groupID {
			return g, true
		}
	}
	return SellingPlanGroup{}, false
}

// FirstAvailableVariantID returns the first in-stock variant, or the first
// variant when everything is sold out.
func (p *Product) FirstAvailableVariantID() int64 {
	for _, v := range p.Variants {
		if v.Available {
			return v.ID
		}
	}
	if len(p.Variants) > 0 {
		return p.Variants[0].ID
	}
	return 0
}

// PlanIDs flattens every selling plan id across all groups, in group order.
func (p *Product) PlanIDs() []int64 {
	var ids []int64
	for _, g := range p.SellingPlanGroups {
		for _, sp := range g.SellingPlans {
			ids = append(ids, sp.ID)
		}
	}
	return ids
}

func (v Variant) AllocationForPlan(planID int64) (SellingPlanAllocation, bool) {
	for _, a := range v.SellingPlanAllocations {
		if a.SellingPlanID == planID {
			return a, true
		}
	}
	return SellingPlanAllocation{}, false
}
