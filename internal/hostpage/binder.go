package hostpage

import (
	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

// Binder keeps the host form in sync with the selection: the hidden
// selling_plan field, the add-to-cart button label, and the out-of-stock
// lock for bundle variants. Register Apply as a machine listener.
type Binder struct {
	form  *Form
	model *widget.Model
}

func NewBinder(form *Form, model *widget.Model) *Binder {
	return &Binder{form: form, model: model}
}

func (b *Binder) Apply(state selection.State) {
	if state.Subscription() {
		b.form.SetSellingPlan(state.PlanID)
		b.form.SetButtonLabel(b.model.Text(widget.TextAddSubscriptionToCart))
	} else {
		b.form.ClearSellingPlan()
		b.form.SetButtonLabel(b.model.Text(widget.TextAddToCartButton))
	}

	if b.model.Bundle != nil {
		if bv, ok := b.model.Bundle.VariantByID(state.VariantID); ok && bv.OutOfStock {
			b.form.DisableButtons()
			b.form.SetButtonLabel(b.model.Text(widget.TextOutOfStock))
			return
		}
	}
	b.form.EnableButtons()
}
