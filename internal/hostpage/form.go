// Package hostpage models the merchant storefront page the widget mounts
// into: the product form, its fields and buttons, and variant changes. The
// page is represented as data so integrations can back it with whatever
// rendering host they have.
package hostpage

import (
	"strconv"
	"strings"
)

// Field names the widget reads and writes on the product form.
const (
	FieldVariantID   = "id"
	FieldProductID   = "product-id"
	FieldQuantity    = "quantity"
	FieldSellingPlan = "selling_plan"
)

type Field struct {
	Name   string
	Value  string
	Hidden bool
}

type Button struct {
	Label    string
	Disabled bool
}

// Form is one form element on the page.
type Form struct {
	Action  string
	ID      string
	Class   string
	Fields  []*Field
	Buttons []*Button
}

// Page is the host document: its forms and the request URL query.
type Page struct {
	Forms []*Form
	Query map[string]string
}

// Third-party financing forms also post to cart routes; they are never the
// product form.
var excludeKeywords = []string{"installment", "installation"}

func excluded(f *Form) bool {
	haystack := strings.ToLower(f.Action + " " + f.ID + " " + f.Class)
	for _, kw := range excludeKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// FindProductForm locates the add-to-cart form using prioritized heuristics:
// cart-add forms narrowed by product id, then by variant id, then any
// cart-add form, then forms that merely look like product forms. Financing
// forms are always skipped.
func FindProductForm(page *Page, productID, variantID int64) *Form {
	matchers := []func(*Form) bool{
		func(f *Form) bool {
			return isCartAddForm(f) && fieldEqualsInt(f, FieldProductID, productID)
		},
		func(f *Form) bool {
			return isCartAddForm(f) && fieldEqualsInt(f, FieldVariantID, variantID)
		},
		isCartAddForm,
		func(f *Form) bool {
			return strings.Contains(strings.ToLower(f.ID), "product-form") ||
				strings.Contains(strings.ToLower(f.Class), "product-form")
		},
		func(f *Form) bool {
			return f.Field(FieldVariantID) != nil && fieldEqualsInt(f, FieldProductID, productID)
		},
		func(f *Form) bool {
			return f.Field(FieldVariantID) != nil
		},
	}

	for _, match := range matchers {
		for _, f := range page.Forms {
			if excluded(f) {
				continue
			}
			if match(f) {
				return f
			}
		}
	}
	return nil
}

func isCartAddForm(f *Form) bool {
	return strings.Contains(f.Action, "/cart/add")
}

func fieldEqualsInt(f *Form, name string, want int64) bool {
	field := f.Field(name)
	if field == nil {
		return false
	}
	got, err := strconv.ParseInt(field.Value, 10, 64)
	return err == nil && got == want
}

// Field returns the first field with the name, or nil.
func (f *Form) Field(name string) *Field {
	for _, field := range f.Fields {
		if field.Name == name {
			return field
		}
	}
	return nil
}

// Quantity reads the form quantity, defaulting to 1 when the field is
// missing or unparsable.
func (f *Form) Quantity() int64 {
	field := f.Field(FieldQuantity)
	if field == nil {
		return 1
	}
	qty, err := strconv.ParseInt(field.Value, 10, 64)
	if err != nil || qty < 1 {
		return 1
	}
	return qty
}

// SetSellingPlan writes the hidden selling_plan field, injecting it when the
// theme's form does not carry one.
func (f *Form) SetSellingPlan(planID int64) {
	value := strconv.FormatInt(planID, 10)
	if field := f.Field(FieldSellingPlan); field != nil {
		field.Value = value
		return
	}
	f.Fields = append(f.Fields, &Field{Name: FieldSellingPlan, Value: value, Hidden: true})
}

// ClearSellingPlan blanks the field rather than removing it, so themes that
// read it keep working.
func (f *Form) ClearSellingPlan() {
	if field := f.Field(FieldSellingPlan); field != nil {
		field.Value = ""
	}
}

// SellingPlanID returns the selling plan on the form, 0 when none.
func (f *Form) SellingPlanID() int64 {
	field := f.Field(FieldSellingPlan)
	if field == nil || field.Value == "" {
		return 0
	}
	id, err := strconv.ParseInt(field.Value, 10, 64)
	if err != nil {
		return 0
	}
	return id
}

// DisableButtons disables every add-to-cart button.
func (f *Form) DisableButtons() {
	for _, b := range f.Buttons {
		b.Disabled = true
	}
}

// EnableButtons re-enables every add-to-cart button.
func (f *Form) EnableButtons() {
	for _, b := range f.Buttons {
		b.Disabled = false
	}
}

// SetButtonLabel syncs the label on every add-to-cart button.
func (f *Form) SetButtonLabel(label string) {
	if label == "" {
		return
	}
	for _, b := range f.Buttons {
		b.Label = label
	}
}
