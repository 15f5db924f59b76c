package cart

import (
	"encoding/json"
	"strconv"

	"subscription-widget/internal/bundle"
	"subscription-widget/internal/selection"
	"subscription-widget/internal/widget"
)

// PayloadInput is everything the payload builder needs.
type PayloadInput struct {
	Model    *widget.Model
	State    selection.State
	Quantity int64

	// Bundle is the reservation result, nil for regular products.
	Bundle *bundle.Result
	// LiveCart is the current cart, used to prune stale bundle discount
	// attributes. May be nil.
	LiveCart *State
}

// BuildPayload assembles the cart-add request. Regular products produce one
// line item. Bundle products produce either a single dummy-SKU parent line or
// one exploded line per child variant, plus the merged discount attribute.
func BuildPayload(in PayloadInput) (Payload, error) {
	if in.Bundle == nil {
		return Payload{
			Items: []LineItem{{
				ID:          in.State.VariantID,
				Quantity:    in.Quantity,
				SellingPlan: in.State.PlanID,
			}},
		}, nil
	}
	return buildBundlePayload(in)
}

func buildBundlePayload(in PayloadInput) (Payload, error) {
	model := in.Model
	res := in.Bundle
	dummySKU := model.Store.Preferences.PresetDummySkuEnabled

	props := map[string]string{
		PropBundleTxnID:  res.TransactionID,
		PropBundleID:     strconv.FormatInt(model.Product.ID, 10),
		PropPresetBundle: "true",
	}
	nameKey := PropBundleNameHide
	if model.Store.Preferences.ShowBundleName {
		nameKey = PropBundleName
	}
	if model.Bundle.Name != "" {
		props[nameKey] = model.Bundle.Name
	}

	var items []LineItem
	if dummySKU {
		items = []LineItem{{
			ID:          in.State.VariantID,
			Quantity:    in.Quantity,
			SellingPlan: in.State.PlanID,
			Properties:  props,
		}}
	} else {
		for _, child := range res.Variant.MappedProductVariants {
			items = append(items, LineItem{
				ID:          child.ShopifyID,
				Quantity:    child.Quantity * in.Quantity,
				SellingPlan: in.State.PlanID,
				Properties:  props,
			})
		}
	}

	attrs, err := mergedDiscountAttributes(in, dummySKU)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		Items:      items,
		Attributes: map[string]string{AttrBundleDiscounts: attrs},
	}, nil
}

// mergedDiscountAttributes rebuilds the JSON-encoded discount attribute map:
// entries for transactions no longer in the live cart are dropped and the new
// reservation is added.
func mergedDiscountAttributes(in PayloadInput, dummySKU bool) (string, error) {
	existing := map[string]bundle.DiscountAttribute{}
	var liveTxnIDs []string
	if in.LiveCart != nil {
		liveTxnIDs = in.LiveCart.BundleTxnIDs()
		if raw := in.LiveCart.Attributes[AttrBundleDiscounts]; raw != "" {
			// a corrupt attribute starts the map fresh
			_ = json.Unmarshal([]byte(raw), &existing)
		}
	}

	res := in.Bundle
	merged := bundle.MergeDiscountAttributes(existing, liveTxnIDs, res.TransactionID, bundle.DiscountAttribute{
		DiscountType:          res.Discount.Type,
		DiscountValue:         res.Discount.Value,
		DiscountComputedValue: res.Discount.ComputedValue(in.State.PlanID, in.Quantity, dummySKU),
	})

	encoded, err := json.Marshal(merged)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
