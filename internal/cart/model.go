// Package cart submits the shopper's selection to the platform cart and
// orchestrates the add-to-cart flow end to end.
package cart

// Line item property and cart attribute keys. Underscore-prefixed keys are
// hidden from the shopper by platform convention.
const (
	PropBundleTxnID    = "_loopBundleTxnId"
	PropBundleID       = "_bundleId"
	PropPresetBundle   = "_isPresetBundleProduct"
	PropBundleName     = "bundleName"
	PropBundleNameHide = "_bundleName"

	AttrBundleDiscounts = "_loopBundleDiscountAttributes"
)

type LineItem struct {
	ID          int64             `json:"id"`
	Quantity    int64             `json:"quantity"`
	SellingPlan int64             `json:"selling_plan,omitempty"`
	Properties  map[string]string `json:"properties,omitempty"`
}

// Payload is the cart-add request body.
type Payload struct {
	Items      []LineItem        `json:"items"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// State mirrors the live cart: the line items' properties and the cart
// attributes, which is all the widget reads back.
type State struct {
	Items      []StateItem       `json:"items"`
	Attributes map[string]string `json:"attributes"`
}

type StateItem struct {
	Properties map[string]string `json:"properties"`
}

// BundleTxnIDs collects the bundle transaction ids still present on live
// line items.
func (s *State) BundleTxnIDs() []string {
	var ids []string
	for _, item := range s.Items {
		if id := item.Properties[PropBundleTxnID]; id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
