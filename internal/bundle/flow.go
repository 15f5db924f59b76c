package bundle

import (
	"context"
	"fmt"

	"subscription-widget/internal/logger"

	"go.uber.org/zap"
)

// TransactionRequest reserves a bundle purchase server-side before the cart
// add. The returned transaction id travels on the line item so checkout can
// resolve the reservation.
type TransactionRequest struct {
	ProductID     int64  `json:"shopifyProductId"`
	VariantID     int64  `json:"shopifyVariantId"`
	SellingPlanID int64  `json:"shopifySellingPlanId,omitempty"`
	DiscountID    int64  `json:"presetDiscountId,omitempty"`
	Quantity      int64  `json:"quantity"`
	PurchaseType  string `json:"purchaseType"`
}

type TransactionCreator interface {
	CreateBundleTransaction(ctx context.Context, req TransactionRequest) (string, error)
}

// DiscountAttribute is the per-transaction discount record stored on the cart
// attributes so checkout scripts can reprice the bundle.
type DiscountAttribute struct {
	DiscountType          string  `json:"discountType"`
	DiscountValue         float64 `json:"discountValue"`
	DiscountComputedValue float64 `json:"discountComputedValue"`
}

// Result is everything the cart flow needs after a bundle reservation.
type Result struct {
	TransactionID string
	Variant       Variant
	Discount      MappedDiscount
}

// Flow runs the bundle half of an add-to-cart: validate the selection against
// the bundle composition, resolve the discount for the purchase flavor, and
// reserve the transaction.
type Flow struct {
	transactions TransactionCreator
}

func NewFlow(transactions TransactionCreator) *Flow {
	return &Flow{transactions: transactions}
}

func (f *Flow) Prepare(ctx context.Context, data *Data, productID, variantID, planID, quantity int64) (*Result, error) {
	v, ok := data.VariantByID(variantID)
	if !ok {
		return nil, ErrVariantNotInBundle
	}
	if v.OutOfStock {
		return nil, ErrOutOfStock
	}

	// No mapped discount for the purchase flavor means the bundle is not
	// sellable this way; abort before reserving anything.
	discount, ok := v.MatchingDiscount(planID)
	if !ok {
		return nil, ErrNoMatchingDiscount
	}

	purchaseType := PurchaseOneTime
	if planID != 0 {
		purchaseType = PurchaseSubscription
	}

	req := TransactionRequest{
		ProductID:     productID,
		VariantID:     variantID,
		SellingPlanID: planID,
		DiscountID:    discount.ID,
		Quantity:      quantity,
		PurchaseType:  purchaseType,
	}

	txnID, err := f.transactions.CreateBundleTransaction(ctx, req)
	if err != nil {
		logger.FromCtx(ctx).Warn("bundle transaction failed",
			zap.Int64("variant_id", variantID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrTransactionFailed, err)
	}

	return &Result{
		TransactionID: txnID,
		Variant:       v,
		Discount:      discount,
	}, nil
}

// MergeDiscountAttributes rebuilds the cart-level discount attribute map:
// entries for transactions no longer present in the live cart are dropped,
// and the new transaction is added. liveTxnIDs are the transaction ids found
// on the current cart's line items.
func MergeDiscountAttributes(existing map[string]DiscountAttribute, liveTxnIDs []string, txnID string, attr DiscountAttribute) map[string]DiscountAttribute {
	merged := make(map[string]DiscountAttribute, len(existing)+1)

	live := make(map[string]struct{}, len(liveTxnIDs))
	for _, id := range liveTxnIDs {
		live[id] = struct{}{}
	}

	for id, a := range existing {
		if _, ok := live[id]; ok {
			merged[id] = a
		}
	}
	merged[txnID] = attr

	return merged
}
