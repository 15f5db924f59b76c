package bundle

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockTransactionCreator struct {
	mock.Mock
}

func (m *mockTransactionCreator) CreateBundleTransaction(ctx context.Context, req TransactionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func testBundle() *Data {
	return &Data{
		Name:         "Starter Kit",
		PurchaseType: PurchaseSubscription,
		Variants: []Variant{
			{
				ShopifyID:         101,
				OneTimePrice:      25,
				SellingPlanPrices: map[string]float64{"11": 20},
				MappedDiscounts: []MappedDiscount{
					{
						ID:              7,
						PurchaseType:    PurchaseSubscription,
						Type:            "PERCENTAGE",
						Value:           20,
						SellingPlanComputedDiscounts: map[string]float64{"11": 500},
					},
					{
						ID:              8,
						PurchaseType:    PurchaseOneTime,
						Type:            "FIXED",
						Value:           3,
						OneTimeDiscount: 300,
					},
				},
				MappedProductVariants: []ChildVariant{
					{ShopifyID: 201, Quantity: 2},
					{ShopifyID: 202, Quantity: 1},
				},
			},
			{ShopifyID: 102, OutOfStock: true},
		},
	}
}

func TestFlowPrepare(t *testing.T) {
	data := testBundle()

	creator := new(mockTransactionCreator)
	creator.On("CreateBundleTransaction", mock.Anything, TransactionRequest{
		ProductID:     1,
		VariantID:     101,
		SellingPlanID: 11,
		DiscountID:    7,
		Quantity:      2,
		PurchaseType:  PurchaseSubscription,
	}).Return("txn-1", nil)

	res, err := NewFlow(creator).Prepare(context.Background(), data, 1, 101, 11, 2)
	require.NoError(t, err)

	assert.Equal(t, "txn-1", res.TransactionID)
	assert.Equal(t, int64(7), res.Discount.ID)
	creator.AssertExpectations(t)
}

func TestFlowPrepareOneTimeDiscount(t *testing.T) {
	data := testBundle()

	creator := new(mockTransactionCreator)
	creator.On("CreateBundleTransaction", mock.Anything, mock.MatchedBy(func(req TransactionRequest) bool {
		return req.PurchaseType == PurchaseOneTime && req.DiscountID == 8
	})).Return("txn-2", nil)

	res, err := NewFlow(creator).Prepare(context.Background(), data, 1, 101, 0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(8), res.Discount.ID)
}

func TestFlowPrepareRejectsUnknownVariant(t *testing.T) {
	_, err := NewFlow(new(mockTransactionCreator)).Prepare(context.Background(), testBundle(), 1, 999, 11, 1)
	assert.ErrorIs(t, err, ErrVariantNotInBundle)
}

func TestFlowPrepareRejectsOutOfStock(t *testing.T) {
	_, err := NewFlow(new(mockTransactionCreator)).Prepare(context.Background(), testBundle(), 1, 102, 11, 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestFlowPrepareNoDiscountAborts(t *testing.T) {
	data := testBundle()
	data.Variants[0].MappedDiscounts = nil

	creator := new(mockTransactionCreator)
	_, err := NewFlow(creator).Prepare(context.Background(), data, 1, 101, 11, 1)

	assert.ErrorIs(t, err, ErrNoMatchingDiscount)
	creator.AssertNotCalled(t, "CreateBundleTransaction", mock.Anything, mock.Anything)
}

func TestFlowPrepareWrapsTransactionError(t *testing.T) {
	creator := new(mockTransactionCreator)
	creator.On("CreateBundleTransaction", mock.Anything, mock.Anything).
		Return("", errors.New("boom"))

	_, err := NewFlow(creator).Prepare(context.Background(), testBundle(), 1, 101, 11, 1)
	assert.ErrorIs(t, err, ErrTransactionFailed)
}

func TestVariantPrice(t *testing.T) {
	v := testBundle().Variants[0]

	assert.True(t, v.Price(11, 1).Equal(decimal.NewFromInt(2000)))
	assert.True(t, v.Price(0, 1).Equal(decimal.NewFromInt(2500)))
	assert.True(t, v.Price(11, 1.5).Equal(decimal.NewFromInt(3000)))

	// unknown plan has no bundle price
	assert.True(t, v.Price(99, 1).IsZero())
}

func TestComputedValueScalesByQuantity(t *testing.T) {
	d := testBundle().Variants[0].MappedDiscounts[0]

	assert.Equal(t, float64(1000), d.ComputedValue(11, 2, false))
	// a dummy-SKU cart holds one synthetic line, so no scaling
	assert.Equal(t, float64(500), d.ComputedValue(11, 2, true))
}

func TestMergeDiscountAttributes(t *testing.T) {
	existing := map[string]DiscountAttribute{
		"A": {DiscountType: "PERCENTAGE", DiscountValue: 10},
		"B": {DiscountType: "FIXED", DiscountValue: 5},
		"C": {DiscountType: "FIXED", DiscountValue: 2},
	}

	merged := MergeDiscountAttributes(existing, []string{"A", "B"}, "D", DiscountAttribute{
		DiscountType:  "PERCENTAGE",
		DiscountValue: 20,
	})

	assert.Len(t, merged, 3)
	assert.Contains(t, merged, "A")
	assert.Contains(t, merged, "B")
	assert.NotContains(t, merged, "C", "stale transactions must be dropped")
	assert.Equal(t, float64(20), merged["D"].DiscountValue)
}

func TestMergeDiscountAttributesEmptyExisting(t *testing.T) {
	merged := MergeDiscountAttributes(nil, nil, "T", DiscountAttribute{DiscountType: "FIXED"})

	require.Len(t, merged, 1)
	assert.Equal(t, "FIXED", merged["T"].DiscountType)
}
