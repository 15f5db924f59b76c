package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"subscription-widget/internal/bundle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepaidPlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "11,12", r.URL.Query().Get("shopifyIds"))
		assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))

		w.Write([]byte(`{"data":{"sellingPlans":{
			"11":{"deliveriesPerBillingCycle":3,"isPrepaidV2":true,"isDefault":true},
			"12":{"deliveriesPerBillingCycle":1}
		}}}`))
	}))
	defer srv.Close()

	c := NewClient(Endpoints{PrepaidSellingPlans: srv.URL}, "token-1")

	plans, err := c.PrepaidPlans(context.Background(), []int64{11, 12})
	require.NoError(t, err)

	require.Len(t, plans, 2)
	assert.True(t, plans[11].IsPrepaidV2)
	assert.True(t, plans[11].IsDefault)
	assert.Equal(t, int64(3), plans[11].DeliveriesPerBillingCycle)
	assert.False(t, plans[12].IsPrepaidV2)
}

func TestPrepaidPlansEmptyInput(t *testing.T) {
	c := NewClient(Endpoints{PrepaidSellingPlans: "http://unused.invalid"}, "t")

	plans, err := c.PrepaidPlans(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, plans)
}

func TestCountryEligiblePlans(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body countryFilterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []int64{11, 12, 13}, body.SellingPlanShopifyIDs)
		assert.Equal(t, "CA", body.CountryCode)

		w.Write([]byte(`{"data":{"filteredSellingPlanShopifyIds":[11,13]}}`))
	}))
	defer srv.Close()

	c := NewClient(Endpoints{SellingPlanCountryFilter: srv.URL}, "t")

	ids, err := c.CountryEligiblePlans(context.Background(), []int64{11, 12, 13}, "CA")
	require.NoError(t, err)
	assert.Equal(t, []int64{11, 13}, ids)
}

func TestCreateBundleTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req bundle.TransactionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(101), req.VariantID)
		assert.Equal(t, bundle.PurchaseSubscription, req.PurchaseType)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"data":{"transactionId":"txn-42"}}`))
	}))
	defer srv.Close()

	c := NewClient(Endpoints{BundleTransaction: srv.URL}, "t")

	txnID, err := c.CreateBundleTransaction(context.Background(), bundle.TransactionRequest{
		ProductID:     1,
		VariantID:     101,
		SellingPlanID: 11,
		Quantity:      1,
		PurchaseType:  bundle.PurchaseSubscription,
	})
	require.NoError(t, err)
	assert.Equal(t, "txn-42", txnID)
}

func TestClientSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Endpoints{SellingPlanCountryFilter: srv.URL}, "t")

	_, err := c.CountryEligiblePlans(context.Background(), []int64{11}, "US")
	assert.ErrorIs(t, err, ErrRequestFailed)
}
