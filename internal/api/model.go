package api

// Endpoints are the privileged API URLs published in the store config.
type Endpoints struct {
	PrepaidSellingPlans      string
	SellingPlanCountryFilter string
	BundleTransaction        string
}

// PrepaidPlanInfo describes billing cadence for one selling plan.
type PrepaidPlanInfo struct {
	DeliveriesPerBillingCycle int64 `json:"deliveriesPerBillingCycle"`
	IsPrepaidV2               bool  `json:"isPrepaidV2"`
	IsDefault                 bool  `json:"isDefault"`
}

type prepaidPlansResponse struct {
	Data struct {
		SellingPlans map[string]PrepaidPlanInfo `json:"sellingPlans"`
	} `json:"data"`
}

type countryFilterRequest struct {
	SellingPlanShopifyIDs []int64 `json:"sellingPlanShopifyIds"`
	CountryCode           string  `json:"countryCode"`
}

type countryFilterResponse struct {
	Data struct {
		FilteredSellingPlanShopifyIDs []int64 `json:"filteredSellingPlanShopifyIds"`
	} `json:"data"`
}

type bundleTransactionResponse struct {
	Data struct {
		TransactionID string `json:"transactionId"`
	} `json:"data"`
}
