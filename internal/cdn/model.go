package cdn

// StoreConfig is the merchant-level widget configuration served from the CDN
// at <base>/<shop>/store.json.
type StoreConfig struct {
	IsStorefrontWidgetPublished bool `json:"isStorefrontWidgetPublished"`

	// WidgetMapping is themeID -> templateName -> widgetID.
	WidgetMapping      map[string]map[string]string `json:"widgetMapping"`
	StoreDefaultLocale string                       `json:"storeDefaultLocale"`

	APIURL APIEndpoints `json:"apiUrl"`
	// AuthToken authorizes the privileged API endpoints.
	AuthToken string `json:"sentinalAuthToken"`

	HasPrepaid                         bool `json:"hasPrepaid"`
	IsSellingPlanCountryMappingEnabled bool `json:"isSellingPlanCountryMappingEnabled"`
	HasPresetBundles                   bool `json:"hasPresetBundles"`

	PresetBundleProductIDs []int64 `json:"presetBundleShopifyProductIds"`
	ExcludedPlanIDs        []int64 `json:"shopifySellingPlanIdsToExcludeOnWidget"`
	BundlePlanIDs          []int64 `json:"bundleShopifySellingPlanIds"`
	DefaultPlanIDs         []int64 `json:"storeDefaultSellingPlanShopifyIds"`

	Preferences StorePreferences `json:"preferences"`
}

type APIEndpoints struct {
	PrepaidSellingPlans      string `json:"prepaidSellingPlans"`
	SellingPlanCountryFilter string `json:"sellingPlanCountryFilter"`
	BundleTransaction        string `json:"bundleTransaction"`
}

// StorePreferences are store-wide toggles, distinct from the per-widget
// preference list.
type StorePreferences struct {
	HideBundleSellingPlansOnProductPage bool `json:"hideBundleSellingPlansOnProductPage"`
	PresetDummySkuEnabled               bool `json:"presetDummySkuEnabled"`
	ShowBundleName                      bool `json:"showBundleName"`
}

// KeyValue is one entry of the per-widget preferences or texts lists.
type KeyValue struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

// WidgetID resolves the theme/template specific widget id, or "" when the
// mapping has no entry.
func (s *StoreConfig) WidgetID(themeID, templateName string) string {
	if templateName == "" {
		templateName = "default"
	}
	templates, ok := s.WidgetMapping[themeID]
	if !ok {
		return ""
	}
	return templates[templateName]
}

// IsBundleProduct reports whether the product is sold as a preset bundle.
func (s *StoreConfig) IsBundleProduct(productID int64) bool {
	if !s.HasPresetBundles {
		return false
	}
	for _, id := range s.PresetBundleProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
