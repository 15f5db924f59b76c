package platform

import (
	"strings"

	"subscription-widget/internal/config"
)

// AllCountries is the sentinel country code sent to the country filter when
// the storefront does not expose one.
const AllCountries = "__ALL__"

// Locales whose region suffix is meaningful for CDN text lookups; every other
// locale is reduced to its base language.
var localesWithRegion = []string{"zh-CN", "zh-TW", "pt-BR", "pt-PT"}

// Context is the storefront environment the widget runs in: one shop, one
// shopper locale, one currency. Built once from config.
type Context struct {
	ShopDomain   string
	Locale       string
	Country      string
	CurrencyCode string
	CurrencyRate float64
	ThemeID      string
	TemplateName string
	CartRoute    string
}

func NewContext(cfg *config.Config) Context {
	return Context{
		ShopDomain:   cfg.ShopDomain,
		Locale:       cfg.Locale,
		Country:      cfg.Country,
		CurrencyCode: cfg.CurrencyCode,
		CurrencyRate: cfg.CurrencyRate,
		ThemeID:      cfg.ThemeID,
		TemplateName: cfg.TemplateName,
		CartRoute:    cfg.CartRoute,
	}
}

// WidgetLocale returns the locale used for localized text lookups: regioned
// locales on the allowlist stay intact, everything else drops the region.
func (c Context) WidgetLocale() string {
	if c.Locale == "" {
		return ""
	}
	for _, l := range localesWithRegion {
		if c.Locale == l {
			return c.Locale
		}
	}
	return strings.SplitN(c.Locale, "-", 2)[0]
}

// FormatLocale returns the BCP 47 tag used for price formatting, appending
// the storefront country when the platform locale lacks a region.
func (c Context) FormatLocale() string {
	if strings.Contains(c.Locale, "-") {
		return c.Locale
	}
	if c.Country == "" {
		return c.Locale
	}
	return c.Locale + "-" + c.Country
}

// CountryOrAll returns the shopper country, or the all-countries sentinel.
func (c Context) CountryOrAll() string {
	if c.Country == "" {
		return AllCountries
	}
	return c.Country
}
