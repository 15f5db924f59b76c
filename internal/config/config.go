package config

import (
	"log"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the storefront context the widget runs against. Everything
// here is supplied by the host page environment, never fetched.
type Config struct {
	ShopDomain   string  `env:"SHOP_DOMAIN"`
	Locale       string  `env:"SHOP_LOCALE" envDefault:"en"`
	Country      string  `env:"SHOP_COUNTRY"`
	CurrencyCode string  `env:"SHOP_CURRENCY" envDefault:"USD"`
	CurrencyRate float64 `env:"SHOP_CURRENCY_RATE" envDefault:"1"`
	ThemeID      string  `env:"SHOP_THEME_ID"`
	TemplateName string  `env:"SHOP_TEMPLATE_NAME" envDefault:"default"`
	CartRoute    string  `env:"SHOP_CART_ROUTE" envDefault:"/"`
	CDNBaseURL   string  `env:"WIDGET_CDN_URL" envDefault:"https://cdn.loopwork.co"`
	AppEnv       string  `env:"APP_ENV" envDefault:"development"`
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("Environment variables not loaded properly: %v", err)
	}

	if cfg.ShopDomain == "" {
		log.Fatal("SHOP_DOMAIN is required")
	}

	return cfg
}
