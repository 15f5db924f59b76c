package pricing

import (
	"subscription-widget/internal/platform"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// One store renders whole-unit prices only; everything else keeps the usual
// two fraction digits.
const noFractionShopDomain = "rebuilt-performance.myshopify.com"

var minorUnitsPerMajor = decimal.NewFromInt(100)

// Formatter renders minor-unit amounts in the shopper's locale and currency.
type Formatter struct {
	printer     *message.Printer
	unit        currency.Unit
	noFractions bool
}

func NewFormatter(ctx platform.Context) *Formatter {
	tag, err := language.Parse(ctx.FormatLocale())
	if err != nil {
		tag = language.English
	}

	unit, err := currency.ParseISO(ctx.CurrencyCode)
	if err != nil {
		unit = currency.USD
	}

	return &Formatter{
		printer:     message.NewPrinter(tag),
		unit:        unit,
		noFractions: ctx.ShopDomain == noFractionShopDomain,
	}
}

// FormatMinor renders an amount given in minor units (cents).
func (f *Formatter) FormatMinor(minor int64) string {
	return f.FormatMinorDecimal(decimal.NewFromInt(minor))
}

// FormatMinorDecimal renders a fractional minor-unit amount, as produced by
// prepaid per-delivery division or bundle rate conversion.
func (f *Formatter) FormatMinorDecimal(minor decimal.Decimal) string {
	amount, _ := minor.Div(minorUnitsPerMajor).Float64()

	opts := []number.Option{number.MinFractionDigits(2), number.MaxFractionDigits(2)}
	if f.noFractions {
		opts = []number.Option{number.MaxFractionDigits(0)}
	}

	symbol := f.printer.Sprintf("%v", currency.Symbol(f.unit))
	return symbol + f.printer.Sprintf("%v", number.Decimal(amount, opts...))
}
