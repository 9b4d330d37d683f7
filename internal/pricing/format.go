package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"pos-terminal/internal/domain"
)

type currencyLocale struct {
	symbol string
	suffix bool
	group  string
	point  string
}

func newCurrencyLocale(tag language.Tag, symbol string, suffix bool) currencyLocale {
	// "1" + group + "000" + point + "5"
	sample := message.NewPrinter(tag).Sprintf("%.1f", 1000.5)
	return currencyLocale{
		symbol: symbol,
		suffix: suffix,
		group:  sample[1 : len(sample)-5],
		point:  sample[len(sample)-2 : len(sample)-1],
	}
}

var currencyLocales = map[domain.Currency]currencyLocale{
	domain.CurrencyNGN: newCurrencyLocale(language.MustParse("en-NG"), "₦", false),
	domain.CurrencyUSD: newCurrencyLocale(language.AmericanEnglish, "$", false),
	domain.CurrencyEUR: newCurrencyLocale(language.German, "€", true),
	domain.CurrencyGBP: newCurrencyLocale(language.BritishEnglish, "£", false),
}

// FormatCurrency renders amount with two decimals and locale grouping for currency. Unknown
// currencies use the NGN format.
func FormatCurrency(amount decimal.Decimal, currency domain.Currency) string {
	loc, ok := currencyLocales[currency]
	if !ok {
		loc = currencyLocales[domain.CurrencyNGN]
	}
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	num := loc.number(rounded.Abs())
	if loc.suffix {
		return sign + num + "\u00a0" + loc.symbol
	}
	return sign + loc.symbol + num
}

// number groups the integer digits of a non-negative amount in threes.
func (l currencyLocale) number(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	whole, frac := fixed[:len(fixed)-3], fixed[len(fixed)-2:]
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(l.group)
		}
		b.WriteRune(r)
	}
	b.WriteString(l.point)
	b.WriteString(frac)
	return b.String()
}

// FormattedTotals is Totals rendered for display.
type FormattedTotals struct {
	Subtotal string `json:"subtotal"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
	Total    string `json:"total"`
}

func FormatTotals(t domain.Totals, currency domain.Currency) FormattedTotals {
	return FormattedTotals{
		Subtotal: FormatCurrency(t.Subtotal, currency),
		Discount: FormatCurrency(t.Discount, currency),
		Tax:      FormatCurrency(t.Tax, currency),
		Total:    FormatCurrency(t.Total, currency),
	}
}
