package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pos-terminal/internal/domain"
)

func TestFormatCurrency(t *testing.T) {
	cases := []struct {
		name     string
		amount   string
		currency domain.Currency
		expected string
	}{
		{"naira", "7.525", domain.CurrencyNGN, "₦7.53"},
		{"dollars grouped", "1234.5", domain.CurrencyUSD, "$1,234.50"},
		{"pounds", "0.5", domain.CurrencyGBP, "£0.50"},
		{"negative", "-0.55", domain.CurrencyNGN, "-₦0.55"},
		{"unknown falls back to naira", "3", domain.Currency("jpy"), "₦3.00"},
		{"beyond float precision", "12345678901234567.89", domain.CurrencyUSD, "$12,345,678,901,234,567.89"},
		{"euro grouping", "1234567.891", domain.CurrencyEUR, "1.234.567,89\u00a0€"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatCurrency(dec(tc.amount), tc.currency))
		})
	}
}

func TestFormatCurrency_EuroUsesSuffix(t *testing.T) {
	got := FormatCurrency(dec("1234.5"), domain.CurrencyEUR)
	assert.Equal(t, "1.234,50\u00a0€", got)
}

func TestFormatTotals(t *testing.T) {
	out := FormatTotals(domain.Totals{
		Subtotal: dec("10.25"),
		Discount: dec("0.55"),
		Tax:      dec("0.7275"),
		Total:    dec("10.4275"),
	}, domain.CurrencyUSD)
	assert.Equal(t, FormattedTotals{Subtotal: "$10.25", Discount: "$0.55", Tax: "$0.73", Total: "$10.43"}, out)
}
