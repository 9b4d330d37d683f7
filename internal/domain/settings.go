package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyNGN Currency = "ngn"
	CurrencyUSD Currency = "usd"
	CurrencyEUR Currency = "eur"
	CurrencyGBP Currency = "gbp"
)

// ParseCurrency normalises s and checks it against the supported currencies.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case CurrencyNGN, CurrencyUSD, CurrencyEUR, CurrencyGBP:
		return c, nil
	}
	return "", fmt.Errorf("%w: unsupported currency %q", ErrInvalidInput, s)
}

// Settings is the till configuration persisted as a single record.
type Settings struct {
	Currency   Currency        `json:"currency"`
	TaxRate    decimal.Decimal `json:"taxRate"`
	IsDarkMode bool            `json:"isDarkMode"`
}

// DefaultSettings returns the settings used when nothing valid is stored.
func DefaultSettings() Settings {
	return Settings{
		Currency: CurrencyNGN,
		TaxRate:  decimal.RequireFromString("7.5"),
	}
}

// Validate checks the currency and that the tax rate is not negative.
func (s Settings) Validate() error {
	if _, err := ParseCurrency(string(s.Currency)); err != nil {
		return err
	}
	if s.TaxRate.IsNegative() {
		return fmt.Errorf("%w: tax rate must not be negative", ErrInvalidInput)
	}
	return nil
}
