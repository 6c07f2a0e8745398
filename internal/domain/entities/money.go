package entities

import "github.com/shopspring/decimal"

// Money is a currency amount.
//
// Value keeps the decimal magnitude exactly (no float rounding); Currency is an
// ISO 4217 code and may be empty when the source record did not carry one.
type Money struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency,omitempty"`
}

func NewMoney(value decimal.Decimal, currency string) Money {
	return Money{Value: value, Currency: currency}
}

// MoneyFromString parses a decimal string such as "125.50".
func MoneyFromString(value, currency string) (Money, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return Money{}, err
	}
	return Money{Value: d, Currency: currency}, nil
}

func ZeroMoney(currency string) Money {
	return Money{Value: decimal.Zero, Currency: currency}
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.Value.IsPositive()
}

func (m Money) String() string {
	if m.Currency == "" {
		return m.Value.String()
	}
	return m.Value.String() + " " + m.Currency
}
