package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of fractional digits kept by allocation.
const DefaultPrecision int32 = 2

var hundred = decimal.NewFromInt(100)

// Money is an exact amount tagged with a currency code.
type Money struct {
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Precision int32           `json:"precision"`
}

func NewMoney(amount decimal.Decimal, currency string) Money {
	return Money{Amount: amount, Currency: currency, Precision: DefaultPrecision}
}

func MoneyFromInt(amount int64, currency string) Money {
	return NewMoney(decimal.NewFromInt(amount), currency)
}

// MoneyFromString parses a decimal literal such as "12.50".
func MoneyFromString(amount, currency string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, InvalidArgumentf("invalid amount %q", amount)
	}
	return NewMoney(d, currency), nil
}

func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Add(other.Amount), Currency: m.Currency, Precision: m.Precision}, nil
}

func (m Money) Subtract(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Amount: m.Amount.Sub(other.Amount), Currency: m.Currency, Precision: m.Precision}, nil
}

// Allocate returns one of parts equal shares, rounded half-to-even to the
// money's precision. The rounding residue is not redistributed, so parts
// shares may differ from the original by up to parts * 10^-precision.
func (m Money) Allocate(parts int) (Money, error) {
	if parts <= 0 {
		return Money{}, InvalidArgumentf("parts must be positive")
	}
	share := m.Amount.Div(decimal.NewFromInt(int64(parts))).RoundBank(m.Precision)
	return Money{Amount: share, Currency: m.Currency, Precision: m.Precision}, nil
}

// Split returns parts copies of the Allocate share.
func (m Money) Split(parts int) ([]Money, error) {
	share, err := m.Allocate(parts)
	if err != nil {
		return nil, err
	}
	shares := make([]Money, parts)
	for i := range shares {
		shares[i] = share
	}
	return shares, nil
}

// Percentage scales the amount by pct/100. Negative percentages yield
// negative money.
func (m Money) Percentage(pct decimal.Decimal) Money {
	return Money{Amount: m.Amount.Mul(pct).Div(hundred), Currency: m.Currency, Precision: m.Precision}
}

func (m Money) IsPositive() bool { return m.Amount.IsPositive() }

func (m Money) IsZero() bool { return m.Amount.IsZero() }

// LessThan compares the amount against a bare number in the same currency units.
func (m Money) LessThan(limit decimal.Decimal) bool {
	return m.Amount.LessThan(limit)
}

func (m Money) Equal(other Money) bool {
	return m.Currency == other.Currency && m.Amount.Equal(other.Amount)
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(m.Precision), m.Currency)
}
