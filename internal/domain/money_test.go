package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(amount string) Money {
	m, err := MoneyFromString(amount, "USD")
	if err != nil {
		panic(err)
	}
	return m
}

func TestMoney_AddSubtractRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		a, b string
	}{
		{name: "whole amounts", a: "100", b: "25"},
		{name: "cents", a: "0.10", b: "0.20"},
		{name: "negative operand", a: "12.34", b: "-56.78"},
		{name: "zero", a: "0", b: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			m1, m2 := usd(tc.a), usd(tc.b)
			sum, err := m1.Add(m2)
			require.NoError(t, err)
			back, err := sum.Subtract(m2)
			require.NoError(t, err)
			assert.True(t, back.Equal(m1), "expected %s, got %s", m1, back)
		})
	}
}

func TestMoney_ExactDecimalAddition(t *testing.T) {
	sum, err := usd("0.1").Add(usd("0.2"))
	require.NoError(t, err)
	assert.True(t, sum.Amount.Equal(decimal.RequireFromString("0.3")))
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	eur := MoneyFromInt(10, "EUR")

	_, err := usd("10").Add(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
	assert.Equal(t, KindCurrencyMismatch, KindOf(err))

	_, err = usd("10").Subtract(eur)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestMoney_Allocate(t *testing.T) {
	share, err := usd("100").Allocate(3)
	require.NoError(t, err)
	assert.Equal(t, "33.33", share.Amount.StringFixed(2))
	assert.Equal(t, "USD", share.Currency)

	for _, parts := range []int{0, -1} {
		_, err := usd("100").Allocate(parts)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestMoney_SplitResidueBounded(t *testing.T) {
	amounts := []string{"100", "0.01", "10.05", "99999.99", "0"}
	for _, amount := range amounts {
		for parts := 1; parts <= 7; parts++ {
			total := usd(amount)
			shares, err := total.Split(parts)
			require.NoError(t, err)
			require.Len(t, shares, parts)

			sum := decimal.Zero
			for _, s := range shares {
				assert.False(t, s.Amount.IsNegative())
				sum = sum.Add(s.Amount)
			}
			bound := decimal.New(int64(parts), -total.Precision)
			assert.True(t, sum.Sub(total.Amount).Abs().LessThanOrEqual(bound),
				"amount %s parts %d: residue above bound", amount, parts)
		}
	}
}

func TestMoney_Percentage(t *testing.T) {
	m := usd("200")
	assert.True(t, m.Percentage(decimal.NewFromInt(15)).Equal(usd("30")))
	neg := m.Percentage(decimal.NewFromInt(-10))
	assert.True(t, neg.Equal(usd("-20")))
	assert.Equal(t, m.Precision, neg.Precision)
}

func TestMoneyFromString_Invalid(t *testing.T) {
	_, err := MoneyFromString("ten", "USD")
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "12.50 USD", usd("12.5").String())
}
