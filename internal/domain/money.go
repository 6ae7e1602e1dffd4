package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const (
	moneyScale      = 2
	percentageScale = moneyScale + 2
)

var hundred = decimal.NewFromInt(100)

// Money is an immutable non-negative amount with two fractional digits.
// Rounding is half-to-even. The zero value is an absent amount; use Zero for 0.00.
type Money struct {
	amount decimal.Decimal
	set    bool
}

// NewMoney creates Money from a decimal, rounding to two places.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount)
	}

	return Money{amount: amount.RoundBank(moneyScale), set: true}, nil
}

// NewMoneyFromString parses a decimal string into Money.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q is not a decimal", ErrInvalidAmount, s)
	}

	return NewMoney(d)
}

// MustMoney is like NewMoney but panics on error. Intended for constants.
func MustMoney(s string) Money {
	m, err := NewMoneyFromString(s)
	if err != nil {
		panic(err)
	}

	return m
}

// Zero returns 0.00.
func Zero() Money {
	return Money{amount: decimal.Zero, set: true}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount).RoundBank(moneyScale), set: true}
}

// Subtract returns m - other, failing if the result would be negative.
func (m Money) Subtract(other Money) (Money, error) {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeResult, m, other)
	}

	return Money{amount: result.RoundBank(moneyScale), set: true}, nil
}

// Multiply returns m * factor rounded to two places.
func (m Money) Multiply(factor decimal.Decimal) (Money, error) {
	result := m.amount.Mul(factor)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s * %s", ErrNegativeResult, m, factor)
	}

	return Money{amount: result.RoundBank(moneyScale), set: true}, nil
}

// Percentage returns pct percent of m. The ratio pct/100 is rounded to four
// places before the product is rounded to two.
func (m Money) Percentage(pct decimal.Decimal) (Money, error) {
	return m.Multiply(pct.Div(hundred).RoundBank(percentageScale))
}

// Decimal returns the underlying amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// IsSet reports whether m was produced by a constructor.
func (m Money) IsSet() bool {
	return m.set
}

// IsZero reports whether the amount is 0.00.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Equal compares numeric values.
func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan compares numeric values.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixedBank(moneyScale)
}
