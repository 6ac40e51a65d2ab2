package domain

import (
	"errors"
	"fmt"
)

// ErrCurrencyMismatch indicates arithmetic or comparison across two Money
// values with different currency codes.
var ErrCurrencyMismatch = errors.New("incompatible currency codes")

// Money is an exact monetary quantity: integer minor units plus an ISO 4217
// currency code. All arithmetic stays in integers; floating point is never used.
type Money struct {
	Amount       int64  `json:"amount"` // minor units, e.g. cents
	CurrencyCode string `json:"currencyCode"`
}

// NewMoney creates a Money value from minor units and a currency code.
func NewMoney(amount int64, currencyCode string) Money {
	return Money{Amount: amount, CurrencyCode: currencyCode}
}

// Add returns m + other. Fails if the currency codes differ.
func (m Money) Add(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.CurrencyCode, other.CurrencyCode)
	}
	return Money{Amount: m.Amount + other.Amount, CurrencyCode: m.CurrencyCode}, nil
}

// Sub returns m - other. Fails if the currency codes differ.
func (m Money) Sub(other Money) (Money, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.CurrencyCode, other.CurrencyCode)
	}
	return Money{Amount: m.Amount - other.Amount, CurrencyCode: m.CurrencyCode}, nil
}

// Cmp compares two Money values: -1 if m < other, 0 if equal, +1 if m > other.
// Fails if the currency codes differ.
func (m Money) Cmp(other Money) (int, error) {
	if m.CurrencyCode != other.CurrencyCode {
		return 0, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.CurrencyCode, other.CurrencyCode)
	}
	switch {
	case m.Amount < other.Amount:
		return -1, nil
	case m.Amount > other.Amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// Equal reports whether both amount and currency match.
func (m Money) Equal(other Money) bool {
	return m.Amount == other.Amount && m.CurrencyCode == other.CurrencyCode
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Amount < 0
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.CurrencyCode)
}
