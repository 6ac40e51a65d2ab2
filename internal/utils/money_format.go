package utils

import (
	"github.com/clubops/clubledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// minorUnitPrecision is the exponent used to render minor units as major
// units. The system operates in a single currency family with two decimal
// places (e.g. cents to dollars).
const minorUnitPrecision = 2

// FormatMinorUnits renders an integer minor-unit amount as a major-unit
// string, e.g. 10300 -> "103.00". Decimal is used for presentation only;
// stored amounts never leave int64.
func FormatMinorUnits(amount int64) string {
	return decimal.New(amount, -minorUnitPrecision).StringFixed(minorUnitPrecision)
}

// FormatMoney renders a Money value with its currency code, e.g. "103.00 USD".
func FormatMoney(m domain.Money) string {
	return FormatMinorUnits(m.Amount) + " " + m.CurrencyCode
}
