// Package money represents amounts in ariary, the currency every price on the
// platform is expressed in.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Currency is the display suffix for amounts.
const Currency = "Ar"

// Money is a whole number of ariary.
type Money int64

// FromDecimal rounds d to the nearest whole ariary, half away from zero.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(0).IntPart())
}

// Decimal returns m as a decimal for further arithmetic.
func (m Money) Decimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m))
}

// Format renders m with the digit grouping of tag, e.g. "12,500 Ar" for English.
func (m Money) Format(tag language.Tag) string {
	return message.NewPrinter(tag).Sprintf("%d %s", int64(m), Currency)
}

// String renders m without grouping.
func (m Money) String() string {
	return decimal.NewFromInt(int64(m)).String() + " " + Currency
}
