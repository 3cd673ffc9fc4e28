// Package tax computes VAT amounts for billed subtotals.
//
// Business clients (those with a tax registration number) are billed
// VAT on top of the subtotal. Private clients are billed tax-inclusive:
// no VAT line, the subtotal is the grand total.
package tax

import "github.com/shopspring/decimal"

// DefaultRate is the standard VAT rate, 25%.
var DefaultRate = decimal.New(25, -2)

type Policy struct {
	Rate decimal.Decimal
}

func NewPolicy(rate decimal.Decimal) Policy { return Policy{Rate: rate} }

// ComputeTotals returns the tax amount and grand total for a subtotal.
// All arithmetic is exact decimal; the tax amount is not rounded before
// being added to the total. Rounding to two places is presentation-only
// and happens in the renderer.
func (p Policy) ComputeTotals(subtotal decimal.Decimal, isBusinessClient bool) (taxAmount, grandTotal decimal.Decimal) {
	if !isBusinessClient {
		return decimal.Zero, subtotal
	}
	taxAmount = subtotal.Mul(p.Rate)
	grandTotal = subtotal.Add(taxAmount)
	return taxAmount, grandTotal
}

// RatePercent returns the rate as a percentage for display, e.g. 25 for 0.25.
func (p Policy) RatePercent() decimal.Decimal {
	return p.Rate.Mul(decimal.NewFromInt(100))
}
