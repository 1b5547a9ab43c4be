// Package money computes order totals in integer minor currency units.
//
// Rounding policy: tax is computed once, at the order aggregate level, as
// round-half-up(subtotal × rate). Line amounts are exact integer products and
// are never rounded; nothing downstream may re-round these figures.
package money

import "github.com/shopspring/decimal"

// Line is one cart line: price per order unit, ordered quantity in order
// units, and the pack content multiplier (base units per order unit).
type Line struct {
	UnitPrice int64
	Quantity  int64
	Content   int64
}

type Totals struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// ItemTotal is the exact contribution of a single line.
func ItemTotal(unitPrice, quantity, content int64) int64 {
	return unitPrice * quantity * content
}

// Calculate returns subtotal, tax and total for the given lines. taxRateBps is
// the tax rate in basis points (11% = 1100). shipping and discount are flat
// amounts in minor units.
func Calculate(lines []Line, taxRateBps, shipping, discount int64) Totals {
	var subtotal int64
	for _, l := range lines {
		subtotal += ItemTotal(l.UnitPrice, l.Quantity, l.Content)
	}

	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts handled here.
	tax := decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromInt(taxRateBps)).
		Div(decimal.NewFromInt(10000)).
		Round(0).
		IntPart()

	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax + shipping - discount,
	}
}
