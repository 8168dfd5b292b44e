package pricing

import "github.com/shopspring/decimal"

// Assembler combines the priced components of a cart into its total.
type Assembler struct {
	AllowNegativeTotal bool
}

// Total returns round2(subtotal + tax + shippingFee - discount).
func (a Assembler) Total(subtotal, tax, shippingFee, discount decimal.Decimal) decimal.Decimal {
	total := Round2(subtotal.Add(tax).Add(shippingFee).Sub(discount))
	if !a.AllowNegativeTotal && total.IsNegative() {
		return decimal.Zero
	}
	return total
}
