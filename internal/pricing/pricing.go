// Package pricing turns a cart into a quote: discount, tax, shipping fee and
// total, each rounded to two decimal places as it is produced.
package pricing

import (
	"context"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultShippingFee is the platform fee applied when a merchant has no rate for a state.
var DefaultShippingFee = decimal.NewFromInt(2000)

var hundred = decimal.NewFromInt(100)

// DiscountFinder looks up an enabled discount by code within a merchant.
type DiscountFinder interface {
	FindEnabledByCode(ctx context.Context, merchantCode, code string) (*model.Discount, error)
}

// TaxFinder looks up an enabled tax row for a destination state within a merchant.
type TaxFinder interface {
	FindEnabledByState(ctx context.Context, merchantCode, state string) (*model.Tax, error)
}

// ShippingFinder looks up the shipping row for a destination state within a merchant.
type ShippingFinder interface {
	FindByState(ctx context.Context, merchantCode, state string) (*model.Shipping, error)
}

// Policy holds the configurable pricing decisions.
type Policy struct {
	// DefaultShippingFee applies when no shipping row matches the destination.
	DefaultShippingFee decimal.Decimal

	// AllowNegativeTotal keeps totals below zero when a discount exceeds the
	// rest of the charge. When false the total is floored at zero.
	AllowNegativeTotal bool
}

// DefaultPolicy returns the historical platform behaviour.
func DefaultPolicy() Policy {
	return Policy{
		DefaultShippingFee: DefaultShippingFee,
		AllowNegativeTotal: true,
	}
}

// Round2 rounds d to two decimal places, halves away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Percent returns round2(rate/100 * amount).
func Percent(rate, amount decimal.Decimal) decimal.Decimal {
	return Round2(rate.Div(hundred).Mul(amount))
}
