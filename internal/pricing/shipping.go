package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ShippingResolver looks up the flat shipping fee for a destination state.
type ShippingResolver struct {
	finder     ShippingFinder
	defaultFee decimal.Decimal
	logger     zerolog.Logger
}

// NewShippingResolver creates a shipping resolver that falls back to defaultFee.
func NewShippingResolver(finder ShippingFinder, defaultFee decimal.Decimal, logger zerolog.Logger) *ShippingResolver {
	return &ShippingResolver{
		finder:     finder,
		defaultFee: Round2(defaultFee),
		logger:     logger.With().Str("component", "shipping-resolver").Logger(),
	}
}

// Resolve returns the merchant's fee for state or the default fee when none is set.
func (r *ShippingResolver) Resolve(ctx context.Context, merchantCode, state string) (decimal.Decimal, error) {
	shipping, err := r.finder.FindByState(ctx, merchantCode, state)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to look up shipping fee: %w", err)
	}
	if shipping == nil {
		r.logger.Debug().
			Str("merchant_code", merchantCode).
			Str("state", state).
			Str("default_fee", r.defaultFee.StringFixed(2)).
			Msg("no shipping rate configured, applying default fee")
		return r.defaultFee, nil
	}
	return Round2(shipping.Amount), nil
}
