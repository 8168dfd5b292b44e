package pricing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TaxCalculator computes tax from the merchant's rate for a destination state.
type TaxCalculator struct {
	finder TaxFinder
	logger zerolog.Logger
}

// NewTaxCalculator creates a tax calculator backed by finder.
func NewTaxCalculator(finder TaxFinder, logger zerolog.Logger) *TaxCalculator {
	return &TaxCalculator{
		finder: finder,
		logger: logger.With().Str("component", "tax-calculator").Logger(),
	}
}

// Calculate returns round2(rate/100 * subtotal). A missing or disabled rate
// is a zero rate. Only store failures are returned as errors.
func (c *TaxCalculator) Calculate(ctx context.Context, merchantCode, state string, subtotal decimal.Decimal) (decimal.Decimal, error) {
	tax, err := c.finder.FindEnabledByState(ctx, merchantCode, state)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to look up tax rate: %w", err)
	}

	rate := decimal.Zero
	if tax != nil {
		rate = tax.StandardRate
	} else {
		c.logger.Debug().
			Str("merchant_code", merchantCode).
			Str("state", state).
			Msg("no tax rate configured, applying zero rate")
	}

	return Percent(rate, subtotal), nil
}
