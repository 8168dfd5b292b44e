package pricing

import (
	"context"
	"fmt"
	"time"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DiscountResolver validates discount codes and computes the discount amount.
type DiscountResolver struct {
	finder DiscountFinder
	now    func() time.Time
	logger zerolog.Logger
}

// NewDiscountResolver creates a discount resolver backed by finder.
func NewDiscountResolver(finder DiscountFinder, logger zerolog.Logger) *DiscountResolver {
	return &DiscountResolver{
		finder: finder,
		now:    time.Now,
		logger: logger.With().Str("component", "discount-resolver").Logger(),
	}
}

// Resolve returns the discount amount for code applied to subtotal.
//
// It fails with ErrInvalidDiscountCode when no enabled discount matches,
// ErrDiscountExpired once the end date has passed and a QuantityNotMet error
// when a nonzero threshold exceeds the cart quantity. A zero cart quantity
// skips the threshold check and yields a zero discount for thresholded codes.
func (r *DiscountResolver) Resolve(ctx context.Context, merchantCode, code string, quantity int, subtotal decimal.Decimal) (decimal.Decimal, error) {
	discount, err := r.finder.FindEnabledByCode(ctx, merchantCode, code)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to look up discount: %w", err)
	}
	if discount == nil {
		r.logger.Debug().
			Str("merchant_code", merchantCode).
			Str("discount_code", code).
			Msg("discount code not found or disabled")
		return decimal.Zero, model.ErrInvalidDiscountCode
	}

	if discount.EndDate != nil && r.now().After(*discount.EndDate) {
		r.logger.Debug().
			Str("discount_code", code).
			Time("end_date", *discount.EndDate).
			Msg("discount code expired")
		return decimal.Zero, model.ErrDiscountExpired
	}

	threshold := discount.Quantity
	if quantity > 0 && threshold != 0 && quantity < threshold {
		r.logger.Debug().
			Str("discount_code", code).
			Int("quantity", quantity).
			Int("threshold", threshold).
			Msg("discount quantity threshold not met")
		return decimal.Zero, model.QuantityNotMet(threshold)
	}

	if quantity < threshold {
		return decimal.Zero, nil
	}

	return Percent(discount.DiscountValue, subtotal), nil
}
