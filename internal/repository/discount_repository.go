package repository

import (
	"context"
	"fmt"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type discountRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewDiscountRepository creates a new PostgreSQL-backed discount repository.
func NewDiscountRepository(pool *pgxpool.Pool, logger zerolog.Logger) DiscountRepository {
	return &discountRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "discount").Logger(),
	}
}

func (r *discountRepository) FindEnabledByCode(ctx context.Context, merchantCode, code string) (*model.Discount, error) {
	query := `
		SELECT id, merchant_code, discount_code, discount_value, quantity,
		       start_date, end_date, products, enabled, created_at
		FROM discounts
		WHERE merchant_code = $1 AND discount_code = $2 AND enabled
		ORDER BY created_at ASC
		LIMIT 1
	`

	var d model.Discount
	err := r.pool.QueryRow(ctx, query, merchantCode, code).Scan(
		&d.ID,
		&d.MerchantCode,
		&d.DiscountCode,
		&d.DiscountValue,
		&d.Quantity,
		&d.StartDate,
		&d.EndDate,
		&d.Products,
		&d.Enabled,
		&d.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("merchant_code", merchantCode).
			Str("discount_code", code).
			Msg("failed to query discount")
		return nil, fmt.Errorf("failed to query discount: %w", err)
	}

	return &d, nil
}
