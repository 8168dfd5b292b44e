package repository

import (
	"context"
	"fmt"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type shippingRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewShippingRepository creates a new PostgreSQL-backed shipping repository.
func NewShippingRepository(pool *pgxpool.Pool, logger zerolog.Logger) ShippingRepository {
	return &shippingRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "shipping").Logger(),
	}
}

func (r *shippingRepository) FindByState(ctx context.Context, merchantCode, state string) (*model.Shipping, error) {
	query := `
		SELECT id, merchant_code, state, country, amount, created_at
		FROM shipping_rates
		WHERE merchant_code = $1 AND state = $2
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`

	var s model.Shipping
	err := r.pool.QueryRow(ctx, query, merchantCode, state).Scan(
		&s.ID,
		&s.MerchantCode,
		&s.State,
		&s.Country,
		&s.Amount,
		&s.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("merchant_code", merchantCode).
			Str("state", state).
			Msg("failed to query shipping rate")
		return nil, fmt.Errorf("failed to query shipping rate: %w", err)
	}

	return &s, nil
}
