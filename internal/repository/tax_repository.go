package repository

import (
	"context"
	"fmt"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

type taxRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTaxRepository creates a new PostgreSQL-backed tax repository.
func NewTaxRepository(pool *pgxpool.Pool, logger zerolog.Logger) TaxRepository {
	return &taxRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "tax").Logger(),
	}
}

// FindEnabledByState picks the earliest created row when several share a state.
func (r *taxRepository) FindEnabledByState(ctx context.Context, merchantCode, state string) (*model.Tax, error) {
	query := `
		SELECT id, merchant_code, state, country, standard_rate, enabled, created_at
		FROM taxes
		WHERE merchant_code = $1 AND state = $2 AND enabled
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`

	var t model.Tax
	err := r.pool.QueryRow(ctx, query, merchantCode, state).Scan(
		&t.ID,
		&t.MerchantCode,
		&t.State,
		&t.Country,
		&t.StandardRate,
		&t.Enabled,
		&t.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("merchant_code", merchantCode).
			Str("state", state).
			Msg("failed to query tax rate")
		return nil, fmt.Errorf("failed to query tax rate: %w", err)
	}

	return &t, nil
}
