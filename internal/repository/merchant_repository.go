package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// merchantRepository implements the MerchantRepository interface using PostgreSQL.
type merchantRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMerchantRepository creates a new PostgreSQL-backed merchant repository.
func NewMerchantRepository(pool *pgxpool.Pool, logger zerolog.Logger) MerchantRepository {
	return &merchantRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "merchant").Logger(),
	}
}

func (r *merchantRepository) GetByCode(ctx context.Context, code string) (*model.Merchant, error) {
	query := `
		SELECT id, user_id, merchant_code, merchant_name, merchant_email, currency, created_at
		FROM merchants
		WHERE merchant_code = $1
	`

	var m model.Merchant
	err := r.pool.QueryRow(ctx, query, code).Scan(
		&m.ID,
		&m.UserID,
		&m.MerchantCode,
		&m.MerchantName,
		&m.MerchantEmail,
		&m.Currency,
		&m.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			r.logger.Debug().Str("merchant_code", code).Msg("merchant not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("merchant_code", code).Msg("failed to query merchant")
		return nil, fmt.Errorf("failed to query merchant: %w", err)
	}

	return &m, nil
}

func (r *merchantRepository) Create(ctx context.Context, merchant *model.Merchant) error {
	if merchant.ID == uuid.Nil {
		merchant.ID = uuid.New()
	}
	if merchant.CreatedAt.IsZero() {
		merchant.CreatedAt = time.Now().UTC()
	}
	if merchant.Currency == "" {
		merchant.Currency = "NGN"
	}

	query := `
		INSERT INTO merchants (id, user_id, merchant_code, merchant_name, merchant_email, currency, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.pool.Exec(ctx, query,
		merchant.ID,
		merchant.UserID,
		merchant.MerchantCode,
		merchant.MerchantName,
		merchant.MerchantEmail,
		merchant.Currency,
		merchant.CreatedAt,
	)
	if err != nil {
		if conflict := conflictError(err, "Merchant name or email already exists"); conflict != nil {
			return conflict
		}
		r.logger.Error().Err(err).Str("merchant_code", merchant.MerchantCode).Msg("failed to create merchant")
		return fmt.Errorf("failed to create merchant: %w", err)
	}

	r.logger.Debug().Str("merchant_code", merchant.MerchantCode).Msg("merchant created successfully")
	return nil
}
