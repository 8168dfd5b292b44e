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

type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer ledger repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

const customerColumns = `id, merchant_code, user_id, username, email, photo, total_orders, total_spent, created_at, updated_at`

func scanCustomer(row rowScanner) (*model.Customer, error) {
	var c model.Customer
	err := row.Scan(
		&c.ID,
		&c.MerchantCode,
		&c.UserID,
		&c.Username,
		&c.Email,
		&c.Photo,
		&c.TotalOrders,
		&c.TotalSpent,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Upsert keeps the existing row's id, photo and created_at on conflict and
// overwrites the aggregates.
func (r *customerRepository) Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error) {
	now := time.Now().UTC()
	id := customer.ID
	if id == uuid.Nil {
		id = uuid.New()
	}

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (merchant_code, email) DO UPDATE
		SET username = EXCLUDED.username,
		    user_id = EXCLUDED.user_id,
		    total_orders = EXCLUDED.total_orders,
		    total_spent = EXCLUDED.total_spent,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + customerColumns

	stored, err := scanCustomer(r.pool.QueryRow(ctx, query,
		id,
		customer.MerchantCode,
		customer.UserID,
		customer.Username,
		customer.Email,
		customer.Photo,
		customer.TotalOrders,
		customer.TotalSpent,
		now,
	))
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("merchant_code", customer.MerchantCode).
			Str("email", customer.Email).
			Msg("failed to upsert customer")
		return nil, fmt.Errorf("failed to upsert customer: %w", err)
	}

	r.logger.Debug().
		Str("merchant_code", stored.MerchantCode).
		Str("username", stored.Username).
		Int("total_orders", stored.TotalOrders).
		Msg("customer ledger updated")

	return stored, nil
}

func (r *customerRepository) ListByMerchant(ctx context.Context, merchantCode string, limit, offset int) ([]model.Customer, error) {
	query := `SELECT ` + customerColumns + `
		FROM customers
		WHERE merchant_code = $1
		ORDER BY created_at DESC, id ASC
		LIMIT $2 OFFSET $3`

	rows, err := r.pool.Query(ctx, query, merchantCode, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("merchant_code", merchantCode).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := make([]model.Customer, 0, limit)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, *c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) CountByMerchant(ctx context.Context, merchantCode string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE merchant_code = $1`, merchantCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

func (r *customerRepository) GetByUsername(ctx context.Context, merchantCode, username string) (*model.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE merchant_code = $1 AND username = $2`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, merchantCode, username))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("username", username).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}
	return c, nil
}

func (r *customerRepository) Delete(ctx context.Context, merchantCode, username string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE merchant_code = $1 AND username = $2`, merchantCode, username)
	if err != nil {
		r.logger.Error().Err(err).Str("username", username).Msg("failed to delete customer")
		return false, fmt.Errorf("failed to delete customer: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
