package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
// Line items and the shipping destination are stored as JSONB snapshots.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	id, user_id, merchant_code, reference, order_items, shipping_details,
	payment_method, quantity, discount_code, sub_total, tax_price, shipping_fee,
	discount, total, is_paid, paid_at, is_delivered, delivered_at, order_status,
	created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.MerchantCode,
		&o.Reference,
		&o.OrderItems,
		&o.ShippingDetails,
		&o.PaymentMethod,
		&o.Quantity,
		&o.DiscountCode,
		&o.SubTotal,
		&o.TaxPrice,
		&o.ShippingFee,
		&o.Discount,
		&o.Total,
		&o.IsPaid,
		&o.PaidAt,
		&o.IsDelivered,
		&o.DeliveredAt,
		&o.OrderStatus,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	now := time.Now().UTC()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = order.CreatedAt
	if order.OrderStatus == "" {
		order.OrderStatus = model.StatusOpen
	}

	query := `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err := r.pool.Exec(ctx, query,
		order.ID,
		order.UserID,
		order.MerchantCode,
		order.Reference,
		order.OrderItems,
		order.ShippingDetails,
		order.PaymentMethod,
		order.Quantity,
		order.DiscountCode,
		order.SubTotal,
		order.TaxPrice,
		order.ShippingFee,
		order.Discount,
		order.Total,
		order.IsPaid,
		order.PaidAt,
		order.IsDelivered,
		order.DeliveredAt,
		order.OrderStatus,
		order.CreatedAt,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("merchant_code", order.MerchantCode).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Int("items", len(order.OrderItems)).
		Msg("order created successfully")

	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter, limit, offset int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM orders
		WHERE merchant_code = $1 AND ($2::uuid IS NULL OR user_id = $2)
		ORDER BY created_at DESC, id ASC
		LIMIT $3 OFFSET $4`

	rows, err := r.pool.Query(ctx, query, filter.MerchantCode, filter.UserID, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Str("merchant_code", filter.MerchantCode).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := make([]model.Order, 0, limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) Count(ctx context.Context, filter OrderFilter) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM orders
		WHERE merchant_code = $1 AND ($2::uuid IS NULL OR user_id = $2)
	`

	var count int
	if err := r.pool.QueryRow(ctx, query, filter.MerchantCode, filter.UserID).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("merchant_code", filter.MerchantCode).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return count, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, order *model.Order) error {
	order.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE orders
		SET order_status = $2, is_paid = $3, paid_at = $4,
		    is_delivered = $5, delivered_at = $6, reference = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID,
		order.OrderStatus,
		order.IsPaid,
		order.PaidAt,
		order.IsDelivered,
		order.DeliveredAt,
		order.Reference,
		order.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return false, fmt.Errorf("failed to delete order: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *orderRepository) Totals(ctx context.Context, userID uuid.UUID, merchantCode string) (model.OrderTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0)
		FROM orders
		WHERE user_id = $1 AND ($2::text = '' OR merchant_code = $2)
	`

	var (
		count int
		spent decimal.Decimal
	)
	if err := r.pool.QueryRow(ctx, query, userID, merchantCode).Scan(&count, &spent); err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to aggregate orders")
		return model.OrderTotals{}, fmt.Errorf("failed to aggregate orders: %w", err)
	}

	return model.OrderTotals{Count: count, Spent: spent}, nil
}
