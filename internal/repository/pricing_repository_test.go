package repository

import (
	"context"
	"testing"
	"time"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedPricing inserts discount, tax and shipping rows for two merchants.
func seedPricing(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	owner := seedUser(t, pool, "owner", model.RoleSeller)
	seedMerchant(t, pool, "M1", owner.ID)
	seedMerchant(t, pool, "M2", owner.ID)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	end := base.Add(30 * 24 * time.Hour)

	stmts := []struct {
		query string
		args  []interface{}
	}{
		{`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, end_date, products, enabled)
		  VALUES ($1, $2, $3, $4, $5, $6, $7)`, []interface{}{"M1", "SAVE10", "10", 0, nil, []string{"shoe"}, true}},
		{`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, end_date, products, enabled)
		  VALUES ($1, $2, $3, $4, $5, $6, $7)`, []interface{}{"M1", "BULK", "25.5", 3, end, []string{}, true}},
		{`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, end_date, products, enabled)
		  VALUES ($1, $2, $3, $4, $5, $6, $7)`, []interface{}{"M1", "OFF", "50", 0, nil, []string{}, false}},
		{`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, end_date, products, enabled)
		  VALUES ($1, $2, $3, $4, $5, $6, $7)`, []interface{}{"M2", "M2ONLY", "5", 0, nil, []string{}, true}},

		{`INSERT INTO taxes (merchant_code, state, country, standard_rate, enabled, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]interface{}{"M1", "Lagos", "Nigeria", "5", true, base}},
		{`INSERT INTO taxes (merchant_code, state, country, standard_rate, enabled, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]interface{}{"M1", "Lagos", "Nigeria", "9", true, base.Add(time.Hour)}},
		{`INSERT INTO taxes (merchant_code, state, country, standard_rate, enabled, created_at) VALUES ($1, $2, $3, $4, $5, $6)`,
			[]interface{}{"M1", "Kano", "Nigeria", "7.5", false, base}},

		{`INSERT INTO shipping_rates (merchant_code, state, country, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"M1", "Lagos", "Nigeria", "1500", base.Add(time.Hour)}},
		{`INSERT INTO shipping_rates (merchant_code, state, country, amount, created_at) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"M1", "Lagos", "Nigeria", "1200", base}},
	}

	for _, s := range stmts {
		_, err := pool.Exec(ctx, s.query, s.args...)
		require.NoError(t, err)
	}
}

func TestPricingRepositories(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()
	seedPricing(t, pool)

	ctx := context.Background()
	discounts := NewDiscountRepository(pool, zerolog.Nop())
	taxes := NewTaxRepository(pool, zerolog.Nop())
	shipping := NewShippingRepository(pool, zerolog.Nop())

	t.Run("Discount found", func(t *testing.T) {
		d, err := discounts.FindEnabledByCode(ctx, "M1", "SAVE10")

		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "10.00", d.DiscountValue.StringFixed(2))
		assert.Equal(t, 0, d.Quantity)
		assert.Nil(t, d.EndDate)
		assert.Equal(t, []string{"shoe"}, d.Products)
	})

	t.Run("Discount with threshold and end date", func(t *testing.T) {
		d, err := discounts.FindEnabledByCode(ctx, "M1", "BULK")

		require.NoError(t, err)
		require.NotNil(t, d)
		assert.Equal(t, "25.50", d.DiscountValue.StringFixed(2))
		assert.Equal(t, 3, d.Quantity)
		require.NotNil(t, d.EndDate)
	})

	t.Run("Disabled discount is not returned", func(t *testing.T) {
		d, err := discounts.FindEnabledByCode(ctx, "M1", "OFF")

		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("Discount is merchant scoped", func(t *testing.T) {
		d, err := discounts.FindEnabledByCode(ctx, "M1", "M2ONLY")

		require.NoError(t, err)
		assert.Nil(t, d)
	})

	t.Run("Tax picks earliest row", func(t *testing.T) {
		tax, err := taxes.FindEnabledByState(ctx, "M1", "Lagos")

		require.NoError(t, err)
		require.NotNil(t, tax)
		assert.Equal(t, "5.000", tax.StandardRate.StringFixed(3))
	})

	t.Run("Disabled tax is not returned", func(t *testing.T) {
		tax, err := taxes.FindEnabledByState(ctx, "M1", "Kano")

		require.NoError(t, err)
		assert.Nil(t, tax)
	})

	t.Run("Shipping picks earliest row", func(t *testing.T) {
		s, err := shipping.FindByState(ctx, "M1", "Lagos")

		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "1200.00", s.Amount.StringFixed(2))
	})

	t.Run("Shipping miss", func(t *testing.T) {
		s, err := shipping.FindByState(ctx, "M2", "Lagos")

		require.NoError(t, err)
		assert.Nil(t, s)
	})
}
