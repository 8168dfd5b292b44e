//go:build ignore

// seed_sample_data creates a seller, a buyer and a merchant with a discount
// code, a tax rate and a shipping rate, for trying the API locally.
//
// Discount codes:
//
//	SAVE10   10% off, no quantity threshold
//	BULK20   20% off, 5 items or more
//	EXPIRED  25% off, ended yesterday
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/horsh321/teem-server/internal/config"
	"github.com/horsh321/teem-server/internal/database"
	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/repository"

	"github.com/google/uuid"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	logger := config.NewLogger(cfg.Logger)

	ctx := context.Background()
	db := database.NewHandle(cfg.Database, logger)
	defer db.Close()

	pool, err := db.Open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	if err := database.Migrate(ctx, pool, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
		os.Exit(1)
	}

	users := repository.NewUserRepository(pool, logger)
	merchants := repository.NewMerchantRepository(pool, logger)

	suffix := uuid.NewString()[:6]
	seller := &model.User{Username: "seller-" + suffix, Email: "seller-" + suffix + "@example.com", Role: model.RoleSeller}
	buyer := &model.User{Username: "buyer-" + suffix, Email: "buyer-" + suffix + "@example.com", Role: model.RoleUser}
	for _, u := range []*model.User{seller, buyer} {
		if err := users.Create(ctx, u); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", u.Username, err)
			os.Exit(1)
		}
	}

	merchant := &model.Merchant{
		UserID:        seller.ID,
		MerchantCode:  "DEMO" + suffix,
		MerchantName:  "Demo Store " + suffix,
		MerchantEmail: "store-" + suffix + "@example.com",
	}
	if err := merchants.Create(ctx, merchant); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create merchant: %v\n", err)
		os.Exit(1)
	}

	yesterday := time.Now().Add(-24 * time.Hour)
	statements := []struct {
		sql  string
		args []interface{}
	}{
		{
			`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, enabled) VALUES ($1, 'SAVE10', '10', 0, TRUE)`,
			[]interface{}{merchant.MerchantCode},
		},
		{
			`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, enabled) VALUES ($1, 'BULK20', '20', 5, TRUE)`,
			[]interface{}{merchant.MerchantCode},
		},
		{
			`INSERT INTO discounts (merchant_code, discount_code, discount_value, quantity, end_date, enabled) VALUES ($1, 'EXPIRED', '25', 0, $2, TRUE)`,
			[]interface{}{merchant.MerchantCode, yesterday},
		},
		{
			`INSERT INTO taxes (merchant_code, state, country, standard_rate, enabled) VALUES ($1, 'Lagos', 'Nigeria', '7.5', TRUE)`,
			[]interface{}{merchant.MerchantCode},
		},
		{
			`INSERT INTO shipping_rates (merchant_code, state, country, amount) VALUES ($1, 'Lagos', 'Nigeria', '1500')`,
			[]interface{}{merchant.MerchantCode},
		},
	}
	for _, st := range statements {
		if _, err := pool.Exec(ctx, st.sql, st.args...); err != nil {
			fmt.Fprintf(os.Stderr, "Seed statement failed: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("merchant code: %s\n", merchant.MerchantCode)
	fmt.Printf("seller id:     %s\n", seller.ID)
	fmt.Printf("buyer id:      %s\n", buyer.ID)
}
