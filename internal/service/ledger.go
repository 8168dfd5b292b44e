package service

import (
	"context"
	"fmt"

	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/repository"

	"github.com/rs/zerolog"
)

// LedgerScope selects which orders feed a customer's totals.
type LedgerScope string

const (
	// LedgerScopeMerchant counts only orders placed at the ledger's merchant.
	LedgerScopeMerchant LedgerScope = "merchant"

	// LedgerScopeGlobal counts the user's orders across every merchant.
	LedgerScopeGlobal LedgerScope = "global"
)

// LedgerUpdater keeps the per-merchant customer rows in step with order history.
type LedgerUpdater struct {
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	scope     LedgerScope
	avatarURL string
	logger    zerolog.Logger
}

// NewLedgerUpdater creates a ledger updater. avatarURL is stored for users without a photo.
func NewLedgerUpdater(
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	scope LedgerScope,
	avatarURL string,
	logger zerolog.Logger,
) *LedgerUpdater {
	if scope != LedgerScopeGlobal {
		scope = LedgerScopeMerchant
	}
	return &LedgerUpdater{
		orders:    orders,
		customers: customers,
		scope:     scope,
		avatarURL: avatarURL,
		logger:    logger.With().Str("service", "ledger").Logger(),
	}
}

// Upsert recomputes the user's order count and spend and writes them to the
// merchant's customer row, creating it if needed. Totals are recomputed from
// scratch so repeated calls converge on the same row.
func (l *LedgerUpdater) Upsert(ctx context.Context, user *model.User, merchant *model.Merchant) (*model.Customer, error) {
	scopeCode := merchant.MerchantCode
	if l.scope == LedgerScopeGlobal {
		scopeCode = ""
	}

	totals, err := l.orders.Totals(ctx, user.ID, scopeCode)
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Str("merchant_code", merchant.MerchantCode).
			Msg("failed to aggregate order totals")
		return nil, fmt.Errorf("failed to update customer ledger: %w", err)
	}

	photo := user.Photo
	if photo == "" {
		photo = l.avatarURL
	}

	customer, err := l.customers.Upsert(ctx, &model.Customer{
		MerchantCode: merchant.MerchantCode,
		UserID:       user.ID,
		Username:     user.Username,
		Email:        user.Email,
		Photo:        photo,
		TotalOrders:  totals.Count,
		TotalSpent:   totals.Spent,
	})
	if err != nil {
		l.logger.Error().
			Err(err).
			Str("user_id", user.ID.String()).
			Str("merchant_code", merchant.MerchantCode).
			Msg("failed to upsert customer")
		return nil, fmt.Errorf("failed to update customer ledger: %w", err)
	}

	l.logger.Debug().
		Str("merchant_code", merchant.MerchantCode).
		Str("username", user.Username).
		Int("total_orders", customer.TotalOrders).
		Str("total_spent", customer.TotalSpent.StringFixed(2)).
		Msg("customer ledger updated")

	return customer, nil
}
