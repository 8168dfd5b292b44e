package service

import (
	"context"
	"errors"
	"testing"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAvatar = "https://cdn.teem.store/avatars/default.png"

func TestLedgerUpdater_Scope(t *testing.T) {
	user := &model.User{ID: uuid.New(), Username: "ada", Email: "ada@example.com"}
	merchant := &model.Merchant{MerchantCode: "M1"}

	tests := []struct {
		name      string
		scope     LedgerScope
		wantScope string
	}{
		{name: "merchant scope", scope: LedgerScopeMerchant, wantScope: "M1"},
		{name: "global scope", scope: LedgerScopeGlobal, wantScope: ""},
		{name: "unknown falls back to merchant", scope: "", wantScope: "M1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			orders := new(MockOrderRepository)
			customers := new(MockCustomerRepository)

			totals := model.OrderTotals{Count: 3, Spent: decimal.RequireFromString("4500.50")}
			orders.On("Totals", ctx, user.ID, tt.wantScope).Return(totals, nil)
			customers.On("Upsert", ctx, mock.MatchedBy(func(c *model.Customer) bool {
				return c.MerchantCode == "M1" &&
					c.UserID == user.ID &&
					c.TotalOrders == 3 &&
					c.TotalSpent.Equal(totals.Spent) &&
					c.Photo == testAvatar
			})).Return(&model.Customer{MerchantCode: "M1", TotalOrders: 3, TotalSpent: totals.Spent}, nil)

			ledger := NewLedgerUpdater(orders, customers, tt.scope, testAvatar, zerolog.Nop())
			customer, err := ledger.Upsert(ctx, user, merchant)

			require.NoError(t, err)
			assert.Equal(t, 3, customer.TotalOrders)
			orders.AssertExpectations(t)
			customers.AssertExpectations(t)
		})
	}
}

func TestLedgerUpdater_KeepsUserPhoto(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: uuid.New(), Username: "ada", Email: "ada@example.com", Photo: "https://img/ada.png"}
	orders := new(MockOrderRepository)
	customers := new(MockCustomerRepository)

	orders.On("Totals", ctx, user.ID, "M1").Return(model.OrderTotals{Count: 1, Spent: decimal.NewFromInt(10)}, nil)
	customers.On("Upsert", ctx, mock.MatchedBy(func(c *model.Customer) bool {
		return c.Photo == "https://img/ada.png"
	})).Return(&model.Customer{}, nil)

	ledger := NewLedgerUpdater(orders, customers, LedgerScopeMerchant, testAvatar, zerolog.Nop())
	_, err := ledger.Upsert(ctx, user, &model.Merchant{MerchantCode: "M1"})

	require.NoError(t, err)
	customers.AssertExpectations(t)
}

func TestLedgerUpdater_Idempotent(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: uuid.New(), Username: "ada", Email: "ada@example.com"}
	orders := new(MockOrderRepository)
	customers := new(MockCustomerRepository)

	var written []model.Customer
	orders.On("Totals", ctx, user.ID, "M1").Return(model.OrderTotals{Count: 2, Spent: decimal.NewFromInt(300)}, nil)
	customers.On("Upsert", ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			written = append(written, *args.Get(1).(*model.Customer))
		}).
		Return(&model.Customer{}, nil)

	ledger := NewLedgerUpdater(orders, customers, LedgerScopeMerchant, testAvatar, zerolog.Nop())
	for i := 0; i < 2; i++ {
		_, err := ledger.Upsert(ctx, user, &model.Merchant{MerchantCode: "M1"})
		require.NoError(t, err)
	}

	require.Len(t, written, 2)
	assert.Equal(t, written[0], written[1])
}

func TestLedgerUpdater_Errors(t *testing.T) {
	ctx := context.Background()
	user := &model.User{ID: uuid.New()}
	merchant := &model.Merchant{MerchantCode: "M1"}

	t.Run("totals", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		orders.On("Totals", ctx, user.ID, "M1").Return(model.OrderTotals{}, errors.New("db down"))

		_, err := NewLedgerUpdater(orders, customers, LedgerScopeMerchant, testAvatar, zerolog.Nop()).Upsert(ctx, user, merchant)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to update customer ledger")
		customers.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("upsert", func(t *testing.T) {
		orders := new(MockOrderRepository)
		customers := new(MockCustomerRepository)
		orders.On("Totals", ctx, user.ID, "M1").Return(model.OrderTotals{}, nil)
		customers.On("Upsert", ctx, mock.Anything).Return(nil, errors.New("db down"))

		_, err := NewLedgerUpdater(orders, customers, LedgerScopeMerchant, testAvatar, zerolog.Nop()).Upsert(ctx, user, merchant)

		require.Error(t, err)
	})
}
