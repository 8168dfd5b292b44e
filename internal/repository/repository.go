package repository

import (
	"context"

	"github.com/horsh321/teem-server/internal/model"

	"github.com/google/uuid"
)

// Lookups that find nothing return a nil record and a nil error; callers
// decide whether absence is an error.

// MerchantRepository defines data access for merchant storefronts.
type MerchantRepository interface {
	// GetByCode retrieves a merchant by its public code.
	GetByCode(ctx context.Context, code string) (*model.Merchant, error)

	// Create inserts a merchant. Duplicate code, name or email is a Conflict.
	Create(ctx context.Context, merchant *model.Merchant) error
}

// UserRepository defines data access for platform accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)

	// Create inserts a user. Duplicate username or email is a Conflict.
	Create(ctx context.Context, user *model.User) error
}

// DiscountRepository reads merchant discount codes.
type DiscountRepository interface {
	// FindEnabledByCode returns the enabled discount with code at the merchant.
	FindEnabledByCode(ctx context.Context, merchantCode, code string) (*model.Discount, error)
}

// TaxRepository reads merchant tax rates.
type TaxRepository interface {
	// FindEnabledByState returns the earliest enabled rate for state at the merchant.
	FindEnabledByState(ctx context.Context, merchantCode, state string) (*model.Tax, error)
}

// ShippingRepository reads merchant shipping fees.
type ShippingRepository interface {
	// FindByState returns the earliest shipping row for state at the merchant.
	FindByState(ctx context.Context, merchantCode, state string) (*model.Shipping, error)
}

// OrderFilter narrows an order listing. A nil UserID lists every order at the merchant.
type OrderFilter struct {
	MerchantCode string
	UserID       *uuid.UUID
}

// OrderRepository defines data access for orders.
type OrderRepository interface {
	// Create inserts a new order, filling in its ID and timestamps when unset.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// List returns orders matching filter, newest first.
	List(ctx context.Context, filter OrderFilter, limit, offset int) ([]model.Order, error)

	// Count returns the number of orders matching filter.
	Count(ctx context.Context, filter OrderFilter) (int, error)

	// UpdateStatus persists the mutable lifecycle fields of order.
	UpdateStatus(ctx context.Context, order *model.Order) error

	// Delete removes an order. It reports whether a row was deleted.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)

	// Totals aggregates order count and spend for a user. An empty
	// merchantCode aggregates across every merchant.
	Totals(ctx context.Context, userID uuid.UUID, merchantCode string) (model.OrderTotals, error)
}

// CustomerRepository defines data access for the per-merchant customer ledger.
type CustomerRepository interface {
	// Upsert inserts or overwrites the row keyed by (merchant code, email)
	// and returns the stored row.
	Upsert(ctx context.Context, customer *model.Customer) (*model.Customer, error)

	// ListByMerchant returns a merchant's customers, newest first.
	ListByMerchant(ctx context.Context, merchantCode string, limit, offset int) ([]model.Customer, error)

	CountByMerchant(ctx context.Context, merchantCode string) (int, error)

	// GetByUsername retrieves the merchant's ledger row for username.
	GetByUsername(ctx context.Context, merchantCode, username string) (*model.Customer, error)

	// Delete removes the merchant's ledger row for username and reports whether one existed.
	Delete(ctx context.Context, merchantCode, username string) (bool, error)
}
