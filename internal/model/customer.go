package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Customer is the per-merchant ledger row for one user. It is derived from
// order history and rewritten in full on every order.
type Customer struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	MerchantCode string          `json:"merchantCode" db:"merchant_code"`
	UserID       uuid.UUID       `json:"userId" db:"user_id"`
	Username     string          `json:"username" db:"username"`
	Email        string          `json:"email" db:"email"`
	Photo        string          `json:"photo" db:"photo"`
	TotalOrders  int             `json:"totalOrders" db:"total_orders"`
	TotalSpent   decimal.Decimal `json:"totalSpent" db:"total_spent"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderTotals is an aggregate over a user's orders.
type OrderTotals struct {
	Count int
	Spent decimal.Decimal
}

// CustomerPage is one page of a merchant's customers.
type CustomerPage struct {
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
	Count       int        `json:"count"`
	Customers   []Customer `json:"customers"`
}

// CustomerDetail is a customer with their orders at one merchant.
type CustomerDetail struct {
	Customer       Customer `json:"customer"`
	CustomerOrders []Order  `json:"customerOrders"`
}
