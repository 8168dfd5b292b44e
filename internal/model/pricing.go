package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Discount is a merchant-scoped promotional code.
type Discount struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	MerchantCode  string          `json:"merchantCode" db:"merchant_code"`
	DiscountCode  string          `json:"discountCode" db:"discount_code"`
	DiscountValue decimal.Decimal `json:"discountValue" db:"discount_value"`
	Quantity      int             `json:"quantity" db:"quantity"`
	StartDate     *time.Time      `json:"startDate,omitempty" db:"start_date"`
	EndDate       *time.Time      `json:"endDate,omitempty" db:"end_date"`
	Products      []string        `json:"products" db:"products"`
	Enabled       bool            `json:"enabled" db:"enabled"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
}

// Tax is a merchant-scoped rate keyed by destination state.
type Tax struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	MerchantCode string          `json:"merchantCode" db:"merchant_code"`
	State        string          `json:"state" db:"state"`
	Country      string          `json:"country" db:"country"`
	StandardRate decimal.Decimal `json:"standardRate" db:"standard_rate"`
	Enabled      bool            `json:"enabled" db:"enabled"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}

// Shipping is a merchant-scoped flat fee keyed by destination state.
type Shipping struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	MerchantCode string          `json:"merchantCode" db:"merchant_code"`
	State        string          `json:"state" db:"state"`
	Country      string          `json:"country" db:"country"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt    time.Time       `json:"createdAt" db:"created_at"`
}
