package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization role embedded in a session token.
type Role string

// Known roles.
const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Merchant is a seller storefront. UserID is the owning account.
type Merchant struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"userId" db:"user_id"`
	MerchantCode  string    `json:"merchantCode" db:"merchant_code"`
	MerchantName  string    `json:"merchantName" db:"merchant_name"`
	MerchantEmail string    `json:"merchantEmail" db:"merchant_email"`
	Currency      string    `json:"currency" db:"currency"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// User is a platform account.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Photo     string    `json:"photo,omitempty" db:"photo"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
