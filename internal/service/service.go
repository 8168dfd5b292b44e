package service

import (
	"context"

	"github.com/horsh321/teem-server/internal/auth"
	"github.com/horsh321/teem-server/internal/model"
	"github.com/horsh321/teem-server/internal/notify"

	"github.com/google/uuid"
)

// OrderReceipt is the outcome of a successful order creation. Mail reports
// the best-effort confirmation email and never turns the call into an error.
type OrderReceipt struct {
	Order *model.Order
	Mail  notify.Result
}

// OrderService defines operations for the order pipeline.
type OrderService interface {
	// Checkout prices a cart without persisting anything.
	Checkout(ctx context.Context, merchantCode string, req *model.CheckoutRequest) (*model.Quote, error)

	// CreateOrder prices, persists and records an order for the caller, then
	// refreshes their customer ledger row and sends a confirmation email.
	CreateOrder(ctx context.Context, caller auth.Identity, merchantCode string, req *model.OrderRequest) (*OrderReceipt, error)

	// ListByMerchant returns a page of a merchant's orders, newest first.
	ListByMerchant(ctx context.Context, merchantCode string, page model.Page) (*model.OrderPage, error)

	// ListByCustomer returns a page of one user's orders at a merchant.
	ListByCustomer(ctx context.Context, merchantCode string, userID uuid.UUID, page model.Page) (*model.OrderPage, error)

	// GetByID retrieves one of the merchant's orders.
	GetByID(ctx context.Context, merchantCode string, orderID uuid.UUID) (*model.Order, error)

	// UpdateStatus applies a lifecycle patch and notifies the order owner of
	// payment and delivery.
	UpdateStatus(ctx context.Context, caller auth.Identity, merchantCode string, orderID uuid.UUID, patch model.OrderPatch) (*model.Order, error)

	// Cancel deletes an order. Only the order's owner may cancel it.
	Cancel(ctx context.Context, caller auth.Identity, merchantCode string, orderID uuid.UUID) error
}

// CustomerService defines read and delete access to a merchant's customer
// ledger. Callers must own the merchant or be an admin.
type CustomerService interface {
	ListByMerchant(ctx context.Context, caller auth.Identity, merchantCode string, page model.Page) (*model.CustomerPage, error)

	// GetByUsername returns the ledger row and the customer's orders at the merchant.
	GetByUsername(ctx context.Context, caller auth.Identity, merchantCode, username string) (*model.CustomerDetail, error)

	Delete(ctx context.Context, caller auth.Identity, merchantCode, username string) error
}
