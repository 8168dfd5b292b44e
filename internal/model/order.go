package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a customer settles an order.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentOnDelivery PaymentMethod = "Pay on delivery"
	PaymentGateway    PaymentMethod = "Paystack"
)

// Valid reports whether m is one of the supported payment methods.
func (m PaymentMethod) Valid() bool {
	return m == PaymentOnDelivery || m == PaymentGateway
}

// OrderStatus is the fulfillment stage of an order.
type OrderStatus string

// Order statuses in their natural forward order.
const (
	StatusOpen       OrderStatus = "open"
	StatusProcessing OrderStatus = "processing"
	StatusFulfilled  OrderStatus = "fulfilled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	return s.Rank() > 0
}

// Rank returns the position of s in the forward lifecycle, or 0 when unknown.
func (s OrderStatus) Rank() int {
	switch s {
	case StatusOpen:
		return 1
	case StatusProcessing:
		return 2
	case StatusFulfilled:
		return 3
	default:
		return 0
	}
}

// Order represents one purchase transaction against a merchant.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          uuid.UUID       `json:"userId" db:"user_id"`
	MerchantCode    string          `json:"merchantCode" db:"merchant_code"`
	Reference       *string         `json:"reference,omitempty" db:"reference"`
	OrderItems      []OrderItem     `json:"orderItems" db:"order_items"`
	ShippingDetails ShippingDetails `json:"shippingDetails" db:"shipping_details"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	Quantity        int             `json:"quantity" db:"quantity"`
	DiscountCode    *string         `json:"discountCode,omitempty" db:"discount_code"`
	SubTotal        decimal.Decimal `json:"subTotal" db:"sub_total"`
	TaxPrice        decimal.Decimal `json:"taxPrice" db:"tax_price"`
	ShippingFee     decimal.Decimal `json:"shippingFee" db:"shipping_fee"`
	Discount        decimal.Decimal `json:"discount" db:"discount"`
	Total           decimal.Decimal `json:"total" db:"total"`
	IsPaid          bool            `json:"isPaid" db:"is_paid"`
	PaidAt          *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	IsDelivered     bool            `json:"isDelivered" db:"is_delivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	OrderStatus     OrderStatus     `json:"orderStatus" db:"order_status"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// OrderItem is a line item snapshot; it is never modified after the order is created.
type OrderItem struct {
	Name     string          `json:"name"`
	Slug     string          `json:"slug"`
	Quantity int             `json:"quantity"`
	Image    []string        `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Brand    string          `json:"brand"`
}

// ShippingDetails is the destination captured at order time.
type ShippingDetails struct {
	FullName string `json:"fullname" validate:"required"`
	Address  string `json:"address" validate:"required"`
	Phone    string `json:"phone"`
	State    string `json:"state" validate:"required"`
	Country  string `json:"country" validate:"required"`
}

// CheckoutRequest is the payload for a price quote.
type CheckoutRequest struct {
	Quantity        int             `json:"quantity"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	DiscountCode    string          `json:"discountCode,omitempty"`
	SubTotal        decimal.Decimal `json:"subTotal"`
}

// OrderRequest represents the request payload for creating an order.
type OrderRequest struct {
	OrderItems      []OrderItem     `json:"orderItems"`
	Quantity        int             `json:"quantity"`
	ShippingDetails ShippingDetails `json:"shippingDetails"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	DiscountCode    string          `json:"discountCode,omitempty"`
	SubTotal        decimal.Decimal `json:"subTotal"`
}

// Quote is a priced but unpersisted cart.
type Quote struct {
	DiscountValue  decimal.Decimal `json:"discountValue"`
	DiscountCode   string          `json:"discountCode,omitempty"`
	SubTotal       decimal.Decimal `json:"subTotal"`
	CalcTax        decimal.Decimal `json:"calcTax"`
	GetShippingFee decimal.Decimal `json:"getShippingFee"`
	Total          decimal.Decimal `json:"total"`
}

// OrderPatch lists the fields a status update may set. A nil field is left untouched.
type OrderPatch struct {
	OrderStatus *OrderStatus `json:"orderStatus,omitempty"`
	IsPaid      *bool        `json:"isPaid,omitempty"`
	IsDelivered *bool        `json:"isDelivered,omitempty"`
	Reference   *string      `json:"reference,omitempty"`
}

// Empty reports whether the patch sets nothing.
func (p OrderPatch) Empty() bool {
	return p.OrderStatus == nil && p.IsPaid == nil && p.IsDelivered == nil && p.Reference == nil
}

// PaymentOnly reports whether the patch only confirms payment: it may set
// isPaid to true and carry a reference, nothing else.
func (p OrderPatch) PaymentOnly() bool {
	if p.OrderStatus != nil || p.IsDelivered != nil {
		return false
	}
	return p.IsPaid == nil || *p.IsPaid
}

// OrderPage is one page of a merchant or customer order listing.
type OrderPage struct {
	CurrentPage int     `json:"currentPage"`
	TotalPages  int     `json:"totalPages"`
	Count       int     `json:"count"`
	Orders      []Order `json:"orders"`
}

// Page holds normalised pagination parameters.
type Page struct {
	Number int
	Limit  int
}

// Offset returns the number of rows to skip.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages returns the page count for count rows.
func (p Page) TotalPages(count int) int {
	if p.Limit <= 0 {
		return 0
	}
	return (count + p.Limit - 1) / p.Limit
}
