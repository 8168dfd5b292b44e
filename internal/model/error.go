package model

import "strconv"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorKind classifies a domain error for transport mapping.
type ErrorKind int

// Error kinds, one per HTTP-facing category.
const (
	KindValidation ErrorKind = iota + 1
	KindNotFound
	KindConflict
	KindUnauthorized
	KindForbidden
	KindRateLimited
	KindUnexpected
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeMissingField      = "MISSING_FIELD"
	ErrCodeMissingMerchant   = "MISSING_MERCHANT_CODE"
	ErrCodeInvalidOrderID    = "INVALID_ORDER_ID"
	ErrCodeInvalidUserID     = "INVALID_USER_ID"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeEmptyPatch        = "EMPTY_PATCH"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidSubTotal   = "INVALID_SUBTOTAL"
	ErrCodeInvalidPayment    = "INVALID_PAYMENT_METHOD"
	ErrCodeInvalidStatus     = "INVALID_ORDER_STATUS"
	ErrCodeInvalidTransition = "INVALID_TRANSITION"
	ErrCodeInvalidDiscount   = "INVALID_DISCOUNT_CODE"
	ErrCodeDiscountExpired   = "DISCOUNT_EXPIRED"
	ErrCodeDiscountQuantity  = "DISCOUNT_QUANTITY_NOT_MET"
	ErrCodeMerchantNotFound  = "MERCHANT_NOT_FOUND"
	ErrCodeUserNotFound      = "USER_NOT_FOUND"
	ErrCodeOrderNotFound     = "ORDER_NOT_FOUND"
	ErrCodeCustomerNotFound  = "CUSTOMER_NOT_FOUND"
	ErrCodeDuplicate         = "DUPLICATE"
	ErrCodeUnauthenticated   = "UNAUTHENTICATED"
	ErrCodeTokenFormat       = "INVALID_TOKEN_FORMAT"
	ErrCodeSessionExpired    = "SESSION_EXPIRED"
	ErrCodeNotOrderOwner     = "NOT_ORDER_OWNER"
	ErrCodeNoRole            = "NO_ROLE"
	ErrCodeRoleNotAllowed    = "ROLE_NOT_ALLOWED"
	ErrCodeMerchantAccess    = "MERCHANT_ACCESS_DENIED"
	ErrCodePaymentOnlyPatch  = "PAYMENT_ONLY_PATCH"
	ErrCodeRateLimited       = "RATE_LIMITED"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// DomainError is a business-logic error carrying its category and a client-safe message.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a domain error of the same kind and code, so
// errors.Is matches errors built with a custom message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// Validation returns a validation error with a custom message.
func Validation(code, message string) *DomainError {
	return NewDomainError(KindValidation, code, message)
}

// ErrMissingField matches any error produced by MissingField.
var ErrMissingField = Validation(ErrCodeMissingField, "A required field is missing")

// MissingField is returned when a required request field is absent.
func MissingField(name string) *DomainError {
	return Validation(ErrCodeMissingField, name+" is required")
}

// Common domain errors
var (
	ErrInvalidJSON        = NewDomainError(KindValidation, ErrCodeInvalidJSON, "invalid request body")
	ErrMissingMerchant    = NewDomainError(KindValidation, ErrCodeMissingMerchant, "Merchant code is missing")
	ErrInvalidOrderID     = NewDomainError(KindValidation, ErrCodeInvalidOrderID, "invalid order ID format")
	ErrInvalidUserID      = NewDomainError(KindValidation, ErrCodeInvalidUserID, "invalid user ID format")
	ErrEmptyCart          = NewDomainError(KindValidation, ErrCodeEmptyCart, "No order items to process!")
	ErrEmptyPatch         = NewDomainError(KindValidation, ErrCodeEmptyPatch, "Nothing to update")
	ErrInvalidQuantity    = NewDomainError(KindValidation, ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidSubTotal    = NewDomainError(KindValidation, ErrCodeInvalidSubTotal, "Subtotal cannot be negative")
	ErrInvalidPayment     = NewDomainError(KindValidation, ErrCodeInvalidPayment, "Payment method must be one of: Pay on delivery, Paystack")
	ErrInvalidOrderStatus = NewDomainError(KindValidation, ErrCodeInvalidStatus, "Order status must be one of: open, processing, fulfilled")
	ErrInvalidTransition  = NewDomainError(KindValidation, ErrCodeInvalidTransition, "Order status cannot move backwards")

	ErrInvalidDiscountCode = NewDomainError(KindValidation, ErrCodeInvalidDiscount, "discount code not valid!")
	ErrDiscountExpired     = NewDomainError(KindValidation, ErrCodeDiscountExpired, "Discount code expired!")

	ErrMerchantNotFound = NewDomainError(KindNotFound, ErrCodeMerchantNotFound, "Merchant account not found")
	ErrUserNotFound     = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found")
	ErrOrderNotFound    = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrCustomerNotFound = NewDomainError(KindNotFound, ErrCodeCustomerNotFound, "Customer not found")

	ErrUnauthenticated = NewDomainError(KindUnauthorized, ErrCodeUnauthenticated, "You are unauthenticated, pls login")
	ErrTokenFormat     = NewDomainError(KindUnauthorized, ErrCodeTokenFormat, "Token format is invalid")
	ErrSessionExpired  = NewDomainError(KindUnauthorized, ErrCodeSessionExpired, "Session expired, pls login")
	ErrNotOrderOwner   = NewDomainError(KindUnauthorized, ErrCodeNotOrderOwner, "Unauthorized! You can only delete your orders")

	ErrNoRole           = NewDomainError(KindForbidden, ErrCodeNoRole, "Error: user does not have a role assigned")
	ErrRoleNotAllowed   = NewDomainError(KindForbidden, ErrCodeRoleNotAllowed, "User not authorized for this request")
	ErrMerchantAccess   = NewDomainError(KindForbidden, ErrCodeMerchantAccess, "You cannot access this merchant's records")
	ErrPaymentOnlyPatch = NewDomainError(KindForbidden, ErrCodePaymentOnlyPatch, "Customers can only confirm payment on their orders")

	ErrRateLimited = NewDomainError(KindRateLimited, ErrCodeRateLimited, "Too many requests, please try again later")
)

// ErrQuantityNotMet matches any error produced by QuantityNotMet.
var ErrQuantityNotMet = NewDomainError(KindValidation, ErrCodeDiscountQuantity, "Discount quantity threshold not met")

// QuantityNotMet is returned when the cart quantity is below a discount's threshold.
func QuantityNotMet(threshold int) *DomainError {
	return NewDomainError(
		KindValidation,
		ErrCodeDiscountQuantity,
		"Discount code valid for "+strconv.Itoa(threshold)+" items! Buy more.",
	)
}
