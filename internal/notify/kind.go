package notify

import "fmt"

// Kind identifies a notification template.
type Kind string

// Notification kinds.
const (
	KindOrderCreated    Kind = "order-created"
	KindPaymentReceived Kind = "payment-received"
	KindOrderDelivered  Kind = "order-delivered"
	KindMerchantCreated Kind = "merchant-created"
	KindWelcome         Kind = "welcome"
	KindLoginLink       Kind = "login-link"
	KindPasswordReset   Kind = "password-reset"
	KindPasswordChanged Kind = "password-changed"
)

// Data carries the values a template may interpolate.
type Data struct {
	OrderID      string
	Total        string
	Reference    string
	MerchantName string
	MerchantCode string
	Link         string
}

// ref is the payment reference when known and the order id otherwise.
func (d Data) ref() string {
	if d.Reference != "" {
		return d.Reference
	}
	return d.OrderID
}

type catalogEntry struct {
	subject      string
	intro        func(d Data, product string) string
	instructions string
	button       string
}

var catalog = map[Kind]catalogEntry{
	KindOrderCreated: {
		subject: "You created an order",
		intro: func(d Data, _ string) string {
			return fmt.Sprintf("Your order %s was successfully created. You are to pay #%s", d.OrderID, d.Total)
		},
	},
	KindPaymentReceived: {
		subject: "Payment received",
		intro: func(d Data, _ string) string {
			return fmt.Sprintf("We received your payment with reference id: %s.", d.ref())
		},
	},
	KindOrderDelivered: {
		subject: "Order fulfillment",
		intro: func(d Data, _ string) string {
			return fmt.Sprintf("We have successfully delivered your order with reference id: %s.", d.ref())
		},
	},
	KindMerchantCreated: {
		subject: "Start selling",
		intro: func(d Data, _ string) string {
			return fmt.Sprintf("Your merchant store %s was created. Your merchant code is %s.", d.MerchantName, d.MerchantCode)
		},
	},
	KindWelcome: {
		subject: "New user registration",
		intro: func(_ Data, product string) string {
			return fmt.Sprintf("Welcome to %s! We're very excited to have you on board.", product)
		},
	},
	KindLoginLink: {
		subject: "Your login code",
		intro: func(_ Data, _ string) string {
			return "Use the button below to sign in. The link expires in 5 minutes."
		},
		instructions: "Click the button to sign in:",
		button:       "Quick Login",
	},
	KindPasswordReset: {
		subject: "Password recovery link",
		intro: func(_ Data, _ string) string {
			return "You requested to reset your password. The link expires in 15 minutes. If this was not you, kindly ignore this email."
		},
		instructions: "Click the button to choose a new password:",
		button:       "Reset password",
	},
	KindPasswordChanged: {
		subject: "Password update",
		intro: func(_ Data, _ string) string {
			return "You have successfully changed your password"
		},
	},
}

// strict kinds surface send failures to the caller.
var strict = map[Kind]bool{
	KindLoginLink:     true,
	KindPasswordReset: true,
}

// Strict reports whether a failed send of kind must fail the calling operation.
func (k Kind) Strict() bool {
	return strict[k]
}
