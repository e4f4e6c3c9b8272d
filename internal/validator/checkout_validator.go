package validator

import (
	"regexp"
	"strings"
)

// FieldError points at one invalid request field.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// CheckoutForm carries the customer-entered checkout fields.
type CheckoutForm struct {
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	DeliveryAddress string
	Wilaya          string
	Commune         string
	PaymentMethod   string
}

var (
	phoneRe = regexp.MustCompile(`^\+?[0-9 .-]{9,20}$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidateCheckout checks structure only; stock, pricing and tenant policy
// are checked later against live data. Returns one entry per bad field.
func ValidateCheckout(f CheckoutForm) []FieldError {
	var errs []FieldError

	if strings.TrimSpace(f.CustomerName) == "" {
		errs = append(errs, FieldError{Path: "customer_name", Message: "name is required"})
	}
	if !phoneRe.MatchString(strings.TrimSpace(f.CustomerPhone)) {
		errs = append(errs, FieldError{Path: "customer_phone", Message: "valid phone number is required"})
	}
	if e := strings.TrimSpace(f.CustomerEmail); e != "" && !emailRe.MatchString(e) {
		errs = append(errs, FieldError{Path: "customer_email", Message: "email is invalid"})
	}
	if strings.TrimSpace(f.DeliveryAddress) == "" {
		errs = append(errs, FieldError{Path: "delivery_address", Message: "delivery address is required"})
	}
	if strings.TrimSpace(f.Wilaya) == "" {
		errs = append(errs, FieldError{Path: "wilaya", Message: "wilaya is required"})
	}
	if strings.TrimSpace(f.Commune) == "" {
		errs = append(errs, FieldError{Path: "commune", Message: "commune is required"})
	}

	switch f.PaymentMethod {
	case "cash", "card":
	default:
		errs = append(errs, FieldError{Path: "payment_method", Message: "payment method must be cash or card"})
	}

	return errs
}
