package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() CheckoutForm {
	return CheckoutForm{
		CustomerName:    "Amine B",
		CustomerPhone:   "+213 555 12 34 56",
		CustomerEmail:   "amine@example.com",
		DeliveryAddress: "12 rue des Oliviers",
		Wilaya:          "Alger",
		Commune:         "Bab El Oued",
		PaymentMethod:   "cash",
	}
}

func TestValidateCheckout(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CheckoutForm)
		wantPaths []string
	}{
		{
			name:      "valid form",
			mutate:    func(f *CheckoutForm) {},
			wantPaths: nil,
		},
		{
			name:      "missing name",
			mutate:    func(f *CheckoutForm) { f.CustomerName = "  " },
			wantPaths: []string{"customer_name"},
		},
		{
			name:      "phone too short",
			mutate:    func(f *CheckoutForm) { f.CustomerPhone = "12345" },
			wantPaths: []string{"customer_phone"},
		},
		{
			name:      "phone with letters",
			mutate:    func(f *CheckoutForm) { f.CustomerPhone = "call me maybe" },
			wantPaths: []string{"customer_phone"},
		},
		{
			name:      "local phone without prefix",
			mutate:    func(f *CheckoutForm) { f.CustomerPhone = "0555 12 34 56" },
			wantPaths: nil,
		},
		{
			name:      "empty email is fine",
			mutate:    func(f *CheckoutForm) { f.CustomerEmail = "" },
			wantPaths: nil,
		},
		{
			name:      "malformed email",
			mutate:    func(f *CheckoutForm) { f.CustomerEmail = "not-an-email" },
			wantPaths: []string{"customer_email"},
		},
		{
			name:      "missing address",
			mutate:    func(f *CheckoutForm) { f.DeliveryAddress = "" },
			wantPaths: []string{"delivery_address"},
		},
		{
			name:      "missing wilaya",
			mutate:    func(f *CheckoutForm) { f.Wilaya = "" },
			wantPaths: []string{"wilaya"},
		},
		{
			name:      "missing commune",
			mutate:    func(f *CheckoutForm) { f.Commune = "" },
			wantPaths: []string{"commune"},
		},
		{
			name:      "unknown payment method",
			mutate:    func(f *CheckoutForm) { f.PaymentMethod = "cheque" },
			wantPaths: []string{"payment_method"},
		},
		{
			name:      "card is structurally valid",
			mutate:    func(f *CheckoutForm) { f.PaymentMethod = "card" },
			wantPaths: nil,
		},
		{
			name: "multiple failures reported together",
			mutate: func(f *CheckoutForm) {
				f.CustomerName = ""
				f.CustomerPhone = "x"
				f.Wilaya = ""
			},
			wantPaths: []string{"customer_name", "customer_phone", "wilaya"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			errs := ValidateCheckout(f)

			var paths []string
			for _, e := range errs {
				paths = append(paths, e.Path)
				assert.NotEmpty(t, e.Message)
			}
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}
