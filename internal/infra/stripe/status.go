package stripe

import "strings"

// Stripe-ish normalization used ONLY for checkout_session.payment_status
func NormalizePaymentStatus(s string) string {
	switch strings.TrimSpace(s) {
	case "paid", "no_payment_required":
		return "paid"
	case "unpaid":
		return "unpaid"
	case "":
		return "none"
	default:
		return strings.TrimSpace(s)
	}
}

func IsPaid(s string) bool {
	return NormalizePaymentStatus(s) == "paid"
}
