package plans

import (
	"fmt"
	"strings"
	"time"

	"movie-explorer-api/config"
)

// Validity is the purchased premium duration. It is a closed set; the
// plan_type (basic/premium) dimension lives on the subscription itself.
type Validity string

const (
	ValidityDaily   Validity = "daily"
	ValidityWeekly  Validity = "weekly"
	ValidityMonthly Validity = "monthly"
)

var ErrUnknownValidity = fmt.Errorf("unknown validity")

// ParseValidity normalizes user input to one of the three known validities.
func ParseValidity(s string) (Validity, error) {
	switch Validity(strings.ToLower(strings.TrimSpace(s))) {
	case ValidityDaily:
		return ValidityDaily, nil
	case ValidityWeekly:
		return ValidityWeekly, nil
	case ValidityMonthly:
		return ValidityMonthly, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownValidity, s)
}

func (v Validity) Duration() time.Duration {
	switch v {
	case ValidityDaily:
		return 24 * time.Hour
	case ValidityWeekly:
		return 7 * 24 * time.Hour
	case ValidityMonthly:
		return 30 * 24 * time.Hour
	}
	return 0
}

func (v Validity) Amount() float64 {
	switch v {
	case ValidityDaily:
		return 199.00
	case ValidityWeekly:
		return 499.00
	case ValidityMonthly:
		return 999.00
	}
	return 0
}

// StripePriceID maps a validity to the configured Stripe price.
func (v Validity) StripePriceID() string {
	switch v {
	case ValidityDaily:
		return config.STRIPE_PRICE_DAILY
	case ValidityWeekly:
		return config.STRIPE_PRICE_WEEKLY
	case ValidityMonthly:
		return config.STRIPE_PRICE_MONTHLY
	}
	return ""
}
