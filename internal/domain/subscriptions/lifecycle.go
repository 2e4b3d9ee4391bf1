package subscriptions

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("subscription not found")
	ErrNoPendingCheckout = errors.New("no pending checkout for this session")
	ErrSessionExpired    = errors.New("checkout session has expired")
	ErrAlreadyConfirmed  = errors.New("checkout already confirmed")
)

// ApplyLazyExpiry downgrades an expired premium subscription in place and
// reports whether anything changed. Expiry is enforced on read only; there is
// no background sweep.
func (s *Subscription) ApplyLazyExpiry(now time.Time) bool {
	if s.PlanType != PlanPremium || s.ExpiresAt == nil {
		return false
	}
	if now.Before(*s.ExpiresAt) {
		return false
	}
	s.PlanType = PlanBasic
	s.Status = StatusActive
	s.ExpiresAt = nil
	return true
}

// HasLiveCheckout reports whether an upgrade is already in flight with an
// unexpired checkout session. A second initiation must reuse that session
// instead of creating another one.
func (s *Subscription) HasLiveCheckout(now time.Time) bool {
	return s.Status == StatusPending &&
		s.StripeSessionID != nil && *s.StripeSessionID != "" &&
		s.SessionExpiresAt != nil && now.Before(*s.SessionExpiresAt)
}

// ExpireStaleCheckout reverts a pending upgrade whose checkout session ran
// out unconfirmed. The subscription falls back to the state it upgraded from.
func (s *Subscription) ExpireStaleCheckout(now time.Time) bool {
	if s.Status != StatusPending {
		return false
	}
	if s.SessionExpiresAt == nil || now.Before(*s.SessionExpiresAt) {
		return false
	}
	s.Status = StatusActive
	s.PendingValidity = nil
	s.StripeSessionID = nil
	s.CheckoutURL = nil
	s.SessionExpiresAt = nil
	return true
}

// CanConfirm checks whether a checkout confirmation may be applied to this
// subscription. ErrAlreadyConfirmed signals an idempotent replay, not a
// failure; the caller should report success without touching state again.
func (s *Subscription) CanConfirm(now time.Time) error {
	if s.Status != StatusPending {
		if s.Status == StatusActive && s.PlanType == PlanPremium {
			return ErrAlreadyConfirmed
		}
		return ErrNoPendingCheckout
	}
	if s.SessionExpiresAt != nil && !now.Before(*s.SessionExpiresAt) {
		return ErrSessionExpired
	}
	if s.PendingValidity == nil {
		return ErrNoPendingCheckout
	}
	return nil
}
