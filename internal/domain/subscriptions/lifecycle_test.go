package subscriptions

import (
	"errors"
	"testing"
	"time"

	"movie-explorer-api/internal/domain/plans"
)

func ptr[T any](v T) *T { return &v }

func TestApplyLazyExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name        string
		sub         Subscription
		wantChanged bool
		wantPlan    PlanType
	}{
		{"basic untouched", Subscription{PlanType: PlanBasic, Status: StatusActive}, false, PlanBasic},
		{"premium non-expiring untouched", Subscription{PlanType: PlanPremium, Status: StatusActive}, false, PlanPremium},
		{"premium unexpired untouched", Subscription{PlanType: PlanPremium, Status: StatusActive, ExpiresAt: &future}, false, PlanPremium},
		{"premium expired downgrades", Subscription{PlanType: PlanPremium, Status: StatusActive, ExpiresAt: &past}, true, PlanBasic},
		{"premium expired inactive downgrades", Subscription{PlanType: PlanPremium, Status: StatusInactive, ExpiresAt: &past}, true, PlanBasic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			changed := tt.sub.ApplyLazyExpiry(now)
			if changed != tt.wantChanged {
				t.Errorf("changed: got %v, want %v", changed, tt.wantChanged)
			}
			if tt.sub.PlanType != tt.wantPlan {
				t.Errorf("PlanType: got %q, want %q", tt.sub.PlanType, tt.wantPlan)
			}
			if changed {
				if tt.sub.Status != StatusActive {
					t.Errorf("Status after downgrade: got %q, want active", tt.sub.Status)
				}
				if tt.sub.ExpiresAt != nil {
					t.Error("ExpiresAt should be nil after downgrade")
				}
			}
		})
	}
}

func TestApplyLazyExpiryIdempotent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	sub := Subscription{PlanType: PlanPremium, Status: StatusActive, ExpiresAt: &past}
	if !sub.ApplyLazyExpiry(now) {
		t.Fatal("first application should downgrade")
	}
	if sub.ApplyLazyExpiry(now) {
		t.Error("second application should be a no-op")
	}
}

func TestHasLiveCheckout(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(30 * time.Minute)

	tests := []struct {
		name string
		sub  Subscription
		want bool
	}{
		{"active subscription", Subscription{Status: StatusActive}, false},
		{"pending without session", Subscription{Status: StatusPending}, false},
		{"pending with live session", Subscription{
			Status:           StatusPending,
			StripeSessionID:  ptr("cs_test_123"),
			SessionExpiresAt: &future,
		}, true},
		{"pending with expired session", Subscription{
			Status:           StatusPending,
			StripeSessionID:  ptr("cs_test_123"),
			SessionExpiresAt: &past,
		}, false},
		{"pending with empty session id", Subscription{
			Status:           StatusPending,
			StripeSessionID:  ptr(""),
			SessionExpiresAt: &future,
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sub.HasLiveCheckout(now); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpireStaleCheckout(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(30 * time.Minute)
	validity := plans.ValidityDaily

	t.Run("stale pending reverts", func(t *testing.T) {
		sub := Subscription{
			Status:           StatusPending,
			PlanType:         PlanBasic,
			StripeSessionID:  ptr("cs_test_stale"),
			CheckoutURL:      ptr("https://checkout.stripe.com/c/pay/cs_test_stale"),
			SessionExpiresAt: &past,
			PendingValidity:  &validity,
		}
		if !sub.ExpireStaleCheckout(now) {
			t.Fatal("expected revert")
		}
		if sub.Status != StatusActive || sub.PlanType != PlanBasic {
			t.Errorf("got %s/%s, want active/basic", sub.Status, sub.PlanType)
		}
		if sub.StripeSessionID != nil || sub.CheckoutURL != nil || sub.SessionExpiresAt != nil || sub.PendingValidity != nil {
			t.Error("checkout correlation should be cleared")
		}
	})

	t.Run("live pending untouched", func(t *testing.T) {
		sub := Subscription{
			Status:           StatusPending,
			StripeSessionID:  ptr("cs_test_live"),
			SessionExpiresAt: &future,
			PendingValidity:  &validity,
		}
		if sub.ExpireStaleCheckout(now) {
			t.Error("live checkout must not be reverted")
		}
		if sub.Status != StatusPending {
			t.Errorf("Status: got %q, want pending", sub.Status)
		}
	})

	t.Run("active untouched", func(t *testing.T) {
		sub := Subscription{Status: StatusActive, PlanType: PlanPremium}
		if sub.ExpireStaleCheckout(now) {
			t.Error("active subscription must not be touched")
		}
	})
}

func TestCanConfirm(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(30 * time.Minute)
	validity := plans.ValidityMonthly

	tests := []struct {
		name    string
		sub     Subscription
		wantErr error
	}{
		{"pending live session confirms", Subscription{
			Status:           StatusPending,
			StripeSessionID:  ptr("cs_test_123"),
			SessionExpiresAt: &future,
			PendingValidity:  &validity,
		}, nil},
		{"pending expired session rejected", Subscription{
			Status:           StatusPending,
			StripeSessionID:  ptr("cs_test_123"),
			SessionExpiresAt: &past,
			PendingValidity:  &validity,
		}, ErrSessionExpired},
		{"already confirmed is replay", Subscription{
			Status:           StatusActive,
			PlanType:         PlanPremium,
			StripeSessionID:  ptr("cs_test_123"),
			SessionExpiresAt: &future,
			PendingValidity:  &validity,
		}, ErrAlreadyConfirmed},
		{"inactive has nothing to confirm", Subscription{
			Status:          StatusInactive,
			StripeSessionID: ptr("cs_test_123"),
		}, ErrNoPendingCheckout},
		{"active basic has nothing to confirm", Subscription{
			Status:   StatusActive,
			PlanType: PlanBasic,
		}, ErrNoPendingCheckout},
		{"pending without validity rejected", Subscription{
			Status:           StatusPending,
			StripeSessionID:  ptr("cs_test_123"),
			SessionExpiresAt: &future,
		}, ErrNoPendingCheckout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sub.CanConfirm(now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanConfirmExpiredSessionLeavesStateUntouched(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	validity := plans.ValidityWeekly

	sub := Subscription{
		Status:           StatusPending,
		PlanType:         PlanBasic,
		StripeSessionID:  ptr("cs_test_expired"),
		SessionExpiresAt: &past,
		PendingValidity:  &validity,
	}

	if err := sub.CanConfirm(now); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("got %v, want ErrSessionExpired", err)
	}
	if sub.Status != StatusPending || sub.PlanType != PlanBasic {
		t.Error("rejected confirmation must not change the subscription")
	}
}
