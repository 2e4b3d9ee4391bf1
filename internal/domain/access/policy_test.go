package access

import (
	"testing"
	"time"

	"movie-explorer-api/internal/domain/movies"
	"movie-explorer-api/internal/domain/subscriptions"
	"movie-explorer-api/internal/domain/users"
)

func TestCanView(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	viewer := &users.User{ID: 1, Email: "viewer@example.com", Role: users.RoleUser}

	sub := func(plan subscriptions.PlanType, status subscriptions.Status, expiresAt *time.Time) *subscriptions.Subscription {
		return &subscriptions.Subscription{UserID: 1, PlanType: plan, Status: status, ExpiresAt: expiresAt}
	}

	tests := []struct {
		name       string
		viewer     *users.User
		sub        *subscriptions.Subscription
		premium    bool
		wantAllow  bool
		wantReason DenyReason
	}{
		{"free movie anonymous", nil, nil, false, true, ""},
		{"free movie inactive subscription", viewer, sub(subscriptions.PlanBasic, subscriptions.StatusInactive, nil), false, true, ""},
		{"premium movie anonymous", nil, nil, true, false, ReasonUnauthenticated},
		{"premium movie no subscription", viewer, nil, true, false, ReasonNoSubscription},
		{"premium movie inactive subscription", viewer, sub(subscriptions.PlanPremium, subscriptions.StatusInactive, nil), true, false, ReasonInactiveSubscription},
		{"premium movie pending subscription", viewer, sub(subscriptions.PlanBasic, subscriptions.StatusPending, nil), true, false, ReasonInactiveSubscription},
		{"premium movie basic plan", viewer, sub(subscriptions.PlanBasic, subscriptions.StatusActive, nil), true, false, ReasonPlanInsufficient},
		{"premium movie premium non-expiring", viewer, sub(subscriptions.PlanPremium, subscriptions.StatusActive, nil), true, true, ""},
		{"premium movie premium unexpired", viewer, sub(subscriptions.PlanPremium, subscriptions.StatusActive, &future), true, true, ""},
		{"premium movie premium expired", viewer, sub(subscriptions.PlanPremium, subscriptions.StatusActive, &past), true, false, ReasonPlanInsufficient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			movie := movies.Movie{Title: "Movie", IsPremium: tt.premium}
			got := CanView(now, tt.viewer, tt.sub, movie)
			if got.Allowed != tt.wantAllow {
				t.Errorf("Allowed: got %v, want %v", got.Allowed, tt.wantAllow)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Reason: got %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}

func TestCanViewAppliesLazyExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)

	viewer := &users.User{ID: 7}
	sub := &subscriptions.Subscription{
		UserID:    7,
		PlanType:  subscriptions.PlanPremium,
		Status:    subscriptions.StatusActive,
		ExpiresAt: &past,
	}
	movie := movies.Movie{Title: "Premium", IsPremium: true}

	first := CanView(now, viewer, sub, movie)
	if first.Allowed {
		t.Fatal("expected deny for expired premium")
	}
	if first.Reason != ReasonPlanInsufficient {
		t.Fatalf("Reason: got %q, want %q", first.Reason, ReasonPlanInsufficient)
	}

	// the decision downgraded the record in place
	if sub.PlanType != subscriptions.PlanBasic {
		t.Errorf("PlanType after expiry: got %q, want %q", sub.PlanType, subscriptions.PlanBasic)
	}
	if sub.Status != subscriptions.StatusActive {
		t.Errorf("Status after expiry: got %q, want %q", sub.Status, subscriptions.StatusActive)
	}
	if sub.ExpiresAt != nil {
		t.Error("ExpiresAt should be cleared after lazy expiry")
	}

	// subsequent reads deny for the same reason, no further mutation
	second := CanView(now, viewer, sub, movie)
	if second.Reason != ReasonPlanInsufficient {
		t.Errorf("second Reason: got %q, want %q", second.Reason, ReasonPlanInsufficient)
	}
}
