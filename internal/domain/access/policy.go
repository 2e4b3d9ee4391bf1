package access

import (
	"time"

	"movie-explorer-api/internal/domain/movies"
	"movie-explorer-api/internal/domain/subscriptions"
	"movie-explorer-api/internal/domain/users"
)

// CanView decides whether viewer may see movie. viewer is nil for anonymous
// callers; sub is nil when the viewer has no subscription row. Identity is
// always passed in explicitly, never read from request context here.
//
// Non-premium movies are open to everyone, anonymous included. The only side
// effect is the lazy-expiry mutation of sub; persisting that downgrade is the
// caller's job (subscriptions.PersistExpiry is safe to call either way).
func CanView(now time.Time, viewer *users.User, sub *subscriptions.Subscription, movie movies.Movie) Decision {
	if !movie.IsPremium {
		return Allow()
	}

	if viewer == nil {
		return Deny(ReasonUnauthenticated)
	}
	if sub == nil {
		return Deny(ReasonNoSubscription)
	}

	sub.ApplyLazyExpiry(now)

	if sub.Status != subscriptions.StatusActive {
		return Deny(ReasonInactiveSubscription)
	}
	if sub.PlanType != subscriptions.PlanPremium {
		return Deny(ReasonPlanInsufficient)
	}
	return Allow()
}
