package access

type DenyReason string

const (
	ReasonUnauthenticated      DenyReason = "unauthenticated"
	ReasonNoSubscription       DenyReason = "no_subscription"
	ReasonInactiveSubscription DenyReason = "inactive_subscription"
	ReasonPlanInsufficient     DenyReason = "plan_insufficient"
)

// Decision is the outcome of an access check. Reason is set only on deny.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}
