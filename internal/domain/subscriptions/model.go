package subscriptions

import (
	"time"

	"movie-explorer-api/internal/domain/plans"
	"movie-explorer-api/internal/domain/users"
)

type PlanType string

const (
	PlanBasic   PlanType = "basic"
	PlanPremium PlanType = "premium"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Subscription is the single billing record a user owns. It is created
// together with the user (basic/active) and never deleted on its own;
// deleting the user cascades.
type Subscription struct {
	ID     uint       `gorm:"primaryKey"`
	UserID uint       `gorm:"not null;uniqueIndex:idx_subscriptions_user_id"`
	User   users.User `gorm:"constraint:OnDelete:CASCADE"`

	PlanType PlanType `gorm:"type:varchar(20);not null;default:'basic'"`
	Status   Status   `gorm:"type:varchar(20);not null;default:'active'"`

	// nil means non-expiring
	ExpiresAt *time.Time

	StripeCustomerID *string `gorm:"column:stripe_customer_id;uniqueIndex:idx_subscriptions_stripe_customer_id"`

	// Checkout correlation for an in-flight upgrade
	StripeSessionID  *string         `gorm:"column:stripe_session_id;uniqueIndex:idx_subscriptions_stripe_session_id"`
	SessionExpiresAt *time.Time      `gorm:"column:session_expires_at"`
	CheckoutURL      *string         `gorm:"column:checkout_url"`
	PendingValidity  *plans.Validity `gorm:"column:pending_validity;type:varchar(20)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewDefault is the subscription every user starts with.
func NewDefault(userID uint) Subscription {
	return Subscription{
		UserID:   userID,
		PlanType: PlanBasic,
		Status:   StatusActive,
	}
}
