package billing

import (
	"time"

	"movie-explorer-api/internal/domain/plans"
	"movie-explorer-api/internal/domain/users"
)

// Payment is one settled checkout. The unique session id doubles as the
// idempotency key for confirmation replays.
type Payment struct {
	ID              uint   `gorm:"primaryKey"`
	UserID          uint   `gorm:"not null;index:idx_payments_user_id"`
	User            users.User
	StripeSessionID string         `gorm:"not null;uniqueIndex:idx_payments_stripe_session_id"`
	Amount          float64        `gorm:"not null"`
	Validity        plans.Validity `gorm:"type:varchar(20);not null"`
	Status          string         `gorm:"not null"`
	CreatedAt       time.Time
}
