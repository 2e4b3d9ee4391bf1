package subscriptions

import (
	"errors"
	"time"

	"movie-explorer-api/internal/domain/plans"

	"gorm.io/gorm"
)

func ForUser(db *gorm.DB, userID uint) (Subscription, error) {
	var sub Subscription
	if err := db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Subscription{}, ErrNotFound
		}
		return Subscription{}, err
	}
	return sub, nil
}

func BySessionID(db *gorm.DB, sessionID string) (Subscription, error) {
	var sub Subscription
	if err := db.Where("stripe_session_id = ?", sessionID).First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Subscription{}, ErrNotFound
		}
		return Subscription{}, err
	}
	return sub, nil
}

// MarkPending records a freshly created checkout session. It is called only
// after the Stripe call succeeded, so a provider failure never leaves a
// half-written pending row behind.
func MarkPending(db *gorm.DB, id uint, sessionID, checkoutURL string, sessionExpiresAt time.Time, v plans.Validity) error {
	return db.Model(&Subscription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             StatusPending,
			"pending_validity":   v,
			"stripe_session_id":  sessionID,
			"checkout_url":       checkoutURL,
			"session_expires_at": sessionExpiresAt,
		}).Error
}

// Confirm promotes the pending subscription matching sessionID to
// active/premium. The write is a single conditional UPDATE keyed by session id
// and pending status, so a duplicate webhook-style delivery or a read racing
// the confirmation cannot apply it twice or observe a half-updated row.
func Confirm(db *gorm.DB, sessionID string, now time.Time) (Subscription, error) {
	sub, err := BySessionID(db, sessionID)
	if err != nil {
		return Subscription{}, err
	}

	if err := sub.CanConfirm(now); err != nil {
		if errors.Is(err, ErrAlreadyConfirmed) {
			return sub, nil
		}
		return Subscription{}, err
	}

	expiresAt := now.Add(sub.PendingValidity.Duration())
	res := db.Model(&Subscription{}).
		Where("stripe_session_id = ? AND status = ?", sessionID, StatusPending).
		Updates(map[string]interface{}{
			"plan_type":  PlanPremium,
			"status":     StatusActive,
			"expires_at": expiresAt,
		})
	if res.Error != nil {
		return Subscription{}, res.Error
	}
	// RowsAffected == 0 means a concurrent confirmation won; either way the
	// re-read below returns the settled state.
	if err := db.First(&sub, sub.ID).Error; err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

// PersistExpiry writes a lazy downgrade back. Conditional on the row still
// being an expired premium so it cannot clobber a confirmation that landed in
// between the read and this write.
func PersistExpiry(db *gorm.DB, id uint, now time.Time) error {
	return db.Model(&Subscription{}).
		Where("id = ? AND plan_type = ? AND expires_at IS NOT NULL AND expires_at < ?", id, PlanPremium, now).
		Updates(map[string]interface{}{
			"plan_type":  PlanBasic,
			"status":     StatusActive,
			"expires_at": nil,
		}).Error
}

// PersistStaleCheckout writes the revert of an unconfirmed, expired checkout
// back. Conditional on the row still being that stale pending, so a
// confirmation racing this read keeps its win.
func PersistStaleCheckout(db *gorm.DB, id uint, now time.Time) error {
	return db.Model(&Subscription{}).
		Where("id = ? AND status = ? AND session_expires_at IS NOT NULL AND session_expires_at < ?", id, StatusPending, now).
		Updates(map[string]interface{}{
			"status":             StatusActive,
			"pending_validity":   nil,
			"stripe_session_id":  nil,
			"checkout_url":       nil,
			"session_expires_at": nil,
		}).Error
}

// Deactivate is the user-initiated cancel; it drops any in-flight checkout.
func Deactivate(db *gorm.DB, id uint) error {
	return db.Model(&Subscription{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":             StatusInactive,
			"pending_validity":   nil,
			"stripe_session_id":  nil,
			"checkout_url":       nil,
			"session_expires_at": nil,
		}).Error
}
