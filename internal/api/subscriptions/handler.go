package subscriptions

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"movie-explorer-api/config"
	"movie-explorer-api/database"
	"movie-explorer-api/internal/domain/billing"
	"movie-explorer-api/internal/domain/plans"
	"movie-explorer-api/internal/domain/subscriptions"
	stripestatus "movie-explorer-api/internal/infra/stripe"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"github.com/stripe/stripe-go/v75/customer"
)

// CreateCheckout starts a premium upgrade. Idempotent per user: while an
// unexpired checkout session is pending, the same session is returned instead
// of opening another one. Local pending state is written only after Stripe
// accepted the session, so a provider failure changes nothing here.
func CreateCheckout(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	var body struct {
		Validity string `json:"validity"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Validity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid validity"})
		return
	}
	validity, err := plans.ParseValidity(body.Validity)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid validity, must be daily, weekly or monthly"})
		return
	}

	sub, err := subscriptions.ForUser(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	now := time.Now()
	if sub.ApplyLazyExpiry(now) {
		_ = subscriptions.PersistExpiry(database.DB, sub.ID, now)
	}
	if sub.ExpireStaleCheckout(now) {
		_ = subscriptions.PersistStaleCheckout(database.DB, sub.ID, now)
	}

	// An upgrade already in flight: hand the open session back.
	if sub.HasLiveCheckout(now) {
		c.JSON(http.StatusOK, gin.H{
			"session_id": *sub.StripeSessionID,
			"url":        deref(sub.CheckoutURL),
			"message":    "Checkout already in progress",
		})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	if sub.StripeCustomerID == nil || *sub.StripeCustomerID == "" {
		cus, err := customer.New(&stripe.CustomerParams{
			Email: stripe.String(c.GetString("email")),
			Metadata: map[string]string{
				"user_id": fmt.Sprint(userID),
			},
		})
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create Stripe customer", "details": err.Error()})
			return
		}

		if err := database.DB.Model(&subscriptions.Subscription{}).
			Where("id = ?", sub.ID).
			Update("stripe_customer_id", cus.ID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store Stripe customer"})
			return
		}
		sub.StripeCustomerID = stripe.String(cus.ID)
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL: stripe.String(config.APP_URL + "/api/v1/subscription/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(config.APP_URL + "/api/v1/subscription/cancel"),
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		Customer:   stripe.String(*sub.StripeCustomerID),

		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(validity.StripePriceID()), Quantity: stripe.Int64(1)},
		},

		ClientReferenceID: stripe.String(fmt.Sprint(userID)),
	}
	params.AddMetadata("user_id", fmt.Sprint(userID))
	params.AddMetadata("validity", string(validity))

	s, err := checkoutsession.New(params)
	if err != nil {
		// No local mutation on provider failure.
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to create checkout session", "details": err.Error()})
		return
	}

	if err := subscriptions.MarkPending(database.DB, sub.ID, s.ID, s.URL, time.Unix(s.ExpiresAt, 0), validity); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record pending subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"session_id": s.ID, "url": s.URL})
}

// ConfirmCheckout handles the success redirect from Stripe. It verifies the
// session was actually paid, rejects sessions past their expiry, and applies
// the upgrade at most once no matter how often the redirect is replayed.
func ConfirmCheckout(c *gin.Context) {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing session_id"})
		return
	}

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe key not configured"})
		return
	}

	s, err := checkoutsession.Get(sessionID, nil)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to retrieve checkout session", "details": err.Error()})
		return
	}

	if !stripestatus.IsPaid(string(s.PaymentStatus)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment not completed"})
		return
	}

	now := time.Now()
	sub, err := subscriptions.Confirm(database.DB, sessionID, now)
	if err != nil {
		switch {
		case errors.Is(err, subscriptions.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		case errors.Is(err, subscriptions.ErrSessionExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Checkout session has expired"})
		case errors.Is(err, subscriptions.ErrNoPendingCheckout):
			c.JSON(http.StatusNotFound, gin.H{"error": "Pending subscription not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update subscription"})
		}
		return
	}

	recordPayment(sub, sessionID)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Subscription updated successfully",
		"plan_type":  sub.PlanType,
		"expires_at": sub.ExpiresAt,
	})
}

func PaymentCancelled(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Payment cancelled"})
}

func GetSubscription(c *gin.Context) {
	sub, ok := currentSubscription(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": gin.H{
		"plan_type":  sub.PlanType,
		"status":     sub.Status,
		"expires_at": sub.ExpiresAt,
	}})
}

// GetSubscriptionStatus reports the plan and performs the lazy-expiry check
// that currentSubscription already persisted.
func GetSubscriptionStatus(c *gin.Context) {
	sub, ok := currentSubscription(c)
	if !ok {
		return
	}

	resp := gin.H{"plan_type": sub.PlanType}
	if sub.downgraded {
		resp["message"] = "Your subscription has expired. Downgrading to basic plan."
	}
	c.JSON(http.StatusOK, resp)
}

func CancelSubscription(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return
	}

	sub, err := subscriptions.ForUser(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Subscription not found"})
		return
	}

	if err := subscriptions.Deactivate(database.DB, sub.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscription cancelled"})
}

type currentSub struct {
	subscriptions.Subscription
	downgraded bool
}

func currentSubscription(c *gin.Context) (currentSub, bool) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not identified"})
		return currentSub{}, false
	}

	sub, err := subscriptions.ForUser(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active subscription found"})
		return currentSub{}, false
	}

	now := time.Now()
	downgraded := sub.ApplyLazyExpiry(now)
	if downgraded {
		_ = subscriptions.PersistExpiry(database.DB, sub.ID, now)
	}
	if sub.ExpireStaleCheckout(now) {
		_ = subscriptions.PersistStaleCheckout(database.DB, sub.ID, now)
	}
	return currentSub{Subscription: sub, downgraded: downgraded}, true
}

// recordPayment writes the payment history row; the unique session id makes a
// replayed confirmation a no-op here too.
func recordPayment(sub subscriptions.Subscription, sessionID string) {
	if sub.PendingValidity == nil {
		return
	}
	payment := billing.Payment{
		UserID:          sub.UserID,
		StripeSessionID: sessionID,
		Amount:          sub.PendingValidity.Amount(),
		Validity:        *sub.PendingValidity,
		Status:          "paid",
	}
	database.DB.Where("stripe_session_id = ?", sessionID).FirstOrCreate(&payment)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
