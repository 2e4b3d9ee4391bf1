package users

import "time"

type MeResponse struct {
	User         UserDTO          `json:"user"`
	Subscription *SubscriptionDTO `json:"subscription"`
}

type UserDTO struct {
	ID                   uint    `json:"id"`
	Email                string  `json:"email"`
	Name                 string  `json:"name"`
	MobileNumber         string  `json:"mobile_number"`
	Role                 string  `json:"role"`
	NotificationsEnabled bool    `json:"notifications_enabled"`
	ProfilePictureURL    *string `json:"profile_picture_url"`
}

type SubscriptionDTO struct {
	PlanType  string     `json:"plan_type"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at"`
}
