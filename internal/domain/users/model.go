package users

import (
	"time"
)

const (
	RoleUser       = "user"
	RoleSupervisor = "supervisor"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Email        string `gorm:"not null;uniqueIndex:idx_users_email"`
	Password     string `gorm:"not null"`
	MobileNumber string `gorm:"not null;uniqueIndex:idx_users_mobile_number"`
	Role         string `gorm:"type:varchar(20);not null;default:'user'"`

	DeviceToken          *string `gorm:"column:device_token"`
	NotificationsEnabled bool    `gorm:"not null;default:true"`

	// Hosted externally; we only keep the reference.
	ProfilePictureURL *string `gorm:"column:profile_picture_url"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
