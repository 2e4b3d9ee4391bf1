package users

import (
	"net/http"
	"strings"
	"time"

	"movie-explorer-api/database"
	"movie-explorer-api/internal/domain/subscriptions"
	"movie-explorer-api/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	resp := MeResponse{
		User: UserDTO{
			ID:                   user.ID,
			Email:                user.Email,
			Name:                 user.Name,
			MobileNumber:         user.MobileNumber,
			Role:                 user.Role,
			NotificationsEnabled: user.NotificationsEnabled,
			ProfilePictureURL:    user.ProfilePictureURL,
		},
	}

	now := time.Now()
	if sub, err := subscriptions.ForUser(database.DB, user.ID); err == nil {
		if sub.ApplyLazyExpiry(now) {
			_ = subscriptions.PersistExpiry(database.DB, sub.ID, now)
		}
		resp.Subscription = &SubscriptionDTO{
			PlanType:  string(sub.PlanType),
			Status:    string(sub.Status),
			ExpiresAt: sub.ExpiresAt,
		}
	}

	c.JSON(http.StatusOK, resp)
}

func UpdateDeviceToken(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		DeviceToken string `json:"device_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing device_token"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Update("device_token", body.DeviceToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update device token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token updated successfully"})
}

func ToggleNotifications(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		NotificationsEnabled *bool `json:"notifications_enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.NotificationsEnabled == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing notifications_enabled"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Update("notifications_enabled", *body.NotificationsEnabled).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification preference"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":               "Notification preference updated",
		"notifications_enabled": *body.NotificationsEnabled,
	})
}

func UpdateProfilePicture(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		ProfilePictureURL string `json:"profile_picture_url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing profile_picture_url"})
		return
	}

	// Images live on the external host; we only validate the reference.
	if !strings.HasPrefix(body.ProfilePictureURL, "http://") && !strings.HasPrefix(body.ProfilePictureURL, "https://") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile_picture_url must be an http(s) URL"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Update("profile_picture_url", body.ProfilePictureURL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile picture"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated successfully"})
}

func RemoveProfilePicture(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if user.ProfilePictureURL == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No profile picture to remove"})
		return
	}

	if err := database.DB.Model(&users.User{}).
		Where("id = ?", userID).
		Update("profile_picture_url", nil).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove profile picture"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile picture removed successfully"})
}
