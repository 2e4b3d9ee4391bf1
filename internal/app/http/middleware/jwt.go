package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"movie-explorer-api/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromHeader(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches an identity when a valid bearer token is
// present and lets the request through anonymously otherwise. Used on movie
// reads, where non-premium content is open to everyone.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := claimsFromHeader(c); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Role not found in token"})
			c.Abort()
			return
		}

		if value != role {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func claimsFromHeader(c *gin.Context) (jwt.MapClaims, error) {
	jwtKey := []byte(config.JWT_SECRET)
	if len(jwtKey) == 0 {
		return nil, fmt.Errorf("JWT secret not configured")
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, fmt.Errorf("Authorization header missing")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, fmt.Errorf("Bearer token malformed")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("Invalid token claims")
	}
	return claims, nil
}

func setIdentity(c *gin.Context, claims jwt.MapClaims) {
	if email, ok := claims["email"].(string); ok {
		c.Set("email", email)
	}
	if role, ok := claims["role"].(string); ok {
		c.Set("role", role)
	}
	if userIDFloat, ok := claims["user_id"].(float64); ok {
		c.Set("user_id", uint(userIDFloat))
	}
}
