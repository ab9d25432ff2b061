package middleware

import (
	"errors"   // Sentinel error matching
	"net/http" // HTTP status codes
	"time"     // Login timestamp

	"ambassador_shop/internal/auth"   // JWT utility functions
	"ambassador_shop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// UserKey is the gin context key the authenticated user is stored under
const UserKey = "user"

// AuthRequired validates the jwt cookie and enforces the scope the route
// group was configured with. On success the resolved user is stored in the
// context and their last_login is stamped.
func AuthRequired(db *gorm.DB, secret string, required auth.Scope) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie("jwt") // Get the jwt cookie
		// No cookie means no identity; protected routes reject that outright
		if err != nil || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		claims, err := auth.ParseJWT(tokenStr, secret) // Parse the JWT token
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				// Expired tokens get the exact message; re-login is required
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrTokenExpired.Error()})
				return
			}
			// Any other parse failure (bad signature, malformed token)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		// Scope check: the token must have been issued for this surface
		if claims.Scope != required {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.ErrInvalidScope.Error()})
			return
		}
		var user domain.User // Fetch the subject user from the database
		if err := db.First(&user, claims.UID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrUserNotFound.Error()})
			return
		}
		// Stamp the login time on every authenticated request
		now := time.Now()
		user.LastLogin = &now
		if err := db.Model(&user).Update("last_login", now).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.Set(UserKey, &user) // Store the resolved user in context
		c.Next()              // Proceed to the next handler
	}
}

// CurrentUser returns the authenticated user stored by AuthRequired
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(UserKey); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
