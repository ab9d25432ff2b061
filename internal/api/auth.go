package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation
	"time"     // Login timestamp

	"ambassador_shop/internal/auth"   // JWT utility functions
	"ambassador_shop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	FirstName       string `json:"first_name" binding:"required"`       // First name must be provided
	LastName        string `json:"last_name" binding:"required"`        // Last name must be provided
	Email           string `json:"email" binding:"required,email"`      // Email must be provided and valid
	Password        string `json:"password" binding:"required,min=8"`   // Password must be at least 8 characters
	PasswordConfirm string `json:"password_confirm" binding:"required"` // Confirmation must be provided
	IsAmbassador    bool   `json:"is_ambassador"`                       // Accepted but always overridden to false
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// RegisterHandler creates a new user account. The ambassador flag is forced
// to false regardless of the request body so registration can never escalate
// privileges.
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Check if passwords match
		if req.Password != req.PasswordConfirm {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		user := domain.User{
			FirstName:    req.FirstName,                // First name
			LastName:     req.LastName,                 // Last name
			Email:        strings.ToLower(req.Email),   // Lowercase email to ensure uniqueness
			IsAmbassador: false,                        // Forced, never taken from the request
		}
		// Hash the password before persistence
		if err := user.SetPassword(req.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		logrus.WithField("email", user.Email).Debug("Creating user")
		// Attempt to create the user in the database
		if err := db.Create(&user).Error; err != nil {
			// If creation fails (e.g., duplicate email), return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
			return
		}
		// Return the created user's public fields (password is never serialized)
		c.JSON(http.StatusCreated, user)
	}
}

// LoginHandler authenticates a user and delivers the JWT exclusively via an
// HTTP-only cookie; the token never appears in the response body.
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		// Compare provided password with stored hash
		if !user.CheckPassword(req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
			return
		}
		// Set login time
		now := time.Now()
		if err := db.Model(&user).Update("last_login", now).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		// Issue a token scoped by the user's role
		token, err := auth.GenerateJWT(user.ID, auth.ScopeForUser(user.IsAmbassador), jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Deliver the token as an HTTP-only cookie, aligned with its lifetime
		c.SetCookie("jwt", token, int(auth.TokenLifetime.Seconds()), "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "login success"})
	}
}

// LogoutHandler clears the jwt cookie. It succeeds whether or not a valid
// session exists, so it is mounted without authentication.
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Expire the cookie immediately
		c.SetCookie("jwt", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"message": "logout success"})
	}
}
