package api

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation

	"ambassador_shop/internal/domain"     // Importing domain models
	"ambassador_shop/internal/middleware" // Authenticated user lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for partial profile updates; nil fields are left untouched
type ProfileUpdateRequest struct {
	FirstName *string `json:"first_name"`                      // New first name, optional
	LastName  *string `json:"last_name"`                       // New last name, optional
	Email     *string `json:"email" binding:"omitempty,email"` // New email, optional but must be valid
}

// Request struct for password changes
type PasswordUpdateRequest struct {
	Password        string `json:"password" binding:"required,min=8"`   // New password
	PasswordConfirm string `json:"password_confirm" binding:"required"` // Confirmation
}

// ProfileHandler returns the authenticated user's public fields
func ProfileHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Get the authenticated user
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// ProfileUpdateHandler applies a partial update to the authenticated user's
// mutable fields. Administrative flags and timestamps are not writable here.
func ProfileUpdateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Get the authenticated user
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		var req ProfileUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Collect only the provided fields, mirroring them onto the record
		updates := map[string]any{}
		if req.FirstName != nil {
			updates["first_name"] = *req.FirstName
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			updates["last_name"] = *req.LastName
			user.LastName = *req.LastName
		}
		if req.Email != nil {
			updates["email"] = strings.ToLower(*req.Email)
			user.Email = strings.ToLower(*req.Email)
		}
		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				// Most likely a duplicate email
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
				return
			}
		}
		c.JSON(http.StatusOK, user)
	}
}

// PasswordUpdateHandler sets a new password for the authenticated user
func PasswordUpdateHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Get the authenticated user
		if user == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
			return
		}
		var req PasswordUpdateRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Check if passwords match before touching anything
		if req.Password != req.PasswordConfirm {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
			return
		}
		// Hash and persist the new password
		if err := user.SetPassword(req.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		if err := db.Model(user).Update("password", user.Password).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// AmbassadorsHandler lists every user flagged as an ambassador
func AmbassadorsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []domain.User // Slice to hold ambassadors
		if err := db.Where("is_ambassador = ?", true).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ambassadors"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// ListUsersHandler returns all users, paginated
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, pageSize := pagination(c) // Pagination from query params
		offset := (page - 1) * pageSize // Calculate offset
		var total int64                 // Total user count
		if err := db.Model(&domain.User{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		var users []domain.User // Slice to hold users
		if err := db.Order("id").Offset(offset).Limit(pageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		logrus.WithField("count", len(users)).Debug("Listing users")
		c.JSON(http.StatusOK, gin.H{
			"users":       users,                                      // Page of users
			"page":        page,                                       // Current page
			"page_size":   pageSize,                                   // Page size
			"total":       total,                                      // Total number of users
			"total_pages": (int(total) + pageSize - 1) / pageSize,     // Total pages
		})
	}
}

// pagination reads page/page_size query params with the usual defaults
func pagination(c *gin.Context) (page, pageSize int) {
	page = 1      // Default page
	pageSize = 20 // Default page size
	// If page exists in query
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v // Set page if valid
		}
	}
	// If page_size exists in query
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v // Set page size if valid
		}
	}
	return page, pageSize
}
