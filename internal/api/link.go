package api

import (
	"net/http" // HTTP status codes

	"ambassador_shop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// GetLinkHandler retrieves a referral link by id (administrator view)
func GetLinkHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Retrieving link")
		var link domain.Link // Fetch link with its owning user
		if err := db.Preload("User").First(&link, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		c.JSON(http.StatusOK, link)
	}
}

// GetLinkByCodeHandler resolves a referral link by its code (checkout view)
func GetLinkByCodeHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var link domain.Link // Fetch link with its owning user
		if err := db.Preload("User").Where("code = ?", c.Param("code")).First(&link).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
			return
		}
		c.JSON(http.StatusOK, link)
	}
}
