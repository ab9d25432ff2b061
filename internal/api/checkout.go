package api

import (
	"errors"   // Record-not-found matching
	"net/http" // HTTP status codes

	"ambassador_shop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for checkout. Any client-supplied user_id/amb_email is
// ignored; both are snapshotted from the resolved link.
type CheckoutRequest struct {
	Code      string `json:"code" binding:"required"`        // Referral code to resolve
	TransID   string `json:"trans_id"`                       // External transaction id
	Email     string `json:"email" binding:"required,email"` // Purchaser email
	FirstName string `json:"first_name" binding:"required"`  // Purchaser first name
	LastName  string `json:"last_name" binding:"required"`   // Purchaser last name
	Address   string `json:"address"`                        // Shipping address
	City      string `json:"city"`                           // Shipping city
	Country   string `json:"country"`                        // Shipping country
	Zip       string `json:"zip"`                            // Shipping zip code
}

// CheckoutOrderHandler resolves the referral code and persists the order in
// one transaction. An unknown code writes nothing; any failure after the
// link resolves rolls the whole thing back and is masked behind a generic
// error, with the root cause logged server-side.
func CheckoutOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var order domain.Order // The order to be created
		// Link resolution and order persistence share one transaction
		err := db.Transaction(func(tx *gorm.DB) error {
			var link domain.Link // Resolve the referral link with its owner
			if err := tx.Preload("User").Where("code = ?", req.Code).First(&link).Error; err != nil {
				return err // Unknown code or lookup failure, nothing written yet
			}
			order = domain.Order{
				TransID:   req.TransID,     // External transaction id
				Code:      link.Code,       // Referral code used
				AmbEmail:  link.User.Email, // Snapshotted from the link owner
				UserID:    link.UserID,     // Snapshotted from the link owner
				Email:     req.Email,       // Purchaser email
				FirstName: req.FirstName,   // Purchaser first name
				LastName:  req.LastName,    // Purchaser last name
				Address:   req.Address,     // Shipping address
				City:      req.City,        // Shipping city
				Country:   req.Country,     // Shipping country
				Zip:       req.Zip,         // Shipping zip code
			}
			// Save the order; any error here rolls back the transaction
			return tx.Create(&order).Error
		})
		if err != nil {
			// An unknown code is a business-rule failure, surfaced as such
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid code"})
				return
			}
			// Everything else is logged and masked
			logrus.WithFields(logrus.Fields{
				"code":  req.Code,    // Referral code
				"email": req.Email,   // Purchaser email
				"error": err.Error(), // Root cause, server-side only
			}).Error("Checkout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,   // Created order
			"code":     order.Code, // Referral code used
		}).Info("Order created")
		c.JSON(http.StatusCreated, order)
	}
}
