package api

import (
	"net/http" // HTTP status codes

	"ambassador_shop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for administrative order creation and full updates
type OrderRequest struct {
	TransID   string `json:"trans_id"`                   // External transaction id
	Code      string `json:"code" binding:"required"`    // Referral code
	AmbEmail  string `json:"amb_email"`                  // Link owner's email
	UserID    uint   `json:"user_id"`                    // Link owner's id
	Email     string `json:"email" binding:"required"`   // Purchaser email
	FirstName string `json:"first_name"`                 // Purchaser first name
	LastName  string `json:"last_name"`                  // Purchaser last name
	Address   string `json:"address"`                    // Shipping address
	City      string `json:"city"`                       // Shipping city
	Country   string `json:"country"`                    // Shipping country
	Zip       string `json:"zip"`                        // Shipping zip code
}

// Whitelisted ordering fields for the admin order list
var orderOrderFields = map[string]string{
	"id":         "id",
	"trans_id":   "trans_id",
	"code":       "code",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

// Columns covered by free-text order search
var orderSearchColumns = []string{
	"trans_id", "code", "amb_email", "email",
	"first_name", "last_name", "city", "country", "zip",
}

// ListOrdersHandler returns orders with search, ordering and pagination
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Debug("Listing orders")
		query := db.Model(&domain.Order{}) // Start building the query
		// Free-text search over the fixed field set
		if s := c.Query("search"); s != "" {
			clause := "id = ?"
			args := []any{s}
			for _, col := range orderSearchColumns {
				clause += " OR " + col + " LIKE ?"
				args = append(args, "%"+s+"%")
			}
			query = query.Where(clause, args...)
		}
		query = query.Order(orderClause(c.Query("ordering"), orderOrderFields)) // Whitelisted ordering, default id
		page, pageSize := pagination(c)                                         // Pagination from query params
		offset := (page - 1) * pageSize                                         // Calculate offset
		var total int64                                                         // Total matching orders
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		var orders []domain.Order // Slice to hold orders
		if err := query.Offset(offset).Limit(pageSize).Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders":      orders,                                 // Page of orders
			"page":        page,                                   // Current page
			"page_size":   pageSize,                               // Page size
			"total":       total,                                  // Total matching orders
			"total_pages": (int(total) + pageSize - 1) / pageSize, // Total pages
		})
	}
}

// GetOrderHandler retrieves a single order by id
func GetOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Retrieving order")
		var order domain.Order // Fetch order from database
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// CreateOrderHandler creates an order record directly (administrator path;
// the checkout path is the one that resolves referral codes)
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		logrus.WithField("code", req.Code).Debug("Creating order")
		order := orderFromRequest(req)
		if err := db.Create(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}

// UpdateOrderHandler replaces an order's fields
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Updating order")
		var order domain.Order // Fetch order from database
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		var req OrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		updated := orderFromRequest(req)
		updated.ID = order.ID
		updated.CreatedAt = order.CreatedAt
		if err := db.Save(&updated).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// PartialUpdateOrderHandler applies only the provided fields
func PartialUpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Partially updating order")
		var order domain.Order // Fetch order from database
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		// Patch via a raw map so only the provided keys are touched
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Only the mutable columns are patchable
		updates := map[string]any{}
		for _, col := range append([]string{"address"}, orderSearchColumns...) {
			if v, ok := body[col]; ok {
				updates[col] = v
			}
		}
		if len(updates) > 0 {
			if err := db.Model(&order).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
			// Re-read so the response reflects the applied patch
			if err := db.First(&order, order.ID).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
				return
			}
		}
		c.JSON(http.StatusOK, order)
	}
}

// DeleteOrderHandler removes an order
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Deleting order")
		var order domain.Order // Fetch order from database
		if err := db.First(&order, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if err := db.Delete(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		c.JSON(http.StatusNoContent, nil)
	}
}

// orderFromRequest maps a request body onto an Order record
func orderFromRequest(req OrderRequest) domain.Order {
	return domain.Order{
		TransID:   req.TransID,   // External transaction id
		Code:      req.Code,      // Referral code
		AmbEmail:  req.AmbEmail,  // Link owner's email
		UserID:    req.UserID,    // Link owner's id
		Email:     req.Email,     // Purchaser email
		FirstName: req.FirstName, // Purchaser first name
		LastName:  req.LastName,  // Purchaser last name
		Address:   req.Address,   // Shipping address
		City:      req.City,      // Shipping city
		Country:   req.Country,   // Shipping country
		Zip:       req.Zip,       // Shipping zip code
	}
}
