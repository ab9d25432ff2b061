package api

import (
	"context"  // Context for cache operations
	"net/http" // HTTP status codes
	"sort"     // In-process ordering of cached listings
	"strings"  // String manipulation
	"time"     // Cache TTLs

	"ambassador_shop/internal/cache"  // Keyed cache store
	"ambassador_shop/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"gorm.io/gorm"               // GORM ORM library
)

// Cache keys for product listings
const (
	productsBackendKey      = "products_backend"    // Fixed key for the ambassador backend listing
	productsFrontendKey     = "products_frontend"   // Key for the ambassador frontend listing
	productsFrontendPattern = "*products_frontend*" // Pattern covering every frontend listing key
	productsCacheTTL        = 30 * time.Minute      // Listing cache lifetime
)

// Request struct for product creation and full updates
type ProductRequest struct {
	Title       string  `json:"title" binding:"required"`          // Title must be provided
	Description string  `json:"description"`                       // Catalog description
	Image       string  `json:"image"`                             // Image URL
	Price       float64 `json:"price" binding:"required,gt=0"`     // Price must be positive
}

// Request struct for partial updates; nil fields are left untouched
type ProductPatchRequest struct {
	Title       *string  `json:"title"`                            // New title, optional
	Description *string  `json:"description"`                      // New description, optional
	Image       *string  `json:"image"`                            // New image URL, optional
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`   // New price, optional but positive
}

// Whitelisted ordering fields for the admin product list
var productOrderFields = map[string]string{
	"id":    "id",
	"title": "title",
	"price": "price",
}

// ListProductsHandler returns products with search, ordering and pagination
func ListProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.Debug("Listing products")
		query := db.Model(&domain.Product{}) // Start building the query
		// Free-text search over the fixed field set (id, title)
		if s := c.Query("search"); s != "" {
			query = query.Where("title LIKE ? OR id = ?", "%"+s+"%", s)
		}
		query = query.Order(orderClause(c.Query("ordering"), productOrderFields)) // Whitelisted ordering, default id
		page, pageSize := pagination(c)                                           // Pagination from query params
		offset := (page - 1) * pageSize                                           // Calculate offset
		var total int64                                                           // Total matching products
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}
		var products []domain.Product // Slice to hold products
		if err := query.Offset(offset).Limit(pageSize).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"products":    products,                               // Page of products
			"page":        page,                                   // Current page
			"page_size":   pageSize,                               // Page size
			"total":       total,                                  // Total matching products
			"total_pages": (int(total) + pageSize - 1) / pageSize, // Total pages
		})
	}
}

// GetProductHandler retrieves a single product by id
func GetProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Retrieving product")
		var product domain.Product // Fetch product from database
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// CreateProductHandler creates a product and invalidates the listing caches
func CreateProductHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		logrus.WithField("title", req.Title).Debug("Creating product")
		product := domain.Product{
			Title:       req.Title,       // Product title
			Description: req.Description, // Catalog description
			Image:       req.Image,       // Image URL
			Price:       req.Price,       // Unit price
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		clearProductCache(c.Request.Context(), store) // Listings are now stale
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProductHandler replaces a product's fields and invalidates the caches
func UpdateProductHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Updating product")
		var product domain.Product // Fetch product from database
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		var req ProductRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		product.Title = req.Title             // Replace title
		product.Description = req.Description // Replace description
		product.Image = req.Image             // Replace image URL
		product.Price = req.Price             // Replace price
		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		clearProductCache(c.Request.Context(), store) // Listings are now stale
		c.JSON(http.StatusOK, product)
	}
}

// PartialUpdateProductHandler applies only the provided fields
func PartialUpdateProductHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Partially updating product")
		var product domain.Product // Fetch product from database
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		var req ProductPatchRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Collect only the provided fields, mirroring them onto the record
		updates := map[string]any{}
		if req.Title != nil {
			updates["title"] = *req.Title
			product.Title = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
			product.Description = *req.Description
		}
		if req.Image != nil {
			updates["image"] = *req.Image
			product.Image = *req.Image
		}
		if req.Price != nil {
			updates["price"] = *req.Price
			product.Price = *req.Price
		}
		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
			clearProductCache(c.Request.Context(), store) // Listings are now stale
		}
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProductHandler removes a product and invalidates the caches
func DeleteProductHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		logrus.WithField("id", c.Param("id")).Debug("Deleting product")
		var product domain.Product // Fetch product from database
		if err := db.First(&product, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		clearProductCache(c.Request.Context(), store) // Listings are now stale
		c.JSON(http.StatusNoContent, nil)
	}
}

// clearProductCache drops the backend listing key and every frontend listing
// key. Best-effort: a miss here only widens the staleness window.
func clearProductCache(ctx context.Context, store cache.Store) {
	logrus.Debug("Clearing products cache")
	if err := store.Delete(ctx, productsBackendKey); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to clear backend products cache")
	}
	if err := store.DeleteMatching(ctx, productsFrontendPattern); err != nil {
		logrus.WithField("error", err.Error()).Warn("Failed to clear frontend products cache")
	}
}

// ProductsFrontendHandler serves the full catalog for the ambassador
// storefront, cached under the frontend key
func ProductsFrontendHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var products []domain.Product // Catalog to serve
		// Try the cache first
		if found, err := store.Get(ctx, productsFrontendKey, &products); err == nil && found {
			c.JSON(http.StatusOK, products)
			return
		}
		// Cache miss: load from the database and populate the cache
		if err := db.Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		_ = store.Set(ctx, productsFrontendKey, products, productsCacheTTL)
		c.JSON(http.StatusOK, products)
	}
}

// ProductsBackendHandler serves the ambassador's searchable catalog. The full
// product set is cached once under the backend key; search, ordering and
// pagination are applied in-process per request.
func ProductsBackendHandler(db *gorm.DB, store cache.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var products []domain.Product // Full catalog
		// Try the cache first
		found, err := store.Get(ctx, productsBackendKey, &products)
		if err != nil || !found {
			// Cache miss: load from the database and populate the cache
			if err := db.Order("id").Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
				return
			}
			_ = store.Set(ctx, productsBackendKey, products, productsCacheTTL)
		}
		// Free-text search over title and description
		if s := strings.ToLower(c.Query("search")); s != "" {
			filtered := products[:0:0]
			for _, p := range products {
				if strings.Contains(strings.ToLower(p.Title), s) ||
					strings.Contains(strings.ToLower(p.Description), s) {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}
		// Price ordering
		switch c.Query("sort") {
		case "asc":
			sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
		case "desc":
			sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
		}
		page, pageSize := pagination(c) // Pagination from query params
		total := len(products)          // Total after filtering
		start := (page - 1) * pageSize  // Page start index
		if start > total {
			start = total
		}
		end := start + pageSize // Page end index
		if end > total {
			end = total
		}
		c.JSON(http.StatusOK, gin.H{
			"products":    products[start:end],                 // Page of products
			"page":        page,                                // Current page
			"page_size":   pageSize,                            // Page size
			"total":       total,                               // Total after filtering
			"total_pages": (total + pageSize - 1) / pageSize,   // Total pages
		})
	}
}

// orderClause maps an ordering query param ("field" or "-field") onto a
// whitelisted column, defaulting to id order
func orderClause(param string, allowed map[string]string) string {
	desc := strings.HasPrefix(param, "-") // Leading dash means descending
	field := strings.TrimPrefix(param, "-")
	col, ok := allowed[field]
	if !ok {
		return "id" // Default ordering
	}
	if desc {
		return col + " desc"
	}
	return col
}
