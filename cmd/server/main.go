package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"ambassador_shop/internal/api"        // Custom package for API handlers
	"ambassador_shop/internal/auth"       // Token scopes
	"ambassador_shop/internal/cache"      // Cache store
	"ambassador_shop/internal/config"     // Custom package for configuration
	"ambassador_shop/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if !cfg.IsProd {
		logrus.SetLevel(logrus.DebugLevel) // Per-operation debug logs outside production
	}

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}
	store := cache.NewRedisStore(redisClient) // Cache store injected into handlers

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Administrator surface
	admin := r.Group("/api/admin")
	admin.POST("/register", api.RegisterHandler(db))          // Registration endpoint
	admin.POST("/login", api.LoginHandler(db, cfg.JWTSecret)) // Login endpoint
	admin.POST("/logout", api.LogoutHandler())                // Logout endpoint, succeeds without a session
	// Protect admin routes with the JWT cookie middleware, admin scope
	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(db, cfg.JWTSecret, auth.ScopeAdmin))
	adminAuth.GET("/user", api.ProfileHandler())                                 // Profile endpoint
	adminAuth.PUT("/user/update", api.ProfileUpdateHandler(db))                  // Profile update endpoint
	adminAuth.PUT("/user/passwd", api.PasswordUpdateHandler(db))                 // Password change endpoint
	adminAuth.GET("/users", api.ListUsersHandler(db))                            // Users list endpoint
	adminAuth.GET("/ambassadors", api.AmbassadorsHandler(db))                    // Ambassadors list endpoint
	adminAuth.GET("/products", api.ListProductsHandler(db))                      // Product list endpoint
	adminAuth.POST("/products", api.CreateProductHandler(db, store))             // Product create endpoint
	adminAuth.GET("/products/:id", api.GetProductHandler(db))                    // Product retrieve endpoint
	adminAuth.PUT("/products/:id", api.UpdateProductHandler(db, store))          // Product update endpoint
	adminAuth.PATCH("/products/:id", api.PartialUpdateProductHandler(db, store)) // Product partial update endpoint
	adminAuth.DELETE("/products/:id", api.DeleteProductHandler(db, store))       // Product delete endpoint
	adminAuth.GET("/orders", api.ListOrdersHandler(db))                          // Order list endpoint
	adminAuth.POST("/orders", api.CreateOrderHandler(db))                        // Order create endpoint
	adminAuth.GET("/orders/:id", api.GetOrderHandler(db))                        // Order retrieve endpoint
	adminAuth.PUT("/orders/:id", api.UpdateOrderHandler(db))                     // Order update endpoint
	adminAuth.PATCH("/orders/:id", api.PartialUpdateOrderHandler(db))            // Order partial update endpoint
	adminAuth.DELETE("/orders/:id", api.DeleteOrderHandler(db))                  // Order delete endpoint
	adminAuth.GET("/links/:id", api.GetLinkHandler(db))                          // Link retrieve endpoint

	// Ambassador surface
	amb := r.Group("/api/ambassador")
	amb.POST("/register", api.RegisterHandler(db))                        // Registration endpoint
	amb.POST("/login", api.LoginHandler(db, cfg.JWTSecret))               // Login endpoint
	amb.POST("/logout", api.LogoutHandler()) // Logout endpoint, succeeds without a session
	// Protect ambassador routes with the JWT cookie middleware, ambassador scope
	ambAuth := amb.Group("")
	ambAuth.Use(middleware.AuthRequired(db, cfg.JWTSecret, auth.ScopeAmbassador))
	ambAuth.GET("/user", api.ProfileHandler())                                // Profile endpoint
	ambAuth.PUT("/user/update", api.ProfileUpdateHandler(db))                 // Profile update endpoint
	ambAuth.PUT("/user/passwd", api.PasswordUpdateHandler(db))                // Password change endpoint
	ambAuth.GET("/products/frontend", api.ProductsFrontendHandler(db, store)) // Cached storefront catalog
	ambAuth.GET("/products/backend", api.ProductsBackendHandler(db, store))   // Cached searchable catalog

	// Checkout surface (public storefront)
	checkout := r.Group("/api/checkout")
	checkout.GET("/links/:code", api.GetLinkByCodeHandler(db)) // Link lookup by code
	checkout.POST("/orders", api.CheckoutOrderHandler(db))     // Order creation endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
