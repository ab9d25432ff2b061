package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ambassador_shop/internal/api"
	"ambassador_shop/internal/auth"
	"ambassador_shop/internal/cache"
	"ambassador_shop/internal/domain"
	"ambassador_shop/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
	logrus.SetLevel(logrus.PanicLevel)
}

// newTestDB opens a per-test in-memory database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Product{}, &domain.Link{}, &domain.Order{}))
	return db
}

// newRouter wires the handlers the way cmd/server does
func newRouter(db *gorm.DB, store cache.Store) *gin.Engine {
	r := gin.New()

	admin := r.Group("/api/admin")
	admin.POST("/register", api.RegisterHandler(db))
	admin.POST("/login", api.LoginHandler(db, testSecret))
	admin.POST("/logout", api.LogoutHandler())
	adminAuth := admin.Group("")
	adminAuth.Use(middleware.AuthRequired(db, testSecret, auth.ScopeAdmin))
	adminAuth.GET("/user", api.ProfileHandler())
	adminAuth.PUT("/user/update", api.ProfileUpdateHandler(db))
	adminAuth.PUT("/user/passwd", api.PasswordUpdateHandler(db))
	adminAuth.GET("/users", api.ListUsersHandler(db))
	adminAuth.GET("/ambassadors", api.AmbassadorsHandler(db))
	adminAuth.GET("/products", api.ListProductsHandler(db))
	adminAuth.POST("/products", api.CreateProductHandler(db, store))
	adminAuth.GET("/products/:id", api.GetProductHandler(db))
	adminAuth.PUT("/products/:id", api.UpdateProductHandler(db, store))
	adminAuth.PATCH("/products/:id", api.PartialUpdateProductHandler(db, store))
	adminAuth.DELETE("/products/:id", api.DeleteProductHandler(db, store))
	adminAuth.GET("/orders", api.ListOrdersHandler(db))
	adminAuth.POST("/orders", api.CreateOrderHandler(db))
	adminAuth.GET("/orders/:id", api.GetOrderHandler(db))
	adminAuth.PUT("/orders/:id", api.UpdateOrderHandler(db))
	adminAuth.PATCH("/orders/:id", api.PartialUpdateOrderHandler(db))
	adminAuth.DELETE("/orders/:id", api.DeleteOrderHandler(db))
	adminAuth.GET("/links/:id", api.GetLinkHandler(db))

	amb := r.Group("/api/ambassador")
	amb.POST("/register", api.RegisterHandler(db))
	amb.POST("/login", api.LoginHandler(db, testSecret))
	amb.POST("/logout", api.LogoutHandler())
	ambAuth := amb.Group("")
	ambAuth.Use(middleware.AuthRequired(db, testSecret, auth.ScopeAmbassador))
	ambAuth.GET("/user", api.ProfileHandler())
	ambAuth.PUT("/user/update", api.ProfileUpdateHandler(db))
	ambAuth.PUT("/user/passwd", api.PasswordUpdateHandler(db))
	ambAuth.GET("/products/frontend", api.ProductsFrontendHandler(db, store))
	ambAuth.GET("/products/backend", api.ProductsBackendHandler(db, store))

	checkout := r.Group("/api/checkout")
	checkout.GET("/links/:code", api.GetLinkByCodeHandler(db))
	checkout.POST("/orders", api.CheckoutOrderHandler(db))

	return r
}

// seedUser creates a user with the given role and a known password
func seedUser(t *testing.T, db *gorm.DB, email string, isAmbassador bool) *domain.User {
	t.Helper()
	user := &domain.User{FirstName: "Rory", LastName: "Williams", Email: email, IsAmbassador: isAmbassador}
	assert.NoError(t, user.SetPassword("password123"))
	assert.NoError(t, db.Create(user).Error)
	return user
}

// cookieFor issues a scoped token for a user, matching what login would set
func cookieFor(t *testing.T, user *domain.User) *http.Cookie {
	t.Helper()
	token, err := auth.GenerateJWT(user.ID, auth.ScopeForUser(user.IsAmbassador), testSecret)
	assert.NoError(t, err)
	return &http.Cookie{Name: "jwt", Value: token}
}

// doJSON performs a request with an optional JSON body and auth cookie
func doJSON(r *gin.Engine, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
