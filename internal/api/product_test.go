package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"ambassador_shop/internal/cache"
	"ambassador_shop/internal/domain"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

// seedProducts inserts a small fixed catalog
func seedProducts(t *testing.T, db *gorm.DB) []domain.Product {
	t.Helper()
	products := []domain.Product{
		{Title: "Blue Shirt", Description: "Cotton shirt", Price: 25},
		{Title: "Red Shirt", Description: "Cotton shirt", Price: 30},
		{Title: "Green Hat", Description: "Wool hat", Price: 15},
	}
	for i := range products {
		assert.NoError(t, db.Create(&products[i]).Error)
	}
	return products
}

// seedListingCaches plants the keys product mutations must invalidate
func seedListingCaches(t *testing.T, store *cache.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	assert.NoError(t, store.Set(ctx, "products_backend", "stale", time.Hour))
	assert.NoError(t, store.Set(ctx, "products_frontend", "stale", time.Hour))
	assert.NoError(t, store.Set(ctx, "v2:products_frontend:page1", "stale", time.Hour))
	assert.NoError(t, store.Set(ctx, "unrelated", "fresh", time.Hour))
}

// assertListingCachesCleared verifies only the product listing keys are gone
func assertListingCachesCleared(t *testing.T, store *cache.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	var got string
	found, _ := store.Get(ctx, "products_backend", &got)
	assert.False(t, found, "backend key should have been invalidated")
	found, _ = store.Get(ctx, "products_frontend", &got)
	assert.False(t, found, "frontend key should have been invalidated")
	found, _ = store.Get(ctx, "v2:products_frontend:page1", &got)
	assert.False(t, found, "pattern-matched frontend key should have been invalidated")
	found, _ = store.Get(ctx, "unrelated", &got)
	assert.True(t, found, "unrelated keys must survive")
}

func TestCreateProduct_InvalidatesCaches(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", false)
	store := cache.NewMemoryStore()
	seedListingCaches(t, store)
	r := newRouter(db, store)

	w := doJSON(r, http.MethodPost, "/api/admin/products", map[string]any{
		"title": "Blue Shirt",
		"price": 25,
	}, cookieFor(t, admin))
	assert.Equal(t, http.StatusCreated, w.Code)
	assertListingCachesCleared(t, store)
}

func TestUpdateProduct_InvalidatesCaches(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", false)
	products := seedProducts(t, db)
	store := cache.NewMemoryStore()
	seedListingCaches(t, store)
	r := newRouter(db, store)

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", products[0].ID), map[string]any{
		"title": "Navy Shirt",
		"price": 27.5,
	}, cookieFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assertListingCachesCleared(t, store)

	var got domain.Product
	assert.NoError(t, db.First(&got, products[0].ID).Error)
	assert.Equal(t, "Navy Shirt", got.Title)
	assert.Equal(t, 27.5, got.Price)
}

func TestPartialUpdateProduct_InvalidatesCaches(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", false)
	products := seedProducts(t, db)
	store := cache.NewMemoryStore()
	seedListingCaches(t, store)
	r := newRouter(db, store)

	w := doJSON(r, http.MethodPatch, fmt.Sprintf("/api/admin/products/%d", products[2].ID), map[string]any{
		"price": 18,
	}, cookieFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assertListingCachesCleared(t, store)

	// Only the patched field changed
	var got domain.Product
	assert.NoError(t, db.First(&got, products[2].ID).Error)
	assert.Equal(t, float64(18), got.Price)
	assert.Equal(t, "Green Hat", got.Title)
}

func TestDeleteProduct_InvalidatesCaches(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", false)
	products := seedProducts(t, db)
	store := cache.NewMemoryStore()
	seedListingCaches(t, store)
	r := newRouter(db, store)

	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/api/admin/products/%d", products[0].ID), nil, cookieFor(t, admin))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assertListingCachesCleared(t, store)

	var count int64
	assert.NoError(t, db.Model(&domain.Product{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestListProducts_SearchAndOrdering(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", false)
	seedProducts(t, db)
	r := newRouter(db, cache.NewMemoryStore())

	// Search narrows to titles containing "Shirt"
	w := doJSON(r, http.MethodGet, "/api/admin/products?search=Shirt", nil, cookieFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Products []domain.Product `json:"products"`
		Total    int64            `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(2), body.Total)

	// Descending price ordering
	w = doJSON(r, http.MethodGet, "/api/admin/products?ordering=-price", nil, cookieFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Products, 3)
	assert.Equal(t, "Red Shirt", body.Products[0].Title)
	assert.Equal(t, "Green Hat", body.Products[2].Title)

	// Unknown ordering fields fall back to id order
	w = doJSON(r, http.MethodGet, "/api/admin/products?ordering=password", nil, cookieFor(t, admin))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Blue Shirt", body.Products[0].Title)
}

func TestProductsFrontend_PopulatesCache(t *testing.T) {
	db := newTestDB(t)
	amb := seedUser(t, db, "amb@example.com", true)
	seedProducts(t, db)
	store := cache.NewMemoryStore()
	r := newRouter(db, store)

	w := doJSON(r, http.MethodGet, "/api/ambassador/products/frontend", nil, cookieFor(t, amb))
	assert.Equal(t, http.StatusOK, w.Code)

	var products []domain.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 3)

	// The listing is now cached under the frontend key
	var cached []domain.Product
	found, err := store.Get(context.Background(), "products_frontend", &cached)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, cached, 3)
}

func TestProductsFrontend_ServedFromCache(t *testing.T) {
	db := newTestDB(t)
	amb := seedUser(t, db, "amb@example.com", true)
	seedProducts(t, db)
	store := cache.NewMemoryStore()
	r := newRouter(db, store)

	// Warm the cache, then change the database underneath it
	w := doJSON(r, http.MethodGet, "/api/ambassador/products/frontend", nil, cookieFor(t, amb))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, db.Create(&domain.Product{Title: "New Item", Price: 5}).Error)

	// Until invalidation, the stale listing is served
	w = doJSON(r, http.MethodGet, "/api/ambassador/products/frontend", nil, cookieFor(t, amb))
	var products []domain.Product
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 3)
}

func TestProductsBackend_SearchAndSort(t *testing.T) {
	db := newTestDB(t)
	amb := seedUser(t, db, "amb@example.com", true)
	seedProducts(t, db)
	r := newRouter(db, cache.NewMemoryStore())

	w := doJSON(r, http.MethodGet, "/api/ambassador/products/backend?search=shirt&sort=desc", nil, cookieFor(t, amb))
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Products []domain.Product `json:"products"`
		Total    int              `json:"total"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, "Red Shirt", body.Products[0].Title)
	assert.Equal(t, "Blue Shirt", body.Products[1].Title)
}

func TestGetProduct_NotFound(t *testing.T) {
	db := newTestDB(t)
	admin := seedUser(t, db, "admin@example.com", false)
	r := newRouter(db, cache.NewMemoryStore())

	w := doJSON(r, http.MethodGet, "/api/admin/products/999", nil, cookieFor(t, admin))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
