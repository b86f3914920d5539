package productcontroller_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/storely/storefront-api/auth"
	"github.com/storely/storefront-api/models"
	"github.com/storely/storefront-api/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.Order{},
		&models.OrderItem{}, &models.Report{},
	))

	r := gin.New()
	routes.SetupRoutes(r, db)
	return db, r
}

func adminToken(t *testing.T, db *gorm.DB) string {
	t.Helper()
	admin := models.User{
		FirstName: "Admin", LastName: "User",
		Email: "admin@example.com", Password: "x",
		Role: models.RoleAdmin, IsActive: true,
	}
	require.NoError(t, db.Create(&admin).Error)
	token, err := auth.IssueAccessToken(admin)
	require.NoError(t, err)
	return token
}

func doRequest(r http.Handler, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestProductCRUD(t *testing.T) {
	db, r := setupTest(t)
	token := adminToken(t, db)

	// Create
	w := doRequest(r, http.MethodPost, "/products", gin.H{
		"name": "Oat Bar", "price": "3.49", "category": "Snacks",
		"stock": 30, "barcode": "12345",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.Price.Equal(decimal.RequireFromString("3.49")))

	// Public read
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	// Partial update
	w = doRequest(r, http.MethodPut, fmt.Sprintf("/products/%d", created.ID), gin.H{
		"price": "3.99", "stock": 25,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Product
	require.NoError(t, db.First(&updated, created.ID).Error)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("3.99")))
	assert.Equal(t, 25, updated.Stock)
	assert.Equal(t, "Oat Bar", updated.Name, "omitted fields stay untouched")

	// Delete
	w = doRequest(r, http.MethodDelete, fmt.Sprintf("/products/%d", created.ID), nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = doRequest(r, http.MethodGet, fmt.Sprintf("/products/%d", created.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductValidationAndAuth(t *testing.T) {
	db, r := setupTest(t)
	token := adminToken(t, db)

	// Missing required fields
	w := doRequest(r, http.MethodPost, "/products", gin.H{"name": "No Price"}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)

	// An explicit zero price is legitimate (barcode-synced items start at 0)
	w = doRequest(r, http.MethodPost, "/products", gin.H{
		"name": "Free Sample", "price": "0", "barcode": "b0",
	}, token)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Negative stock
	w = doRequest(r, http.MethodPost, "/products", gin.H{
		"name": "Bad", "price": "1.00", "stock": -1, "barcode": "b1",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Mutations need a token...
	w = doRequest(r, http.MethodPost, "/products", gin.H{
		"name": "X", "price": "1.00", "barcode": "b2",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// ...and the admin role
	customer := models.User{
		FirstName: "C", LastName: "U", Email: "c@example.com",
		Password: "x", Role: models.RoleCustomer, IsActive: true,
	}
	require.NoError(t, db.Create(&customer).Error)
	customerToken, err := auth.IssueAccessToken(customer)
	require.NoError(t, err)
	w = doRequest(r, http.MethodPost, "/products", gin.H{
		"name": "X", "price": "1.00", "barcode": "b3",
	}, customerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProductListPagination(t *testing.T) {
	db, r := setupTest(t)
	for i := 0; i < 15; i++ {
		require.NoError(t, db.Create(&models.Product{
			Name:    fmt.Sprintf("Item %02d", i),
			Price:   decimal.New(100, -2),
			Barcode: fmt.Sprintf("bc-%02d", i),
		}).Error)
	}

	type listResponse struct {
		Products      []models.Product `json:"products"`
		CurrentPage   int              `json:"currentPage"`
		TotalPages    int              `json:"totalPages"`
		TotalProducts int64            `json:"totalProducts"`
	}

	// No pagination params: one big page
	w := doRequest(r, http.MethodGet, "/products", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var all listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all.Products, 15)
	assert.Equal(t, 1, all.TotalPages)

	// Second page at the default size of 12
	w = doRequest(r, http.MethodGet, "/products?page=2", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var page2 listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page2))
	assert.Len(t, page2.Products, 3)
	assert.Equal(t, 2, page2.CurrentPage)
	assert.Equal(t, 2, page2.TotalPages)
	assert.EqualValues(t, 15, page2.TotalProducts)

	// Explicit limit
	w = doRequest(r, http.MethodGet, "/products?page=1&limit=5", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var page1 listResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page1))
	assert.Len(t, page1.Products, 5)
	assert.Equal(t, 3, page1.TotalPages)
}
