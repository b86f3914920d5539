package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/storely/storefront-api/auth"
	"github.com/storely/storefront-api/middleware"
	"github.com/storely/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", middleware.Authenticate, func(c *gin.Context) {
		id, role := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "role": role})
	})
	r.GET("/admin-only", middleware.Authenticate, middleware.RequireAdmin, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter()

	// Missing header
	w := get(r, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = get(r, "/me", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token passes and carries the identity
	token, err := auth.IssueAccessToken(models.User{ID: 7, Role: models.RoleCustomer})
	require.NoError(t, err)
	w = get(r, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":7`)

	// A refresh token is not a session token
	refresh, err := auth.IssueRefreshToken(models.User{ID: 7})
	require.NoError(t, err)
	w = get(r, "/me", refresh)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := testRouter()

	customer, err := auth.IssueAccessToken(models.User{ID: 1, Role: models.RoleCustomer})
	require.NoError(t, err)
	admin, err := auth.IssueAccessToken(models.User{ID: 2, Role: models.RoleAdmin})
	require.NoError(t, err)

	w := get(r, "/admin-only", customer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient rights")

	w = get(r, "/admin-only", admin)
	assert.Equal(t, http.StatusOK, w.Code)
}
