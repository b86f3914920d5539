package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storely/storefront-api/auth"
	"github.com/storely/storefront-api/models"
)

// Authenticate validates the bearer token and puts the caller's identity
// and role on the request context.
func Authenticate(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}

	token := strings.TrimPrefix(header, "Bearer ")
	if auth.Blacklist.Has(token) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	userID, role, err := auth.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	c.Set("user_id", userID)
	c.Set("user_role", role)
	c.Next()
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(c *gin.Context) {
	role, _ := c.Get("user_role")
	if role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: Insufficient rights"})
		c.Abort()
		return
	}
	c.Next()
}

// CurrentUser reads the identity set by Authenticate.
func CurrentUser(c *gin.Context) (uint, models.Role) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("user_role")
	id, _ := userID.(uint)
	r, _ := role.(models.Role)
	return id, r
}
