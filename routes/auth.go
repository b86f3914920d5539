package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/storely/storefront-api/auth"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.POST("/refresh", auth.RefreshHandler(db))
		authGroup.POST("/logout", auth.LogoutHandler())
	}
}
