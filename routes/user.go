package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/storely/storefront-api/controllers/user"
	"github.com/storely/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers the profile endpoints and "/users/*" admin CRUD.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	profile := r.Group("/profile")
	profile.Use(middleware.Authenticate)
	{
		profile.GET("", userControllers.GetProfile(db))
		profile.PUT("", userControllers.UpdateProfile(db))
	}

	users := r.Group("/users")
	users.Use(middleware.Authenticate, middleware.RequireAdmin)
	{
		users.GET("", userControllers.GetAllUsers(db))
		users.GET("/:id", userControllers.GetUserByID(db))
		users.PUT("/:id", userControllers.UpdateUser(db))
		users.DELETE("/:id", userControllers.DeleteUser(db))
	}
}
