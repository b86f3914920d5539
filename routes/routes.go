package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up every route group.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	// Public auth routes (no middleware)
	SetupAuthRoutes(r, db)

	// Catalog (public browse + admin management)
	SetupProductRoutes(r, db)

	// Orders (JWT-protected)
	SetupOrderRoutes(r, db)

	// Reports and dashboard (admin)
	SetupReportRoutes(r, db)

	// User management and profile
	SetupUserRoutes(r, db)
}
