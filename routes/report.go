package routes

import (
	"github.com/gin-gonic/gin"
	reportControllers "github.com/storely/storefront-api/controllers/report"
	"github.com/storely/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupReportRoutes registers "/reports/*" and "/dashboard/*". Admin only.
func SetupReportRoutes(r *gin.Engine, db *gorm.DB) {
	reports := r.Group("/reports")
	reports.Use(middleware.Authenticate, middleware.RequireAdmin)
	{
		reports.POST("/generate", reportControllers.GenerateReportHandler(db))
		reports.GET("", reportControllers.GetReportsHandler(db))
		reports.DELETE("/:id", reportControllers.DeleteReportHandler(db))
	}

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.Authenticate, middleware.RequireAdmin)
	{
		dashboard.GET("/stats", reportControllers.DashboardStatsHandler(db))
	}
}
