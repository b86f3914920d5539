package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/storely/storefront-api/controllers/product"
	"github.com/storely/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupProductRoutes registers all "/products/*" endpoints. Browsing is
// public; catalog management needs the admin role.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))

		admin := products.Group("")
		admin.Use(middleware.Authenticate, middleware.RequireAdmin)
		{
			admin.POST("", productcontroller.CreateProduct(db))
			admin.PUT("/:id", productcontroller.UpdateProduct(db))
			admin.DELETE("/:id", productcontroller.DeleteProduct(db))
			admin.POST("/sync", productcontroller.SyncProduct(db))
			admin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}
	}
}
