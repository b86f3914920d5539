package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/storely/storefront-api/controllers/order"
	"github.com/storely/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/orders/*" endpoints. Everything requires
// a valid token; mutation endpoints additionally require the admin role.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB) {
	orders := r.Group("/orders")
	orders.Use(middleware.Authenticate)
	{
		// Checkout
		orders.POST("", orderControllers.CreateOrderHandler(db))

		// Role-scoped listing and detail
		orders.GET("", orderControllers.GetOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderByIDHandler(db))

		// Receipt email (owner or admin)
		orders.POST("/:id/email", orderControllers.EmailReceiptHandler(db))

		// Admin management
		orders.PUT("/:id", middleware.RequireAdmin, orderControllers.UpdateOrderHandler(db))
		orders.DELETE("/:id", middleware.RequireAdmin, orderControllers.DeleteOrderHandler(db))

		// Live feed of new orders for admin dashboards
		orders.GET("/ws", middleware.RequireAdmin, orderControllers.OrderFeedHandler)
	}
}
