package reportControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storely/storefront-api/models"
	"gorm.io/gorm"
)

// DashboardStatsHandler serves the live admin dashboard: the same headline
// KPIs as a report, plus active-customer count and the latest orders.
// Nothing is persisted, every request recomputes.
func DashboardStatsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		revenue, err := totalRevenue(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var totalOrders, totalProducts, activeCustomers int64
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := db.Model(&models.User{}).
			Where("role = ? AND is_active = ?", models.RoleCustomer, true).
			Count(&activeCustomers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var recentOrders []models.Order
		if err := db.Preload("User").
			Order("created_at DESC").
			Limit(5).
			Find(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalRevenue":    revenue,
			"totalOrders":     totalOrders,
			"totalProducts":   totalProducts,
			"activeCustomers": activeCustomers,
			"recentOrders":    recentOrders,
		})
	}
}
