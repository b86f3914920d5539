package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/storely/storefront-api/models"
	"gorm.io/gorm"
)

// DeleteProduct removes a product from the catalog (admin). Historical
// order items keep their own name/price snapshots, so they survive this.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}
