package productcontroller

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/storely/storefront-api/models"
	"gorm.io/gorm"
)

// GetProducts lists the catalog newest-first. Pagination via ?page & ?limit
// (default 12 per page); with neither param the whole catalog is returned
// as a single page.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.Query("page"))
		limit, _ := strconv.Atoi(c.Query("limit"))

		if page == 0 && limit == 0 {
			var products []models.Product
			if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"products":      products,
				"currentPage":   1,
				"totalPages":    1,
				"totalProducts": len(products),
			})
			return
		}

		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 12
		}

		var total int64
		if err := db.Model(&models.Product{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		var products []models.Product
		if err := db.Order("created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products":      products,
			"currentPage":   page,
			"totalPages":    int(math.Ceil(float64(total) / float64(limit))),
			"totalProducts": total,
		})
	}
}
