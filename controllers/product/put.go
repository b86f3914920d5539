package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/storely/storefront-api/models"
	"gorm.io/gorm"
)

type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Brand       *string          `json:"brand"`
	Picture     *string          `json:"picture"`
	Category    *string          `json:"category"`
	Ingredients *string          `json:"ingredients"`
	Vegan       *bool            `json:"vegan"`
	Vegetarian  *bool            `json:"vegetarian"`
	GlutenFree  *bool            `json:"gluten_free"`
	Stock       *int             `json:"stock"`
	Barcode     *string          `json:"barcode"`
}

// UpdateProduct applies a partial update to an existing product (admin).
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var req UpdateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Price != nil {
			if req.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
				return
			}
			updates["price"] = *req.Price
		}
		if req.Brand != nil {
			updates["brand"] = *req.Brand
		}
		if req.Picture != nil {
			updates["picture"] = *req.Picture
		}
		if req.Category != nil {
			updates["category"] = *req.Category
		}
		if req.Ingredients != nil {
			updates["ingredients"] = *req.Ingredients
		}
		if req.Vegan != nil {
			updates["vegan"] = *req.Vegan
		}
		if req.Vegetarian != nil {
			updates["vegetarian"] = *req.Vegetarian
		}
		if req.GlutenFree != nil {
			updates["gluten_free"] = *req.GlutenFree
		}
		if req.Stock != nil {
			if *req.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
				return
			}
			updates["stock"] = *req.Stock
		}
		if req.Barcode != nil {
			updates["barcode"] = *req.Barcode
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
		}
		c.JSON(http.StatusOK, product)
	}
}
