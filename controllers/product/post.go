package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/storely/storefront-api/models"
	"gorm.io/gorm"
)

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Price       *decimal.Decimal `json:"price" binding:"required"`
	Brand       string           `json:"brand"`
	Picture     string           `json:"picture"`
	Category    string           `json:"category"`
	Ingredients string           `json:"ingredients"`
	Vegan       bool             `json:"vegan"`
	Vegetarian  bool             `json:"vegetarian"`
	GlutenFree  bool             `json:"gluten_free"`
	Stock       int              `json:"stock"`
	Barcode     string           `json:"barcode"`
}

// CreateProduct adds a product to the catalog (admin).
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if req.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must not be negative"})
			return
		}
		price := *req.Price
		if req.Stock < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock must not be negative"})
			return
		}

		product := models.Product{
			Name:        req.Name,
			Price:       price,
			Brand:       req.Brand,
			Picture:     req.Picture,
			Category:    req.Category,
			Ingredients: req.Ingredients,
			Vegan:       req.Vegan,
			Vegetarian:  req.Vegetarian,
			GlutenFree:  req.GlutenFree,
			Stock:       req.Stock,
			Barcode:     req.Barcode,
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
