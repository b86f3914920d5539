package productcontroller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/storely/storefront-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// offProduct is the subset of the Open Food Facts payload we map locally.
type offProduct struct {
	ProductName     string `json:"product_name"`
	Brands          string `json:"brands"`
	ImageURL        string `json:"image_url"`
	Categories      string `json:"categories"`
	IngredientsText string `json:"ingredients_text"`
	Labels          string `json:"labels"`
}

type offResponse struct {
	Status  int             `json:"status"`
	Product json.RawMessage `json:"product"`
}

type SyncProductRequest struct {
	Barcode string `json:"barcode" binding:"required"`
	Preview bool   `json:"preview"`
}

var errOffNotFound = errors.New("product not found on Open Food Facts")

func offBaseURL() string {
	if v := os.Getenv("OFF_API_URL"); v != "" {
		return v
	}
	return "https://world.openfoodfacts.org"
}

// fetchOpenFoodFacts pulls the canonical record for a barcode.
func fetchOpenFoodFacts(barcode string) (offProduct, json.RawMessage, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Get(fmt.Sprintf("%s/api/v0/product/%s.json", offBaseURL(), barcode))
	if err != nil {
		return offProduct{}, nil, err
	}
	defer resp.Body.Close()

	var body offResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return offProduct{}, nil, err
	}
	if body.Status != 1 || len(body.Product) == 0 {
		return offProduct{}, nil, errOffNotFound
	}

	var p offProduct
	if err := json.Unmarshal(body.Product, &p); err != nil {
		return offProduct{}, nil, err
	}
	return p, body.Product, nil
}

// hasLabel does a case-insensitive keyword match against the OFF labels string.
func hasLabel(labels string, keywords ...string) bool {
	labels = strings.ToLower(labels)
	for _, kw := range keywords {
		if strings.Contains(labels, kw) {
			return true
		}
	}
	return false
}

// SyncProduct fetches a barcode from Open Food Facts and maps it onto the
// local catalog: update if the barcode exists, create (price 0, OFF carries
// no price data) otherwise. With preview=true the mapped fields are
// returned without touching the database.
func SyncProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SyncProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Barcode is required"})
			return
		}

		off, raw, err := fetchOpenFoodFacts(req.Barcode)
		if err != nil {
			if errors.Is(err, errOffNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		now := time.Now()
		mapped := models.Product{
			Name:         off.ProductName,
			Brand:        off.Brands,
			Picture:      off.ImageURL,
			Category:     off.Categories,
			Ingredients:  off.IngredientsText,
			Vegan:        hasLabel(off.Labels, "vegan"),
			Vegetarian:   hasLabel(off.Labels, "vegetarian", "vegan"),
			GlutenFree:   hasLabel(off.Labels, "gluten-free", "no gluten", "sans gluten"),
			Barcode:      req.Barcode,
			ExternalData: datatypes.JSON(raw),
			LastSyncedAt: &now,
		}

		if req.Preview {
			c.JSON(http.StatusOK, gin.H{"preview": true, "product": mapped})
			return
		}

		var existing models.Product
		err = db.Where("barcode = ?", req.Barcode).First(&existing).Error
		switch {
		case err == nil:
			updates := map[string]interface{}{
				"name":           mapped.Name,
				"brand":          mapped.Brand,
				"picture":        mapped.Picture,
				"category":       mapped.Category,
				"ingredients":    mapped.Ingredients,
				"vegan":          mapped.Vegan,
				"vegetarian":     mapped.Vegetarian,
				"gluten_free":    mapped.GlutenFree,
				"external_data":  mapped.ExternalData,
				"last_synced_at": mapped.LastSyncedAt,
			}
			if err := db.Model(&existing).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
				return
			}
			c.JSON(http.StatusOK, existing)

		case errors.Is(err, gorm.ErrRecordNotFound):
			mapped.Price = decimal.Zero
			if err := db.Create(&mapped).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
				return
			}
			c.JSON(http.StatusOK, mapped)

		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
