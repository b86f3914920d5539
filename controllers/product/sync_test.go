package productcontroller_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/storely/storefront-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubOpenFoodFacts serves a canned OFF payload for one barcode and the
// not-found status for everything else.
func stubOpenFoodFacts(t *testing.T, barcode string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == fmt.Sprintf("/api/v0/product/%s.json", barcode) {
			fmt.Fprintf(w, `{
				"status": 1,
				"product": {
					"product_name": "Hazelnut Spread",
					"brands": "Nutico",
					"image_url": "https://img.example.com/spread.jpg",
					"categories": "Spreads",
					"ingredients_text": "hazelnuts, sugar, palm oil",
					"labels": "Vegetarian, Gluten-free"
				}
			}`)
			return
		}
		fmt.Fprint(w, `{"status": 0}`)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("OFF_API_URL", srv.URL)
}

func TestSyncProductCreatesFromExternalCatalog(t *testing.T) {
	db, r := setupTest(t)
	token := adminToken(t, db)
	stubOpenFoodFacts(t, "737628064502")

	w := doRequest(r, http.MethodPost, "/products/sync", gin.H{"barcode": "737628064502"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, db.Where("barcode = ?", "737628064502").First(&product).Error)
	assert.Equal(t, "Hazelnut Spread", product.Name)
	assert.Equal(t, "Nutico", product.Brand)
	assert.Equal(t, "Spreads", product.Category)
	assert.True(t, product.Price.Equal(decimal.Zero), "external catalog has no price data")
	assert.True(t, product.Vegetarian)
	assert.True(t, product.GlutenFree)
	assert.False(t, product.Vegan)
	assert.NotNil(t, product.LastSyncedAt)
	assert.NotEmpty(t, product.ExternalData)
}

func TestSyncProductUpdatesExistingByBarcode(t *testing.T) {
	db, r := setupTest(t)
	token := adminToken(t, db)
	stubOpenFoodFacts(t, "737628064502")

	existing := models.Product{
		Name:    "Old Name",
		Price:   decimal.RequireFromString("4.20"),
		Stock:   7,
		Barcode: "737628064502",
	}
	require.NoError(t, db.Create(&existing).Error)

	w := doRequest(r, http.MethodPost, "/products/sync", gin.H{"barcode": "737628064502"}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var product models.Product
	require.NoError(t, db.First(&product, existing.ID).Error)
	assert.Equal(t, "Hazelnut Spread", product.Name)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("4.20")), "local price is kept")
	assert.Equal(t, 7, product.Stock, "local stock is kept")

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "no duplicate row for a known barcode")
}

func TestSyncProductPreviewDoesNotPersist(t *testing.T) {
	db, r := setupTest(t)
	token := adminToken(t, db)
	stubOpenFoodFacts(t, "737628064502")

	w := doRequest(r, http.MethodPost, "/products/sync", gin.H{
		"barcode": "737628064502", "preview": true,
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Hazelnut Spread")

	err := db.Where("barcode = ?", "737628064502").First(&models.Product{}).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSyncProductUnknownBarcode(t *testing.T) {
	db, r := setupTest(t)
	token := adminToken(t, db)
	stubOpenFoodFacts(t, "737628064502")

	w := doRequest(r, http.MethodPost, "/products/sync", gin.H{"barcode": "000000000000"}, token)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(r, http.MethodPost, "/products/sync", gin.H{}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
