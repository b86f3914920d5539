package reportControllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/storely/storefront-api/middleware"
	"github.com/storely/storefront-api/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const lowStockThreshold = 20

// -------- Snapshot Schema --------

type DailySalesEntry struct {
	Date   string          `json:"date"`
	Sales  decimal.Decimal `json:"sales"`
	Orders int             `json:"orders"`
}

type TopProductEntry struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type CategoryRevenueEntry struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
}

type LowStockEntry struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}

type PaymentMethodEntry struct {
	Method string `json:"method"`
	Count  int    `json:"count"`
}

type SignupEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ReportData is the KPI snapshot persisted with each generated report.
type ReportData struct {
	TotalRevenue    decimal.Decimal        `json:"totalRevenue"`
	TotalOrders     int64                  `json:"totalOrders"`
	TotalProducts   int64                  `json:"totalProducts"`
	DailySales      []DailySalesEntry      `json:"dailySales"`
	TopProducts     []TopProductEntry      `json:"topProducts"`
	CategoryRevenue []CategoryRevenueEntry `json:"categoryRevenue"`
	LowStock        []LowStockEntry        `json:"lowStock"`
	PaymentMethods  []PaymentMethodEntry   `json:"paymentMethods"`
	UserSignups     []SignupEntry          `json:"userSignups"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

// -------- Aggregation --------

func totalRevenue(db *gorm.DB) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := db.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

// dailySales buckets the last seven days of orders by calendar day,
// date-ascending.
func dailySales(db *gorm.DB, since time.Time) ([]DailySalesEntry, error) {
	var orders []models.Order
	if err := db.Where("created_at >= ?", since).Find(&orders).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]*DailySalesEntry)
	for _, o := range orders {
		day := o.CreatedAt.Format("2006-01-02")
		entry, ok := buckets[day]
		if !ok {
			entry = &DailySalesEntry{Date: day, Sales: decimal.Zero}
			buckets[day] = entry
		}
		entry.Sales = entry.Sales.Add(o.TotalAmount)
		entry.Orders++
	}

	series := make([]DailySalesEntry, 0, len(buckets))
	for d := 0; d < 8; d++ {
		day := since.AddDate(0, 0, d).Format("2006-01-02")
		if entry, ok := buckets[day]; ok {
			series = append(series, *entry)
		}
	}
	return series, nil
}

func topProducts(db *gorm.DB) ([]TopProductEntry, error) {
	rows := []TopProductEntry{}
	err := db.Raw(`
		SELECT products.name AS name, SUM(order_items.quantity) AS value
		FROM order_items
		JOIN products ON products.id = order_items.product_id
		GROUP BY products.id, products.name
		ORDER BY value DESC
		LIMIT 5`).Scan(&rows).Error
	return rows, err
}

func categoryRevenue(db *gorm.DB) ([]CategoryRevenueEntry, error) {
	rows := []CategoryRevenueEntry{}
	err := db.Raw(`
		SELECT COALESCE(NULLIF(products.category, ''), 'Uncategorized') AS name,
		       SUM(order_items.subtotal) AS value
		FROM order_items
		JOIN products ON products.id = order_items.product_id
		GROUP BY 1`).Scan(&rows).Error
	return rows, err
}

func lowStockProducts(db *gorm.DB) ([]LowStockEntry, error) {
	rows := []LowStockEntry{}
	err := db.Model(&models.Product{}).
		Select("id, name, stock").
		Where("stock < ?", lowStockThreshold).
		Order("stock asc").
		Limit(10).
		Scan(&rows).Error
	return rows, err
}

func paymentMethodUsage(db *gorm.DB) ([]PaymentMethodEntry, error) {
	rows := []PaymentMethodEntry{}
	err := db.Model(&models.Order{}).
		Select("payment_method AS method, COUNT(*) AS count").
		Group("payment_method").
		Scan(&rows).Error
	return rows, err
}

// userSignups buckets the last seven days of registrations by calendar day.
func userSignups(db *gorm.DB, since time.Time) ([]SignupEntry, error) {
	var users []models.User
	if err := db.Where("created_at >= ?", since).Find(&users).Error; err != nil {
		return nil, err
	}

	buckets := make(map[string]int)
	for _, u := range users {
		buckets[u.CreatedAt.Format("2006-01-02")]++
	}

	series := make([]SignupEntry, 0, len(buckets))
	for d := 0; d < 8; d++ {
		day := since.AddDate(0, 0, d).Format("2006-01-02")
		if count, ok := buckets[day]; ok {
			series = append(series, SignupEntry{Date: day, Count: count})
		}
	}
	return series, nil
}

// BuildReportData runs every KPI aggregation against current data.
func BuildReportData(db *gorm.DB) (ReportData, error) {
	data := ReportData{GeneratedAt: time.Now()}
	since := time.Now().AddDate(0, 0, -7)

	var err error
	if data.TotalRevenue, err = totalRevenue(db); err != nil {
		return data, err
	}
	if err = db.Model(&models.Order{}).Count(&data.TotalOrders).Error; err != nil {
		return data, err
	}
	if err = db.Model(&models.Product{}).Count(&data.TotalProducts).Error; err != nil {
		return data, err
	}
	if data.DailySales, err = dailySales(db, since); err != nil {
		return data, err
	}
	if data.TopProducts, err = topProducts(db); err != nil {
		return data, err
	}
	if data.CategoryRevenue, err = categoryRevenue(db); err != nil {
		return data, err
	}
	if data.LowStock, err = lowStockProducts(db); err != nil {
		return data, err
	}
	if data.PaymentMethods, err = paymentMethodUsage(db); err != nil {
		return data, err
	}
	if data.UserSignups, err = userSignups(db, since); err != nil {
		return data, err
	}
	return data, nil
}

// -------- Handlers --------

// POST /reports/generate — compute the KPI snapshot and persist it
func GenerateReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.CurrentUser(c)

		data, err := BuildReportData(db)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		payload, err := json.Marshal(data)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		report := models.Report{
			Type:          models.ReportTypeCustom,
			Data:          datatypes.JSON(payload),
			GeneratedByID: userID,
		}
		if err := db.Create(&report).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

// GET /reports — newest first
func GetReportsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reports []models.Report
		if err := db.Order("created_at DESC").Find(&reports).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, reports)
	}
}

// DELETE /reports/:id
func DeleteReportHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var report models.Report
		if err := db.First(&report, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if err := db.Delete(&report).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
	}
}
