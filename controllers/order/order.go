package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/storely/storefront-api/auth"
	"github.com/storely/storefront-api/middleware"
	"github.com/storely/storefront-api/models"
	"gorm.io/gorm"
)

// -------- Request Structs --------

type OrderItemRequest struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items" binding:"required,dive"`
	PaymentMethod string             `json:"paymentMethod" binding:"required"`
}

type UpdateOrderRequest struct {
	PaymentStatus *string `json:"payment_status"`
	PaymentMethod *string `json:"payment_method"`
}

// -------- Helpers --------

func mapPaymentMethod(method string) (models.PaymentMethod, error) {
	switch strings.ToLower(method) {
	case string(models.PaymentMethodCard):
		return models.PaymentMethodCard, nil
	case string(models.PaymentMethodCash):
		return models.PaymentMethodCash, nil
	case string(models.PaymentMethodPaypal):
		return models.PaymentMethodPaypal, nil
	default:
		return "", errors.New("invalid payment method")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// Generate unique order reference
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// CreateOrder validates the cart, snapshots prices, decrements stock and
// persists the order with its items in a single transaction. Stock is
// deducted with a conditional update (stock >= wanted), so two concurrent
// checkouts cannot both pass the stock check and drive stock negative.
func CreateOrder(db *gorm.DB, userID uint, req CreateOrderRequest) (models.Order, error) {
	if len(req.Items) == 0 {
		return models.Order{}, errors.New("No items provided")
	}

	method, err := mapPaymentMethod(req.PaymentMethod)
	if err != nil {
		return models.Order{}, err
	}

	var order models.Order
	err = db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero
		var items []models.OrderItem

		for _, line := range req.Items {
			if line.Quantity < 1 {
				return fmt.Errorf("Quantity must be at least 1 for product %d", line.ProductID)
			}
			var product models.Product
			if err := tx.First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("Product %d not found: %w", line.ProductID, ErrProductNotFound)
				}
				return err
			}

			// Guarded deduct: refuses rather than going negative under
			// a concurrent checkout
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("Not enough stock for %s: %w", product.Name, ErrInsufficientStock)
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)

			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.Price,
				Subtotal:    subtotal,
			})
		}

		order = models.Order{
			Ref:           generateOrderRef(),
			UserID:        userID,
			Items:         items,
			TotalAmount:   total,
			PaymentMethod: method,
			PaymentStatus: models.PaymentStatusPaid, // simulated immediate payment success
			CreatedAt:     time.Now(),
		}
		return tx.Create(&order).Error
	})
	if err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// -------- Handlers --------

// POST /orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		userID, _ := middleware.CurrentUser(c)

		order, err := CreateOrder(db, userID, req)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		broadcastNewOrder(order)
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders — admins see everything, customers only their own
func GetOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role := middleware.CurrentUser(c)

		query := db.Preload("User").Order("created_at DESC")
		if role != models.RoleAdmin {
			query = query.Where("user_id = ?", userID)
		}

		var orders []models.Order
		if err := query.Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /orders/:id — detail with line items, owner-or-admin only
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role := middleware.CurrentUser(c)

		var order models.Order
		if err := db.Preload("User").Preload("Items").Preload("Items.Product").
			First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		if !auth.CanAccessOrder(role, order.UserID, userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

// PUT /orders/:id — admin payment status/method correction
func UpdateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		updates := make(map[string]interface{})
		if req.PaymentStatus != nil {
			status, err := mapPaymentStatus(*req.PaymentStatus)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["payment_status"] = status
		}
		if req.PaymentMethod != nil {
			method, err := mapPaymentMethod(*req.PaymentMethod)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates["payment_method"] = method
		}

		if len(updates) > 0 {
			if err := db.Model(&order).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
				return
			}
		}
		c.JSON(http.StatusOK, order)
	}
}

// DELETE /orders/:id — admin only, removes the order and its items together
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			return tx.Where("id = ?", orderID).Delete(&models.Order{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	}
}
