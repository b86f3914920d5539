package orderControllers

import (
	"fmt"
	"net/http"
	"net/smtp"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/storely/storefront-api/auth"
	"github.com/storely/storefront-api/middleware"
	"github.com/storely/storefront-api/models"
	"gorm.io/gorm"
)

// buildReceiptBody renders the plain-text receipt for an order.
func buildReceiptBody(order models.Order, user models.User) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThanks for your order %s.\n\n", user.FirstName, order.Ref)
	for _, item := range order.Items {
		fmt.Fprintf(&b, "  %dx %s @ %s = %s\n",
			item.Quantity, item.ProductName, item.UnitPrice.StringFixed(2), item.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\nTotal: %s\nPayment: %s (%s)\n", order.TotalAmount.StringFixed(2),
		order.PaymentMethod, order.PaymentStatus)
	return b.String()
}

func sendReceiptEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	from := os.Getenv("SMTP_FROM")
	addr := host + ":" + port

	msg := "From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n" +
		body

	return smtp.SendMail(addr, nil, from, []string{to}, []byte(msg))
}

// POST /orders/:id/email — mail the receipt to the order's owner
func EmailReceiptHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, role := middleware.CurrentUser(c)

		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if !auth.CanAccessOrder(role, order.UserID, userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		var user models.User
		if err := db.First(&user, order.UserID).Error; err != nil || user.Email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "User email not found"})
			return
		}

		subject := fmt.Sprintf("Your receipt for order %s", order.Ref)
		if err := sendReceiptEmail(user.Email, subject, buildReceiptBody(order, user)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Receipt emailed successfully!"})
	}
}
