package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string
type PaymentStatus string

const (
	// Payment methods (checkout is simulated, no gateway behind these)
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodPaypal PaymentMethod = "paypal"

	// Payment statuses
	PaymentStatusPending PaymentStatus = "pending" // Payment not completed yet
	PaymentStatusPaid    PaymentStatus = "paid"    // Payment completed successfully
	PaymentStatusFailed  PaymentStatus = "failed"  // Payment attempt failed
)

type Order struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Ref           string          `gorm:"uniqueIndex" json:"ref"`
	UserID        uint            `gorm:"not null;index" json:"user_id"`
	User          User            `gorm:"foreignKey:UserID" json:"user"`
	Items         []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`
	PaymentMethod PaymentMethod   `gorm:"type:VARCHAR(20)" json:"payment_method"`
	PaymentStatus PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index" json:"order_id"`
	ProductID   uint            `json:"product_id"`
	Product     Product         `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"` // price snapshot at purchase time
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
