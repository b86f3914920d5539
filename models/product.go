package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Brand       string          `json:"brand"`
	Picture     string          `json:"picture"`
	Category    string          `json:"category"`
	Ingredients string          `json:"ingredients"`
	Vegan       bool            `json:"vegan"`
	Vegetarian  bool            `json:"vegetarian"`
	GlutenFree  bool            `json:"gluten_free"`
	Stock       int             `gorm:"default:0" json:"stock"`
	Barcode     string          `gorm:"uniqueIndex" json:"barcode,omitempty"`

	// Raw payload from the external catalog, kept verbatim for later remapping.
	ExternalData datatypes.JSON `json:"external_data,omitempty"`
	LastSyncedAt *time.Time     `json:"last_synced_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
