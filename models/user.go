package models

import "time"

type Role string

const (
	RoleCustomer Role = "customer" // Default role for registered shoppers
	RoleAdmin    Role = "admin"    // Full catalog/order/report management
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string    `gorm:"not null" json:"first_name"`
	LastName  string    `gorm:"not null" json:"last_name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Zipcode   string    `json:"zipcode"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Role      Role      `gorm:"type:VARCHAR(20);default:'customer'" json:"role"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
