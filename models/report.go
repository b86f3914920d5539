package models

import (
	"time"

	"gorm.io/datatypes"
)

type ReportType string

const (
	ReportTypeDaily   ReportType = "daily"
	ReportTypeWeekly  ReportType = "weekly"
	ReportTypeMonthly ReportType = "monthly"
	ReportTypeCustom  ReportType = "custom"
)

// Report is a write-once snapshot of the KPIs computed at generation time.
type Report struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Type          ReportType     `gorm:"type:VARCHAR(20);not null" json:"type"`
	Data          datatypes.JSON `gorm:"not null" json:"data"`
	GeneratedByID uint           `gorm:"not null" json:"generated_by"`
	GeneratedBy   User           `gorm:"foreignKey:GeneratedByID" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
}
