package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaintenanceRecord struct {
	gorm.Model
	UnitID          uint            `json:"unit_id" gorm:"index"`
	MachineName     string          `json:"machine_name"`
	Description     string          `json:"description"`
	Cost            decimal.Decimal `json:"cost" gorm:"type:decimal(15,2);default:0"`
	MaintenanceDate time.Time       `json:"maintenance_date" gorm:"index"`
	PerformedBy     string          `json:"performed_by"`
	NextDueDate     *time.Time      `json:"next_due_date" gorm:"index"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}
