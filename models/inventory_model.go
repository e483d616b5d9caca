package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InventoryItem struct {
	gorm.Model
	ItemCode     string          `json:"item_code" gorm:"index"`
	ItemName     string          `json:"item_name"`
	Category     string          `json:"category"`
	Uom          string          `json:"uom"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(15,3);default:0"`
	ReorderLevel decimal.Decimal `json:"reorder_level" gorm:"type:decimal(15,3);default:0"`
	UnitPrice    decimal.Decimal `json:"unit_price" gorm:"type:decimal(15,2);default:0"`
	HsnCode      string          `json:"hsn_code"`
	GstRate      decimal.Decimal `json:"gst_rate" gorm:"type:decimal(5,2);default:0"`
	IsActive     bool            `json:"is_active" gorm:"default:true"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}

// StockAdjustment keeps the movement trail behind every quantity change
type StockAdjustment struct {
	ID             uint            `gorm:"primaryKey"`
	ItemID         uint            `json:"item_id" gorm:"index"`
	Direction      string          `json:"direction"`
	Quantity       decimal.Decimal `json:"quantity" gorm:"type:decimal(15,3)"`
	QuantityAfter  decimal.Decimal `json:"quantity_after" gorm:"type:decimal(15,3)"`
	Reason         string          `json:"reason"`
	AdjustmentDate time.Time       `json:"adjustment_date"`
	CreatedBy      int
	CreatedAt      time.Time
}
