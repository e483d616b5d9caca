package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Revenue struct {
	gorm.Model
	UnitID       uint            `json:"unit_id" gorm:"index"`
	Source       string          `json:"source"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);default:0"`
	RevenueDate  time.Time       `json:"revenue_date" gorm:"index"`
	ReceivedFrom string          `json:"received_from"`
	PaymentMode  string          `json:"payment_mode"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}
