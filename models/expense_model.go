package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Expense struct {
	gorm.Model
	UnitID      uint            `json:"unit_id" gorm:"index"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:decimal(15,2);default:0"`
	ExpenseDate time.Time       `json:"expense_date" gorm:"index"`
	PaidTo      string          `json:"paid_to"`
	PaymentMode string          `json:"payment_mode"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}
