package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusInProgress = "in_progress"
	OrderStatusCompleted  = "completed"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	gorm.Model
	OrderNo    string          `json:"order_no" gorm:"unique"`
	CustomerID uint            `json:"customer_id" gorm:"index"`
	UnitID     *uint           `json:"unit_id" gorm:"index"`
	OrderDate  time.Time       `json:"order_date" gorm:"index"`
	DueDate    *time.Time      `json:"due_date"`
	Status     string          `json:"status" gorm:"default:pending"`
	InterState bool            `json:"inter_state" gorm:"default:false"`
	Subtotal   decimal.Decimal `json:"subtotal" gorm:"type:decimal(15,2);default:0"`
	CgstAmount decimal.Decimal `json:"cgst_amount" gorm:"type:decimal(15,2);default:0"`
	SgstAmount decimal.Decimal `json:"sgst_amount" gorm:"type:decimal(15,2);default:0"`
	IgstAmount decimal.Decimal `json:"igst_amount" gorm:"type:decimal(15,2);default:0"`
	GrandTotal decimal.Decimal `json:"grand_total" gorm:"type:decimal(15,2);default:0"`
	Notes      string          `json:"notes"`
	Items      []OrderItem     `json:"items"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int
}

type OrderItem struct {
	ID          uint            `gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"index"`
	Description string          `json:"description"`
	HsnCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"quantity" gorm:"type:decimal(15,3);default:0"`
	Rate        decimal.Decimal `json:"rate" gorm:"type:decimal(15,2);default:0"`
	GstRate     decimal.Decimal `json:"gst_rate" gorm:"type:decimal(5,2);default:0"`
	LineAmount  decimal.Decimal `json:"line_amount" gorm:"type:decimal(15,2);default:0"`
	TaxAmount   decimal.Decimal `json:"tax_amount" gorm:"type:decimal(15,2);default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// orderTransitions holds the allowed status lifecycle
var orderTransitions = map[string][]string{
	OrderStatusPending:    {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
	OrderStatusCompleted:  {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

func IsValidOrderTransition(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
