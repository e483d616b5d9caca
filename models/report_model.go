package models

import (
	"time"

	"stitch-erp/types"

	"github.com/shopspring/decimal"
)

type Report struct {
	ID               types.SnowflakeID `json:"id" gorm:"primaryKey"`
	ReportNo         string            `json:"report_no" gorm:"unique"`
	UnitID           *uint             `json:"unit_id" gorm:"index"`
	PeriodYear       int               `json:"period_year" gorm:"index"`
	PeriodMonth      int               `json:"period_month" gorm:"index"`
	TotalExpenses    decimal.Decimal   `json:"total_expenses" gorm:"type:decimal(15,2);default:0"`
	TotalRevenues    decimal.Decimal   `json:"total_revenues" gorm:"type:decimal(15,2);default:0"`
	TotalSalaries    decimal.Decimal   `json:"total_salaries" gorm:"type:decimal(15,2);default:0"`
	TotalMaintenance decimal.Decimal   `json:"total_maintenance" gorm:"type:decimal(15,2);default:0"`
	OrderCount       int64             `json:"order_count"`
	NetProfit        decimal.Decimal   `json:"net_profit" gorm:"type:decimal(15,2);default:0"`
	FilePath         string            `json:"file_path"`
	EmailedTo        string            `json:"emailed_to"`
	CreatedBy        int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// FileLog records every legacy spreadsheet file that has been imported
type FileLog struct {
	ID           uint   `gorm:"primaryKey"`
	Filename     string `gorm:"unique;not null"`
	RowsImported int
	RowsSkipped  int
	DateModified time.Time
	CreatedAt    time.Time
}
