package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SalaryPayment struct {
	gorm.Model
	// Uniqueness per employee and period is enforced in the controller,
	// scoped to live rows. A DB unique index would also span
	// soft-deleted rows and block re-booking after a delete.
	UnitID       uint            `json:"unit_id" gorm:"index:idx_salary_period"`
	EmployeeName string          `json:"employee_name" gorm:"index:idx_salary_period"`
	EmployeeRole string          `json:"employee_role"`
	PeriodYear   int             `json:"period_year" gorm:"index:idx_salary_period"`
	PeriodMonth  int             `json:"period_month" gorm:"index:idx_salary_period"`
	BaseAmount   decimal.Decimal `json:"base_amount" gorm:"type:decimal(15,2);default:0"`
	Overtime     decimal.Decimal `json:"overtime" gorm:"type:decimal(15,2);default:0"`
	Deductions   decimal.Decimal `json:"deductions" gorm:"type:decimal(15,2);default:0"`
	NetAmount    decimal.Decimal `json:"net_amount" gorm:"type:decimal(15,2);default:0"`
	PaymentDate  time.Time       `json:"payment_date"`
	PaymentMode  string          `json:"payment_mode"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}
