package repositories

import (
	"time"

	"stitch-erp/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db}
}

// PeriodTotals carries the money aggregates for one reporting period
type PeriodTotals struct {
	Expenses    decimal.Decimal `json:"expenses"`
	Revenues    decimal.Decimal `json:"revenues"`
	Salaries    decimal.Decimal `json:"salaries"`
	Maintenance decimal.Decimal `json:"maintenance"`
	OrderCount  int64           `json:"order_count"`
}

// GetPeriodTotals aggregates one calendar month, for one unit or the
// whole business when unitID is nil.
func (r *ReportRepository) GetPeriodTotals(unitID *uint, year, month int) (PeriodTotals, error) {
	var totals PeriodTotals

	periodStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	periodEnd := periodStart.AddDate(0, 1, 0)

	type sumRow struct {
		Total decimal.Decimal
	}

	sumFor := func(table, column, dateColumn string) (decimal.Decimal, error) {
		var row sumRow
		query := r.db.Table(table).
			Select("COALESCE(SUM("+column+"), 0) AS total").
			Where(dateColumn+" >= ? AND "+dateColumn+" < ?", periodStart, periodEnd).
			Where("deleted_at IS NULL")
		if unitID != nil {
			query = query.Where("unit_id = ?", *unitID)
		}
		err := query.Scan(&row).Error
		return row.Total, err
	}

	var err error
	if totals.Expenses, err = sumFor("expenses", "amount", "expense_date"); err != nil {
		return totals, err
	}
	if totals.Revenues, err = sumFor("revenues", "amount", "revenue_date"); err != nil {
		return totals, err
	}
	if totals.Maintenance, err = sumFor("maintenance_records", "cost", "maintenance_date"); err != nil {
		return totals, err
	}

	// Salaries are booked against the pay period, not the payment date
	var salaryRow sumRow
	salaryQuery := r.db.Table("salary_payments").
		Select("COALESCE(SUM(net_amount), 0) AS total").
		Where("period_year = ? AND period_month = ?", year, month).
		Where("deleted_at IS NULL")
	if unitID != nil {
		salaryQuery = salaryQuery.Where("unit_id = ?", *unitID)
	}
	if err := salaryQuery.Scan(&salaryRow).Error; err != nil {
		return totals, err
	}
	totals.Salaries = salaryRow.Total

	orderQuery := r.db.Model(&models.Order{}).
		Where("order_date >= ? AND order_date < ?", periodStart, periodEnd)
	if unitID != nil {
		orderQuery = orderQuery.Where("unit_id = ?", *unitID)
	}
	if err := orderQuery.Count(&totals.OrderCount).Error; err != nil {
		return totals, err
	}

	return totals, nil
}
