package repositories

import (
	"time"

	"stitch-erp/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db}
}

type unitTotals struct {
	ID          uint            `json:"id"`
	UnitCode    string          `json:"unit_code"`
	UnitName    string          `json:"unit_name"`
	Status      string          `json:"status"`
	Expenses    decimal.Decimal `json:"expenses"`
	Salaries    decimal.Decimal `json:"salaries"`
	Maintenance decimal.Decimal `json:"maintenance"`
	Revenues    decimal.Decimal `json:"revenues"`
}

// GetUnitTotals returns lifetime cost and revenue per production unit.
// Cost covers expenses, salaries and maintenance, matching the unit
// summary endpoint.
func (r *DashboardRepository) GetUnitTotals() ([]unitTotals, error) {

	sqlUnits := `SELECT pu.id, pu.unit_code, pu.unit_name, pu.status,
	COALESCE(e.total, 0) AS expenses,
	COALESCE(s.total, 0) AS salaries,
	COALESCE(m.total, 0) AS maintenance,
	COALESCE(rv.total, 0) AS revenues
	FROM production_units pu
	LEFT JOIN (
		SELECT unit_id, SUM(amount) AS total FROM expenses WHERE deleted_at IS NULL GROUP BY unit_id
	) e ON e.unit_id = pu.id
	LEFT JOIN (
		SELECT unit_id, SUM(net_amount) AS total FROM salary_payments WHERE deleted_at IS NULL GROUP BY unit_id
	) s ON s.unit_id = pu.id
	LEFT JOIN (
		SELECT unit_id, SUM(cost) AS total FROM maintenance_records WHERE deleted_at IS NULL GROUP BY unit_id
	) m ON m.unit_id = pu.id
	LEFT JOIN (
		SELECT unit_id, SUM(amount) AS total FROM revenues WHERE deleted_at IS NULL GROUP BY unit_id
	) rv ON rv.unit_id = pu.id
	WHERE pu.deleted_at IS NULL
	ORDER BY pu.unit_code`

	var units []unitTotals
	if err := r.db.Raw(sqlUnits).Scan(&units).Error; err != nil {
		return nil, err
	}

	return units, nil
}

// MonthlySeries is expense vs revenue per month of one year
type MonthlySeries struct {
	Month    int             `json:"month"`
	Expenses decimal.Decimal `json:"expenses"`
	Revenues decimal.Decimal `json:"revenues"`
}

// GetMonthlySeries buckets the year's expenses and revenues per month.
// Bucketing happens here rather than in SQL so the query stays the
// same across the supported database drivers.
func (r *DashboardRepository) GetMonthlySeries(year int) ([]MonthlySeries, error) {
	yearStart := time.Date(year, 1, 1, 0, 0, 0, 0, time.Local)
	yearEnd := yearStart.AddDate(1, 0, 0)

	series := make([]MonthlySeries, 12)
	for i := range series {
		series[i] = MonthlySeries{
			Month:    i + 1,
			Expenses: decimal.Zero,
			Revenues: decimal.Zero,
		}
	}

	var expenses []models.Expense
	if err := r.db.Where("expense_date >= ? AND expense_date < ?", yearStart, yearEnd).
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	for _, e := range expenses {
		m := int(e.ExpenseDate.Month()) - 1
		series[m].Expenses = series[m].Expenses.Add(e.Amount)
	}

	var revenues []models.Revenue
	if err := r.db.Where("revenue_date >= ? AND revenue_date < ?", yearStart, yearEnd).
		Find(&revenues).Error; err != nil {
		return nil, err
	}
	for _, rev := range revenues {
		m := int(rev.RevenueDate.Month()) - 1
		series[m].Revenues = series[m].Revenues.Add(rev.Amount)
	}

	return series, nil
}

func (r *DashboardRepository) CountPendingOrders() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).
		Where("status IN ?", []string{models.OrderStatusPending, models.OrderStatusInProgress}).
		Count(&count).Error
	return count, err
}

func (r *DashboardRepository) CountLowStockItems() (int64, error) {
	var count int64
	err := r.db.Model(&models.InventoryItem{}).
		Where("quantity <= reorder_level").
		Count(&count).Error
	return count, err
}
