package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"stitch-erp/database"
	"stitch-erp/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func TestGetPeriodTotals(t *testing.T) {
	db := newTestDB(t)
	repo := NewReportRepository(db)

	unit := models.ProductionUnit{UnitCode: "MAIN", UnitName: "Main Unit", Status: "active"}
	require.NoError(t, db.Create(&unit).Error)
	other := models.ProductionUnit{UnitCode: "AUX", UnitName: "Aux Unit", Status: "active"}
	require.NoError(t, db.Create(&other).Error)

	july := time.Date(2026, 7, 15, 0, 0, 0, 0, time.Local)
	august := time.Date(2026, 8, 2, 0, 0, 0, 0, time.Local)

	require.NoError(t, db.Create(&models.Expense{UnitID: unit.ID, Category: "rent", Amount: d("5000"), ExpenseDate: july}).Error)
	require.NoError(t, db.Create(&models.Expense{UnitID: unit.ID, Category: "rent", Amount: d("5000"), ExpenseDate: august}).Error)
	require.NoError(t, db.Create(&models.Expense{UnitID: other.ID, Category: "rent", Amount: d("700"), ExpenseDate: july}).Error)
	require.NoError(t, db.Create(&models.Revenue{UnitID: unit.ID, Source: "job_work", Amount: d("20000"), RevenueDate: july}).Error)
	require.NoError(t, db.Create(&models.MaintenanceRecord{UnitID: unit.ID, MachineName: "Singer 9", Cost: d("1200"), MaintenanceDate: july}).Error)

	// Salary booked for July but paid in August still counts in July
	require.NoError(t, db.Create(&models.SalaryPayment{
		UnitID: unit.ID, EmployeeName: "Devi", PeriodYear: 2026, PeriodMonth: 7,
		BaseAmount: d("11000"), NetAmount: d("11000"), PaymentDate: august,
	}).Error)

	require.NoError(t, db.Create(&models.Order{
		OrderNo: "SO-T1", CustomerID: 1, UnitID: &unit.ID, OrderDate: july, Status: models.OrderStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		OrderNo: "SO-T2", CustomerID: 1, UnitID: &unit.ID, OrderDate: august, Status: models.OrderStatusPending,
	}).Error)

	t.Run("single unit", func(t *testing.T) {
		totals, err := repo.GetPeriodTotals(&unit.ID, 2026, 7)
		require.NoError(t, err)

		assert.True(t, totals.Expenses.Equal(d("5000")), "expenses = %s", totals.Expenses)
		assert.True(t, totals.Revenues.Equal(d("20000")), "revenues = %s", totals.Revenues)
		assert.True(t, totals.Maintenance.Equal(d("1200")), "maintenance = %s", totals.Maintenance)
		assert.True(t, totals.Salaries.Equal(d("11000")), "salaries = %s", totals.Salaries)
		assert.Equal(t, int64(1), totals.OrderCount)
	})

	t.Run("all units", func(t *testing.T) {
		totals, err := repo.GetPeriodTotals(nil, 2026, 7)
		require.NoError(t, err)

		assert.True(t, totals.Expenses.Equal(d("5700")), "expenses = %s", totals.Expenses)
	})

	t.Run("empty month", func(t *testing.T) {
		totals, err := repo.GetPeriodTotals(&unit.ID, 2026, 1)
		require.NoError(t, err)

		assert.True(t, totals.Expenses.IsZero())
		assert.True(t, totals.Revenues.IsZero())
		assert.True(t, totals.Salaries.IsZero())
		assert.Equal(t, int64(0), totals.OrderCount)
	})

	t.Run("soft deleted rows excluded", func(t *testing.T) {
		var expense models.Expense
		require.NoError(t, db.Where("amount = ? AND unit_id = ?", d("5000"), unit.ID).
			Where("expense_date >= ?", time.Date(2026, 7, 1, 0, 0, 0, 0, time.Local)).
			Where("expense_date < ?", time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)).
			First(&expense).Error)
		require.NoError(t, db.Delete(&expense).Error)

		totals, err := repo.GetPeriodTotals(&unit.ID, 2026, 7)
		require.NoError(t, err)
		assert.True(t, totals.Expenses.IsZero(), "expenses = %s", totals.Expenses)
	})
}

func TestDashboardRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewDashboardRepository(db)

	unit := models.ProductionUnit{UnitCode: "MAIN", UnitName: "Main Unit", Status: "active"}
	require.NoError(t, db.Create(&unit).Error)

	now := time.Now()
	require.NoError(t, db.Create(&models.Expense{UnitID: unit.ID, Category: "rent", Amount: d("4000"), ExpenseDate: now}).Error)
	require.NoError(t, db.Create(&models.Revenue{UnitID: unit.ID, Source: "job_work", Amount: d("9000"), RevenueDate: now}).Error)
	require.NoError(t, db.Create(&models.SalaryPayment{
		UnitID: unit.ID, EmployeeName: "Devi", PeriodYear: now.Year(), PeriodMonth: int(now.Month()),
		BaseAmount: d("3000"), NetAmount: d("3000"), PaymentDate: now,
	}).Error)
	require.NoError(t, db.Create(&models.MaintenanceRecord{
		UnitID: unit.ID, MachineName: "Overlock 2", Cost: d("1500"), MaintenanceDate: now,
	}).Error)
	require.NoError(t, db.Create(&models.Order{
		OrderNo: "SO-D1", CustomerID: 1, OrderDate: now, Status: models.OrderStatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.InventoryItem{
		ItemCode: "LOW-1", ItemName: "Thread", Quantity: d("2"), ReorderLevel: d("10"),
	}).Error)

	t.Run("unit totals", func(t *testing.T) {
		units, err := repo.GetUnitTotals()
		require.NoError(t, err)
		require.Len(t, units, 1)
		assert.True(t, units[0].Expenses.Equal(d("4000")), "expenses = %s", units[0].Expenses)
		assert.True(t, units[0].Salaries.Equal(d("3000")), "salaries = %s", units[0].Salaries)
		assert.True(t, units[0].Maintenance.Equal(d("1500")), "maintenance = %s", units[0].Maintenance)
		assert.True(t, units[0].Revenues.Equal(d("9000")), "revenues = %s", units[0].Revenues)
	})

	t.Run("counts", func(t *testing.T) {
		pending, err := repo.CountPendingOrders()
		require.NoError(t, err)
		assert.Equal(t, int64(1), pending)

		low, err := repo.CountLowStockItems()
		require.NoError(t, err)
		assert.Equal(t, int64(1), low)
	})

	t.Run("monthly series", func(t *testing.T) {
		series, err := repo.GetMonthlySeries(now.Year())
		require.NoError(t, err)
		require.Len(t, series, 12)

		m := int(now.Month()) - 1
		assert.True(t, series[m].Expenses.Equal(d("4000")), "expenses = %s", series[m].Expenses)
		assert.True(t, series[m].Revenues.Equal(d("9000")), "revenues = %s", series[m].Revenues)
	})
}
