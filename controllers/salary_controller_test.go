package controllers

import (
	"fmt"
	"testing"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSalaryApp(t *testing.T) (*testHarness, models.ProductionUnit) {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	controller := NewSalaryController(db)
	app.Post("/salaries", controller.CreatePayment)
	app.Get("/salaries", controller.GetAllPayments)
	app.Put("/salaries/:id", controller.UpdatePayment)
	app.Delete("/salaries/:id", controller.DeletePayment)

	unit := seedUnit(t, db, "MAIN")
	return &testHarness{app: app, db: db}, unit
}

func TestCreateSalaryPayment(t *testing.T) {
	h, unit := setupSalaryApp(t)

	body := map[string]interface{}{
		"unit_id":       unit.ID,
		"employee_name": "Lakshmi",
		"employee_role": "tailor",
		"period_year":   2026,
		"period_month":  7,
		"base_amount":   "12000",
		"overtime":      "800",
		"deductions":    "300",
		"payment_date":  "2026-08-01",
		"payment_mode":  "upi",
	}

	status, resp := doJSON(t, h.app, "POST", "/salaries", body)
	require.Equal(t, 201, status, "resp: %v", resp)

	var payment models.SalaryPayment
	require.NoError(t, h.db.Where("employee_name = ?", "Lakshmi").First(&payment).Error)
	assert.True(t, payment.NetAmount.Equal(dec("12500")), "net = %s", payment.NetAmount)
}

func TestCreateSalaryPayment_DuplicatePeriod(t *testing.T) {
	h, unit := setupSalaryApp(t)

	body := map[string]interface{}{
		"unit_id":       unit.ID,
		"employee_name": "Ravi",
		"period_year":   2026,
		"period_month":  6,
		"base_amount":   "10000",
		"payment_date":  "2026-07-01",
	}

	status, _ := doJSON(t, h.app, "POST", "/salaries", body)
	require.Equal(t, 201, status)

	status, resp := doJSON(t, h.app, "POST", "/salaries", body)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Salary already paid for this employee and period", resp["error"])

	// Same employee, next month is fine
	body["period_month"] = 7
	status, _ = doJSON(t, h.app, "POST", "/salaries", body)
	assert.Equal(t, 201, status)
}

func TestCreateSalaryPayment_RebookAfterDelete(t *testing.T) {
	h, unit := setupSalaryApp(t)

	body := map[string]interface{}{
		"unit_id":       unit.ID,
		"employee_name": "Meena",
		"period_year":   2026,
		"period_month":  5,
		"base_amount":   "9000",
		"payment_date":  "2026-06-01",
	}

	status, _ := doJSON(t, h.app, "POST", "/salaries", body)
	require.Equal(t, 201, status)

	var payment models.SalaryPayment
	require.NoError(t, h.db.Where("employee_name = ?", "Meena").First(&payment).Error)

	status, _ = doJSON(t, h.app, "DELETE", fmt.Sprintf("/salaries/%d", payment.ID), nil)
	require.Equal(t, 200, status)

	// The deleted payment no longer blocks the period
	status, resp := doJSON(t, h.app, "POST", "/salaries", body)
	assert.Equal(t, 201, status, "resp: %v", resp)

	var count int64
	require.NoError(t, h.db.Model(&models.SalaryPayment{}).
		Where("employee_name = ?", "Meena").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateSalaryPayment_DeductionsExceedGross(t *testing.T) {
	h, unit := setupSalaryApp(t)

	body := map[string]interface{}{
		"unit_id":       unit.ID,
		"employee_name": "Kumar",
		"period_year":   2026,
		"period_month":  6,
		"base_amount":   "5000",
		"overtime":      "100",
		"deductions":    "6000",
		"payment_date":  "2026-07-01",
	}

	status, resp := doJSON(t, h.app, "POST", "/salaries", body)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Deductions exceed gross salary", resp["error"])
}

func TestCreateSalaryPayment_UnknownUnit(t *testing.T) {
	h, _ := setupSalaryApp(t)

	body := map[string]interface{}{
		"unit_id":       9999,
		"employee_name": "Ghost",
		"period_year":   2026,
		"period_month":  6,
		"base_amount":   "5000",
		"payment_date":  "2026-07-01",
	}

	status, resp := doJSON(t, h.app, "POST", "/salaries", body)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Production unit not found", resp["error"])
}
