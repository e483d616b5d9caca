package controllers

import (
	"fmt"
	"testing"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupExpenseApp(t *testing.T) (*testHarness, models.ProductionUnit) {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	controller := NewExpenseController(db)
	app.Post("/expenses", controller.CreateExpense)
	app.Get("/expenses", controller.GetAllExpenses)
	app.Get("/expenses/:id", controller.GetExpenseByID)
	app.Delete("/expenses/:id", controller.DeleteExpense)

	unit := seedUnit(t, db, "MAIN")
	return &testHarness{app: app, db: db}, unit
}

func TestCreateExpense(t *testing.T) {
	h, unit := setupExpenseApp(t)

	status, resp := doJSON(t, h.app, "POST", "/expenses", map[string]interface{}{
		"unit_id":      unit.ID,
		"category":     "electricity",
		"description":  "July EB bill",
		"amount":       "3250.50",
		"expense_date": "2026-07-28",
		"paid_to":      "TNEB",
		"payment_mode": "bank",
	})
	require.Equal(t, 201, status, "resp: %v", resp)

	var expense models.Expense
	require.NoError(t, h.db.Where("unit_id = ?", unit.ID).First(&expense).Error)
	assert.True(t, expense.Amount.Equal(dec("3250.50")))
	assert.Equal(t, "electricity", expense.Category)
}

func TestCreateExpense_Rejections(t *testing.T) {
	h, unit := setupExpenseApp(t)

	// non-positive amount
	status, resp := doJSON(t, h.app, "POST", "/expenses", map[string]interface{}{
		"unit_id":      unit.ID,
		"category":     "rent",
		"amount":       "0",
		"expense_date": "2026-07-28",
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Amount must be greater than zero", resp["error"])

	// unknown unit
	status, resp = doJSON(t, h.app, "POST", "/expenses", map[string]interface{}{
		"unit_id":      9999,
		"category":     "rent",
		"amount":       "100",
		"expense_date": "2026-07-28",
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Production unit not found", resp["error"])

	// bad date
	status, _ = doJSON(t, h.app, "POST", "/expenses", map[string]interface{}{
		"unit_id":      unit.ID,
		"category":     "rent",
		"amount":       "100",
		"expense_date": "28-07-2026",
	})
	assert.Equal(t, 400, status)
}

func TestGetAllExpenses_Filters(t *testing.T) {
	h, unit := setupExpenseApp(t)
	other := seedUnit(t, h.db, "AUX")

	for _, row := range []struct {
		unitID   uint
		category string
	}{
		{unit.ID, "rent"},
		{unit.ID, "electricity"},
		{other.ID, "rent"},
	} {
		status, _ := doJSON(t, h.app, "POST", "/expenses", map[string]interface{}{
			"unit_id":      row.unitID,
			"category":     row.category,
			"amount":       "100",
			"expense_date": "2026-07-28",
		})
		require.Equal(t, 201, status)
	}

	status, resp := doJSON(t, h.app, "GET", fmt.Sprintf("/expenses?unit_id=%d", unit.ID), nil)
	require.Equal(t, 200, status)
	assert.Len(t, resp["data"].([]interface{}), 2)

	status, resp = doJSON(t, h.app, "GET", "/expenses?category=rent", nil)
	require.Equal(t, 200, status)
	assert.Len(t, resp["data"].([]interface{}), 2)

	status, resp = doJSON(t, h.app, "GET", fmt.Sprintf("/expenses?unit_id=%d&category=rent", unit.ID), nil)
	require.Equal(t, 200, status)
	assert.Len(t, resp["data"].([]interface{}), 1)
}
