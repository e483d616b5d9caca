package controllers

import (
	"testing"
	"time"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMaintenanceApp(t *testing.T) (*testHarness, models.ProductionUnit) {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	controller := NewMaintenanceController(db)
	app.Get("/maintenance/upcoming", controller.GetUpcoming)
	app.Post("/maintenance", controller.CreateRecord)
	app.Get("/maintenance", controller.GetAllRecords)

	unit := seedUnit(t, db, "MAIN")
	return &testHarness{app: app, db: db}, unit
}

func TestCreateMaintenanceRecord(t *testing.T) {
	h, unit := setupMaintenanceApp(t)

	status, resp := doJSON(t, h.app, "POST", "/maintenance", map[string]interface{}{
		"unit_id":          unit.ID,
		"machine_name":     "Juki 8700",
		"description":      "Annual service",
		"cost":             "1800",
		"maintenance_date": "2026-08-15",
		"performed_by":     "Sharma Mechanics",
		"next_due_date":    "2027-02-15",
	})
	require.Equal(t, 201, status, "resp: %v", resp)

	var record models.MaintenanceRecord
	require.NoError(t, h.db.Where("machine_name = ?", "Juki 8700").First(&record).Error)
	require.NotNil(t, record.NextDueDate)
	assert.Equal(t, 2027, record.NextDueDate.Year())
}

func TestGetUpcomingMaintenance(t *testing.T) {
	h, unit := setupMaintenanceApp(t)

	soon := time.Now().AddDate(0, 0, 10)
	far := time.Now().AddDate(0, 6, 0)
	past := time.Now().AddDate(0, 0, -10)

	for _, row := range []struct {
		machine string
		due     *time.Time
	}{
		{"Due soon", &soon},
		{"Due far", &far},
		{"Overdue", &past},
		{"No schedule", nil},
	} {
		require.NoError(t, h.db.Create(&models.MaintenanceRecord{
			UnitID:          unit.ID,
			MachineName:     row.machine,
			Cost:            dec("100"),
			MaintenanceDate: time.Now().AddDate(0, -6, 0),
			NextDueDate:     row.due,
		}).Error)
	}

	status, resp := doJSON(t, h.app, "GET", "/maintenance/upcoming?days=30", nil)
	require.Equal(t, 200, status)

	data := resp["data"].([]interface{})
	require.Len(t, data, 1)
	record := data[0].(map[string]interface{})
	assert.Equal(t, "Due soon", record["machine_name"])

	status, _ = doJSON(t, h.app, "GET", "/maintenance/upcoming?days=0", nil)
	assert.Equal(t, 400, status)
}
