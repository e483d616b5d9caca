package controllers

import (
	"fmt"
	"testing"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupInventoryApp(t *testing.T) *testHarness {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	controller := NewInventoryController(db)
	app.Post("/inventory", controller.CreateItem)
	app.Get("/inventory", controller.GetAllItems)
	app.Get("/inventory/low-stock", controller.GetLowStockItems)
	app.Post("/inventory/:id/adjust", controller.AdjustStock)
	app.Get("/inventory/:id/history", controller.GetStockHistory)

	return &testHarness{app: app, db: db}
}

func seedItem(t *testing.T, h *testHarness, code, qty, reorder string) models.InventoryItem {
	t.Helper()
	item := models.InventoryItem{
		ItemCode:     code,
		ItemName:     code + " stock",
		Category:     "thread",
		Uom:          "PCS",
		Quantity:     dec(qty),
		ReorderLevel: dec(reorder),
	}
	require.NoError(t, h.db.Create(&item).Error)
	return item
}

func TestCreateItem_GstRateFromCategory(t *testing.T) {
	h := setupInventoryApp(t)

	status, resp := doJSON(t, h.app, "POST", "/inventory", map[string]interface{}{
		"item_code": "thr-01",
		"item_name": "Polyester thread",
		"category":  "thread",
		"uom":       "PCS",
		"quantity":  "100",
	})
	require.Equal(t, 201, status, "resp: %v", resp)

	var item models.InventoryItem
	require.NoError(t, h.db.Where("item_code = ?", "THR-01").First(&item).Error)
	assert.True(t, item.GstRate.Equal(dec("12")), "gst_rate = %s", item.GstRate)
}

func TestAdjustStock(t *testing.T) {
	h := setupInventoryApp(t)
	item := seedItem(t, h, "FAB-01", "50", "10")
	path := fmt.Sprintf("/inventory/%d/adjust", item.ID)

	status, resp := doJSON(t, h.app, "POST", path, map[string]interface{}{
		"direction": "in", "quantity": "25", "reason": "purchase",
	})
	require.Equal(t, 200, status, "resp: %v", resp)

	status, resp = doJSON(t, h.app, "POST", path, map[string]interface{}{
		"direction": "out", "quantity": "30", "reason": "issued to unit",
	})
	require.Equal(t, 200, status, "resp: %v", resp)

	var reloaded models.InventoryItem
	require.NoError(t, h.db.First(&reloaded, item.ID).Error)
	assert.True(t, reloaded.Quantity.Equal(dec("45")), "quantity = %s", reloaded.Quantity)

	var adjustments []models.StockAdjustment
	require.NoError(t, h.db.Where("item_id = ?", item.ID).Find(&adjustments).Error)
	assert.Len(t, adjustments, 2)
}

func TestAdjustStock_InsufficientStock(t *testing.T) {
	h := setupInventoryApp(t)
	item := seedItem(t, h, "FAB-02", "5", "10")

	status, resp := doJSON(t, h.app, "POST", fmt.Sprintf("/inventory/%d/adjust", item.ID),
		map[string]interface{}{"direction": "out", "quantity": "6", "reason": "issued"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Insufficient stock", resp["error"])

	// No movement row and no quantity change on failure
	var count int64
	h.db.Model(&models.StockAdjustment{}).Where("item_id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var reloaded models.InventoryItem
	require.NoError(t, h.db.First(&reloaded, item.ID).Error)
	assert.True(t, reloaded.Quantity.Equal(dec("5")))
}

func TestAdjustStock_RejectsZeroQuantity(t *testing.T) {
	h := setupInventoryApp(t)
	item := seedItem(t, h, "FAB-03", "5", "10")

	status, resp := doJSON(t, h.app, "POST", fmt.Sprintf("/inventory/%d/adjust", item.ID),
		map[string]interface{}{"direction": "in", "quantity": "0", "reason": "noop"})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Quantity must be greater than zero", resp["error"])
}

func TestGetLowStockItems(t *testing.T) {
	h := setupInventoryApp(t)
	seedItem(t, h, "LOW-01", "5", "10")
	seedItem(t, h, "LOW-02", "10", "10")
	seedItem(t, h, "OK-01", "50", "10")

	status, resp := doJSON(t, h.app, "GET", "/inventory/low-stock", nil)
	require.Equal(t, 200, status)

	data := resp["data"].([]interface{})
	assert.Len(t, data, 2)
}
