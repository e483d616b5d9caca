package controllers

import (
	"fmt"
	"testing"
	"time"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupOrderApp(t *testing.T) (*testHarness, models.Customer) {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	controller := NewOrderController(db)
	app.Post("/orders", controller.CreateOrder)
	app.Get("/orders", controller.GetAllOrders)
	app.Get("/orders/:id", controller.GetOrderByID)
	app.Put("/orders/:id/status", controller.UpdateOrderStatus)
	app.Put("/orders/:id", controller.UpdateOrder)
	app.Delete("/orders/:id", controller.DeleteOrder)

	customer := seedCustomer(t, db, "CUST01")
	return &testHarness{app: app, db: db}, customer
}

func TestCreateOrder_ComputesGstTotals(t *testing.T) {
	h, customer := setupOrderApp(t)

	body := map[string]interface{}{
		"customer_id": customer.ID,
		"order_date":  "2026-08-10",
		"due_date":    "2026-08-25",
		"inter_state": false,
		"items": []map[string]interface{}{
			{"description": "School uniform stitching", "quantity": "10", "rate": "100", "gst_rate": "5"},
			{"description": "Thread spools", "quantity": "2", "rate": "50.25", "gst_rate": "12"},
		},
	}

	status, resp := doJSON(t, h.app, "POST", "/orders", body)
	require.Equal(t, 201, status, "resp: %v", resp)

	var order models.Order
	require.NoError(t, h.db.Preload("Items").Where("customer_id = ?", customer.ID).First(&order).Error)

	assert.NotEmpty(t, order.OrderNo)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Len(t, order.Items, 2)
	assert.True(t, order.Subtotal.Equal(dec("1100.50")), "subtotal = %s", order.Subtotal)
	assert.True(t, order.CgstAmount.Equal(dec("31.03")), "cgst = %s", order.CgstAmount)
	assert.True(t, order.SgstAmount.Equal(dec("31.03")), "sgst = %s", order.SgstAmount)
	assert.True(t, order.IgstAmount.IsZero())
	assert.True(t, order.GrandTotal.Equal(dec("1162.56")), "grand = %s", order.GrandTotal)
}

func TestCreateOrder_InterStateUsesIgst(t *testing.T) {
	h, customer := setupOrderApp(t)

	body := map[string]interface{}{
		"customer_id": customer.ID,
		"order_date":  "2026-08-10",
		"inter_state": true,
		"items": []map[string]interface{}{
			{"description": "Export batch", "quantity": "20", "rate": "150", "gst_rate": "5"},
		},
	}

	status, resp := doJSON(t, h.app, "POST", "/orders", body)
	require.Equal(t, 201, status, "resp: %v", resp)

	var order models.Order
	require.NoError(t, h.db.Where("customer_id = ?", customer.ID).First(&order).Error)
	assert.True(t, order.CgstAmount.IsZero())
	assert.True(t, order.SgstAmount.IsZero())
	assert.True(t, order.IgstAmount.Equal(dec("150")), "igst = %s", order.IgstAmount)
}

func TestCreateOrder_RejectsBadInput(t *testing.T) {
	h, customer := setupOrderApp(t)

	// no items
	status, _ := doJSON(t, h.app, "POST", "/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"order_date":  "2026-08-10",
		"items":       []map[string]interface{}{},
	})
	assert.Equal(t, 400, status)

	// zero quantity
	status, resp := doJSON(t, h.app, "POST", "/orders", map[string]interface{}{
		"customer_id": customer.ID,
		"order_date":  "2026-08-10",
		"items": []map[string]interface{}{
			{"description": "Nothing", "quantity": "0", "rate": "100", "gst_rate": "5"},
		},
	})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Item quantity must be positive and rate non-negative", resp["error"])

	// unknown customer
	status, resp = doJSON(t, h.app, "POST", "/orders", map[string]interface{}{
		"customer_id": 9999,
		"order_date":  "2026-08-10",
		"items": []map[string]interface{}{
			{"description": "Shirts", "quantity": "1", "rate": "100", "gst_rate": "5"},
		},
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Customer not found", resp["error"])
}

func TestUpdateOrder_UnknownUnit(t *testing.T) {
	h, customer := setupOrderApp(t)
	order := seedOrder(t, h, customer.ID, models.OrderStatusPending)

	status, resp := doJSON(t, h.app, "PUT", fmt.Sprintf("/orders/%d", order.ID), map[string]interface{}{
		"customer_id": customer.ID,
		"unit_id":     9999,
		"order_date":  "2026-08-10",
		"items": []map[string]interface{}{
			{"description": "Uniform stitching", "quantity": "5", "rate": "100", "gst_rate": "5"},
		},
	})
	assert.Equal(t, 404, status)
	assert.Equal(t, "Production unit not found", resp["error"])
}

func seedOrder(t *testing.T, h *testHarness, customerID uint, status string) models.Order {
	t.Helper()
	order := models.Order{
		OrderNo:    fmt.Sprintf("SO-TEST-%d-%s", time.Now().UnixNano(), status),
		CustomerID: customerID,
		OrderDate:  time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Status:     status,
	}
	require.NoError(t, h.db.Create(&order).Error)
	return order
}

func TestUpdateOrderStatus_Lifecycle(t *testing.T) {
	h, customer := setupOrderApp(t)
	order := seedOrder(t, h, customer.ID, models.OrderStatusPending)
	path := fmt.Sprintf("/orders/%d/status", order.ID)

	for _, next := range []string{
		models.OrderStatusInProgress,
		models.OrderStatusCompleted,
		models.OrderStatusDelivered,
	} {
		status, resp := doJSON(t, h.app, "PUT", path, map[string]interface{}{"status": next})
		require.Equal(t, 200, status, "to %s: %v", next, resp)
	}

	var reloaded models.Order
	require.NoError(t, h.db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, reloaded.Status)
}

func TestUpdateOrderStatus_InvalidTransition(t *testing.T) {
	h, customer := setupOrderApp(t)
	order := seedOrder(t, h, customer.ID, models.OrderStatusPending)
	path := fmt.Sprintf("/orders/%d/status", order.ID)

	status, resp := doJSON(t, h.app, "PUT", path, map[string]interface{}{"status": models.OrderStatusDelivered})
	assert.Equal(t, 400, status)
	assert.Equal(t, "Cannot change order status from pending to delivered", resp["error"])

	// Cancelled is terminal
	cancelled := seedOrder(t, h, customer.ID, models.OrderStatusCancelled)
	status, _ = doJSON(t, h.app, "PUT", fmt.Sprintf("/orders/%d/status", cancelled.ID),
		map[string]interface{}{"status": models.OrderStatusPending})
	assert.Equal(t, 400, status)
}

func TestDeleteOrder_DeliveredBlocked(t *testing.T) {
	h, customer := setupOrderApp(t)
	delivered := seedOrder(t, h, customer.ID, models.OrderStatusDelivered)

	status, resp := doJSON(t, h.app, "DELETE", fmt.Sprintf("/orders/%d", delivered.ID), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Delivered orders cannot be deleted", resp["error"])

	pending := seedOrder(t, h, customer.ID, models.OrderStatusPending)
	status, _ = doJSON(t, h.app, "DELETE", fmt.Sprintf("/orders/%d", pending.ID), nil)
	assert.Equal(t, 200, status)
}
