package controllers

import (
	"fmt"
	"testing"
	"time"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCustomerApp(t *testing.T) *testHarness {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	controller := NewCustomerController(db)
	app.Post("/customers", controller.CreateCustomer)
	app.Get("/customers", controller.GetAllCustomers)
	app.Get("/customers/:id", controller.GetCustomerByID)
	app.Delete("/customers/:id", controller.DeleteCustomer)

	return &testHarness{app: app, db: db}
}

func TestCreateCustomer(t *testing.T) {
	h := setupCustomerApp(t)

	status, resp := doJSON(t, h.app, "POST", "/customers", map[string]interface{}{
		"customer_code": "abc01",
		"customer_name": "ABC Garments",
		"cust_city":     "Tiruppur",
		"cust_state":    "Tamil Nadu",
		"gstin":         "33aaaaa0000a1z5",
	})
	require.Equal(t, 201, status, "resp: %v", resp)

	var customer models.Customer
	require.NoError(t, h.db.Where("customer_code = ?", "ABC01").First(&customer).Error)
	assert.Equal(t, "33AAAAA0000A1Z5", customer.Gstin)
}

func TestCreateCustomer_DuplicateCode(t *testing.T) {
	h := setupCustomerApp(t)

	body := map[string]interface{}{
		"customer_code": "DUP01",
		"customer_name": "First Garments",
	}
	status, _ := doJSON(t, h.app, "POST", "/customers", body)
	require.Equal(t, 201, status)

	body["customer_name"] = "Second Garments"
	status, resp := doJSON(t, h.app, "POST", "/customers", body)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Customer code already exists", resp["error"])
}

func TestCreateCustomer_ReuseCodeAfterDelete(t *testing.T) {
	h := setupCustomerApp(t)

	body := map[string]interface{}{
		"customer_code": "RUC01",
		"customer_name": "Reused Code Garments",
	}
	status, _ := doJSON(t, h.app, "POST", "/customers", body)
	require.Equal(t, 201, status)

	var customer models.Customer
	require.NoError(t, h.db.Where("customer_code = ?", "RUC01").First(&customer).Error)

	status, _ = doJSON(t, h.app, "DELETE", fmt.Sprintf("/customers/%d", customer.ID), nil)
	require.Equal(t, 200, status)

	// A deleted customer's code is free again
	status, resp := doJSON(t, h.app, "POST", "/customers", body)
	assert.Equal(t, 201, status, "resp: %v", resp)
}

func TestCreateCustomer_InvalidGstin(t *testing.T) {
	h := setupCustomerApp(t)

	status, _ := doJSON(t, h.app, "POST", "/customers", map[string]interface{}{
		"customer_code": "BAD01",
		"customer_name": "Bad GSTIN Traders",
		"gstin":         "too-short",
	})
	assert.Equal(t, 400, status)
}

func TestDeleteCustomer_WithOrdersBlocked(t *testing.T) {
	h := setupCustomerApp(t)
	customer := seedCustomer(t, h.db, "ORD01")

	order := models.Order{
		OrderNo:    fmt.Sprintf("SO-TEST-%d", time.Now().UnixNano()),
		CustomerID: customer.ID,
		OrderDate:  time.Now(),
		Status:     models.OrderStatusPending,
	}
	require.NoError(t, h.db.Create(&order).Error)

	status, resp := doJSON(t, h.app, "DELETE", fmt.Sprintf("/customers/%d", customer.ID), nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Customer has existing orders and cannot be deleted", resp["error"])

	// Without orders the delete goes through
	clean := seedCustomer(t, h.db, "CLN01")
	status, _ = doJSON(t, h.app, "DELETE", fmt.Sprintf("/customers/%d", clean.ID), nil)
	assert.Equal(t, 200, status)

	var found models.Customer
	err := h.db.Where("customer_code = ?", "CLN01").First(&found).Error
	assert.Error(t, err)
}
