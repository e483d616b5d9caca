package controllers

import (
	"fmt"
	"testing"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupUserApp(t *testing.T) *testHarness {
	t.Helper()

	db := newTestDB(t)
	app := newTestApp()
	controller := NewUserController(db)
	app.Post("/users", controller.CreateUser)
	app.Get("/users", controller.GetAllUsers)
	app.Delete("/users/:id", controller.DeleteUser)

	return &testHarness{app: app, db: db}
}

func TestCreateUser_HashesPassword(t *testing.T) {
	h := setupUserApp(t)

	status, resp := doJSON(t, h.app, "POST", "/users", map[string]interface{}{
		"username": "supervisor1",
		"name":     "Unit Supervisor",
		"email":    "supervisor@example.com",
		"password": "secret123",
		"role":     "supervisor",
	})
	require.Equal(t, 201, status, "resp: %v", resp)

	var user models.User
	require.NoError(t, h.db.Where("username = ?", "supervisor1").First(&user).Error)
	assert.NotEqual(t, "secret123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret123")))
}

func TestCreateUser_Rejections(t *testing.T) {
	h := setupUserApp(t)

	// bad role
	status, _ := doJSON(t, h.app, "POST", "/users", map[string]interface{}{
		"username": "x1", "name": "Someone", "email": "x@example.com",
		"password": "secret123", "role": "owner",
	})
	assert.Equal(t, 400, status)

	// duplicate username
	body := map[string]interface{}{
		"username": "dup", "name": "Duplicate", "email": "dup@example.com",
		"password": "secret123", "role": "accountant",
	}
	status, _ = doJSON(t, h.app, "POST", "/users", body)
	require.Equal(t, 201, status)

	body["email"] = "other@example.com"
	status, resp := doJSON(t, h.app, "POST", "/users", body)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Username or email already in use", resp["error"])
}

func TestGetAllUsers_StripsPasswords(t *testing.T) {
	h := setupUserApp(t)
	require.NoError(t, h.db.Create(&models.User{
		Username: "admin", Email: "admin@example.com", Password: "hash", Role: "admin",
	}).Error)

	status, resp := doJSON(t, h.app, "GET", "/users", nil)
	require.Equal(t, 200, status)

	for _, raw := range resp["data"].([]interface{}) {
		user := raw.(map[string]interface{})
		assert.Empty(t, user["password"])
	}
}

func TestDeleteUser_OwnAccountBlocked(t *testing.T) {
	h := setupUserApp(t)
	require.NoError(t, h.db.Create(&models.User{
		Username: "admin", Email: "admin@example.com", Password: "hash", Role: "admin",
	}).Error)

	// the test app authenticates as user 1
	status, resp := doJSON(t, h.app, "DELETE", "/users/1", nil)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Cannot delete your own account", resp["error"])

	other := models.User{Username: "other", Email: "other@example.com", Password: "hash", Role: "accountant"}
	require.NoError(t, h.db.Create(&other).Error)

	status, _ = doJSON(t, h.app, "DELETE", fmt.Sprintf("/users/%d", other.ID), nil)
	assert.Equal(t, 200, status)
}
