package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"stitch-erp/controllers/idgen"
	"stitch-erp/database"
	"stitch-erp/models"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	idgen.Init()
	m.Run()
}

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

type testHarness struct {
	app *fiber.App
	db  *gorm.DB
}

// newTestApp builds a fiber app with the auth locals the handlers expect
func newTestApp() *fiber.App {
	app := fiber.New()
	app.Use(func(ctx *fiber.Ctx) error {
		ctx.Locals("userID", float64(1))
		return ctx.Next()
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func seedUnit(t *testing.T, db *gorm.DB, code string) models.ProductionUnit {
	t.Helper()
	unit := models.ProductionUnit{UnitCode: code, UnitName: code + " Unit", Status: "active"}
	require.NoError(t, db.Create(&unit).Error)
	return unit
}

func seedCustomer(t *testing.T, db *gorm.DB, code string) models.Customer {
	t.Helper()
	customer := models.Customer{CustomerCode: code, CustomerName: code + " Garments", CustState: "Tamil Nadu"}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func dec(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}
