package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"stitch-erp/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func uploadFile(t *testing.T, h *testHarness, path, filename string, content *bytes.Buffer) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return resp.StatusCode, parsed
}

func TestCreateCustomerFromExcel(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp()
	controller := NewCustomerController(db)
	app.Post("/customers/upload-excel", controller.CreateCustomerFromExcel)
	h := &testHarness{app: app, db: db}

	seedCustomer(t, db, "EXIST1")

	workbook := buildWorkbook(t, [][]interface{}{
		{"CUSTOMER_CODE", "CUSTOMER_NAME", "ADDR1", "ADDR2", "CITY", "STATE", "PHONE", "EMAIL", "GSTIN"},
		{"NEW01", "New Garments", "12 Mill Rd", "", "Tiruppur", "Tamil Nadu", "9800000001", "new@example.com", "33AAAAA0000A1Z5"},
		{"EXIST1", "Already There", "", "", "", "", "", "", ""},
		{"BAD01", "Bad Email Traders", "", "", "", "", "", "not-an-email", ""},
		{"BAD02", "Bad GSTIN Traders", "", "", "", "", "", "", "SHORT"},
		{"", "Missing code"},
	})

	status, resp := uploadFile(t, h, "/customers/upload-excel", "customers.xlsx", workbook)
	require.Equal(t, 200, status, "resp: %v", resp)

	data := resp["data"].(map[string]interface{})
	assert.Equal(t, float64(1), data["success_count"], "data: %v", data)
	assert.Equal(t, float64(1), data["skipped_count"])
	assert.Equal(t, float64(2), data["error_count"])

	var created models.Customer
	require.NoError(t, db.Where("customer_code = ?", "NEW01").First(&created).Error)
	assert.Equal(t, "New Garments", created.CustomerName)

	var badCount int64
	db.Model(&models.Customer{}).Where("customer_code LIKE ?", "BAD%").Count(&badCount)
	assert.Equal(t, int64(0), badCount)

	errs := data["error_messages"].([]interface{})
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "Invalid email format")
	assert.Contains(t, errs[1], "Invalid GSTIN")
}

func TestCreateCustomerFromExcel_RejectsNonExcel(t *testing.T) {
	db := newTestDB(t)
	app := newTestApp()
	controller := NewCustomerController(db)
	app.Post("/customers/upload-excel", controller.CreateCustomerFromExcel)
	h := &testHarness{app: app, db: db}

	status, resp := uploadFile(t, h, "/customers/upload-excel", "customers.csv", bytes.NewBufferString("a,b,c"))
	assert.Equal(t, 400, status)
	assert.Equal(t, "Only Excel files (.xlsx, .xls) are allowed", resp["error"])
}
