package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"stitch-erp/models"
	"stitch-erp/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{DB: db}
}

type inventoryInput struct {
	ItemCode     string          `json:"item_code" validate:"required,min=2"`
	ItemName     string          `json:"item_name" validate:"required,min=2"`
	Category     string          `json:"category"`
	Uom          string          `json:"uom"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderLevel decimal.Decimal `json:"reorder_level"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	HsnCode      string          `json:"hsn_code"`
	GstRate      decimal.Decimal `json:"gst_rate"`
}

func (c *InventoryController) GetAllItems(ctx *fiber.Ctx) error {
	var items []models.InventoryItem
	query := c.DB.Order("item_code ASC")

	if category := ctx.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inventory items found", "data": items})
}

func (c *InventoryController) GetItemByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.InventoryItem
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inventory item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inventory item found", "data": result})
}

// GetLowStockItems lists items at or below their reorder level
func (c *InventoryController) GetLowStockItems(ctx *fiber.Ctx) error {
	var items []models.InventoryItem
	if err := c.DB.Where("quantity <= reorder_level").Order("item_code ASC").Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Low stock items found", "data": items})
}

func (c *InventoryController) CreateItem(ctx *fiber.Ctx) error {
	var input inventoryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	gstRate := input.GstRate
	if gstRate.IsZero() && input.Category != "" {
		gstRate = utils.RateForCategory(input.Category)
	}

	item := models.InventoryItem{
		ItemCode:     strings.ToUpper(strings.TrimSpace(input.ItemCode)),
		ItemName:     input.ItemName,
		Category:     input.Category,
		Uom:          input.Uom,
		Quantity:     input.Quantity,
		ReorderLevel: input.ReorderLevel,
		UnitPrice:    input.UnitPrice,
		HsnCode:      input.HsnCode,
		GstRate:      gstRate,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}

	var existing models.InventoryItem
	if err := c.DB.Where("item_code = ?", item.ItemCode).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item code already exists"})
	}

	if err := c.DB.Create(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Inventory item created successfully", "data": item})
}

func (c *InventoryController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input inventoryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"item_name":     input.ItemName,
			"category":      input.Category,
			"uom":           input.Uom,
			"reorder_level": input.ReorderLevel,
			"unit_price":    input.UnitPrice,
			"hsn_code":      input.HsnCode,
			"gst_rate":      input.GstRate,
			"updated_by":    int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inventory item updated successfully", "data": input})
}

func (c *InventoryController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var item models.InventoryItem
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inventory item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	item.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Inventory item deleted successfully", "data": item})
}

// AdjustStock moves the on-hand quantity up or down, leaving a movement row
func (c *InventoryController) AdjustStock(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input struct {
		Direction string          `json:"direction" validate:"required,oneof=in out"`
		Quantity  decimal.Decimal `json:"quantity"`
		Reason    string          `json:"reason" validate:"required"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Quantity.LessThanOrEqual(decimal.Zero) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantity must be greater than zero"})
	}

	var item models.InventoryItem
	if err := c.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Inventory item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	newQty := item.Quantity
	if input.Direction == "in" {
		newQty = newQty.Add(input.Quantity)
	} else {
		newQty = newQty.Sub(input.Quantity)
		if newQty.IsNegative() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Insufficient stock"})
		}
	}

	userID := int(ctx.Locals("userID").(float64))

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   newQty,
			"updated_by": userID,
		}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	adjustment := models.StockAdjustment{
		ItemID:         uint(id),
		Direction:      input.Direction,
		Quantity:       input.Quantity,
		QuantityAfter:  newQty,
		Reason:         input.Reason,
		AdjustmentDate: time.Now(),
		CreatedBy:      userID,
	}
	if err := tx.Create(&adjustment).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock adjusted successfully", "data": adjustment})
}

// GetStockHistory lists the movement trail for one item
func (c *InventoryController) GetStockHistory(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var adjustments []models.StockAdjustment
	if err := c.DB.Where("item_id = ?", id).Order("created_at DESC").Find(&adjustments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Stock history found", "data": adjustments})
}

// ============================================================================
// Begin upload inventory from excel file
// ============================================================================

func (c *InventoryController) CreateItemFromExcel(ctx *fiber.Ctx) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "File is required",
		})
	}

	if !strings.HasSuffix(strings.ToLower(file.Filename), ".xlsx") &&
		!strings.HasSuffix(strings.ToLower(file.Filename), ".xls") {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Only Excel files (.xlsx, .xls) are allowed",
		})
	}

	fileContent, err := file.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to open file",
		})
	}
	defer fileContent.Close()

	f, err := excelize.OpenReader(fileContent)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read Excel file",
		})
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "No sheets found in Excel file",
		})
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to read rows",
		})
	}

	if len(rows) < 2 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Excel file must contain header and at least one data row",
		})
	}

	result := UploadResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}

	userID := int(ctx.Locals("userID").(float64))

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		if len(row) < 9 {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Insufficient columns (expected 9)", rowNum))
			continue
		}

		itemCode := strings.ToUpper(strings.TrimSpace(row[0]))
		itemName := strings.TrimSpace(row[1])
		category := strings.ToLower(strings.TrimSpace(row[2]))
		uom := strings.ToUpper(strings.TrimSpace(row[3]))

		if itemCode == "" || itemName == "" {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: ITEM_CODE and ITEM_NAME are required", rowNum))
			continue
		}

		quantity, err := decimal.NewFromString(strings.TrimSpace(row[4]))
		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid quantity '%s'", rowNum, row[4]))
			continue
		}

		reorderLevel, err := decimal.NewFromString(strings.TrimSpace(row[5]))
		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid reorder level '%s'", rowNum, row[5]))
			continue
		}

		unitPrice, err := decimal.NewFromString(strings.TrimSpace(row[6]))
		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Invalid unit price '%s'", rowNum, row[6]))
			continue
		}

		hsnCode := strings.TrimSpace(row[7])

		gstRate, err := decimal.NewFromString(strings.TrimSpace(row[8]))
		if err != nil {
			gstRate = utils.RateForCategory(category)
		}

		var existingItem models.InventoryItem
		if err := tx.Where("item_code = ?", itemCode).First(&existingItem).Error; err == nil {
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, itemCode)
			continue
		}

		item := models.InventoryItem{
			ItemCode:     itemCode,
			ItemName:     itemName,
			Category:     category,
			Uom:          uom,
			Quantity:     quantity,
			ReorderLevel: reorderLevel,
			UnitPrice:    unitPrice,
			HsnCode:      hsnCode,
			GstRate:      gstRate,
			CreatedBy:    userID,
		}

		if err := tx.Create(&item).Error; err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages,
				fmt.Sprintf("Row %d: Failed to create item - %s", rowNum, err.Error()))
			continue
		}

		result.SuccessCount++
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to commit transaction",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Upload completed: %d success, %d skipped, %d errors",
			result.SuccessCount, result.SkippedCount, result.ErrorCount),
		"data": result,
	})
}

// ============================================================================
// End upload inventory from excel file
// ============================================================================

func (c *InventoryController) ExportItems(ctx *fiber.Ctx) error {
	var items []models.InventoryItem
	if err := c.DB.Order("item_code ASC").Find(&items).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch inventory items",
			"error":   err.Error(),
		})
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"ITEM_CODE", "ITEM_NAME", "CATEGORY", "UOM", "QUANTITY", "REORDER_LEVEL", "UNIT_PRICE", "HSN_CODE", "GST_RATE"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, item := range items {
		values := []interface{}{
			item.ItemCode, item.ItemName, item.Category, item.Uom,
			item.Quantity.String(), item.ReorderLevel.String(),
			item.UnitPrice.String(), item.HsnCode, item.GstRate.String(),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to build workbook",
		})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	return ctx.Send(buf.Bytes())
}
