package controllers

import (
	"errors"
	"fmt"
	"time"

	"stitch-erp/controllers/idgen"
	"stitch-erp/models"
	"stitch-erp/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

type orderItemInput struct {
	Description string          `json:"description" validate:"required"`
	HsnCode     string          `json:"hsn_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	GstRate     decimal.Decimal `json:"gst_rate"`
}

type orderInput struct {
	CustomerID uint             `json:"customer_id" validate:"required"`
	UnitID     *uint            `json:"unit_id"`
	OrderDate  string           `json:"order_date" validate:"required"`
	DueDate    string           `json:"due_date"`
	InterState bool             `json:"inter_state"`
	Notes      string           `json:"notes"`
	Items      []orderItemInput `json:"items" validate:"required,min=1,dive"`
}

func (c *OrderController) GetAllOrders(ctx *fiber.Ctx) error {
	var orders []models.Order
	query := c.DB.Preload("Items").Order("order_date DESC")

	if status := ctx.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := ctx.QueryInt("customer_id", 0); customerID > 0 {
		query = query.Where("customer_id = ?", customerID)
	}

	if err := query.Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Orders found", "data": orders})
}

func (c *OrderController) GetOrderByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Order
	if err := c.DB.Preload("Items").First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order found", "data": result})
}

func (c *OrderController) CreateOrder(ctx *fiber.Ctx) error {
	var input orderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	orderDate, err := time.Parse("2006-01-02", input.OrderDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order_date, expected YYYY-MM-DD"})
	}

	var dueDate *time.Time
	if input.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid due_date, expected YYYY-MM-DD"})
		}
		dueDate = &parsed
	}

	var customer models.Customer
	if err := c.DB.First(&customer, input.CustomerID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	if input.UnitID != nil {
		var unit models.ProductionUnit
		if err := c.DB.First(&unit, *input.UnitID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
		}
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		if it.Quantity.LessThanOrEqual(decimal.Zero) || it.Rate.IsNegative() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item quantity must be positive and rate non-negative"})
		}
		items = append(items, models.OrderItem{
			Description: it.Description,
			HsnCode:     it.HsnCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			GstRate:     it.GstRate,
		})
	}

	totals := services.ComputeOrderTotals(items, input.InterState)

	order := models.Order{
		OrderNo:    idgen.GenerateOrderNo(),
		CustomerID: input.CustomerID,
		UnitID:     input.UnitID,
		OrderDate:  orderDate,
		DueDate:    dueDate,
		Status:     models.OrderStatusPending,
		InterState: input.InterState,
		Subtotal:   totals.Subtotal,
		CgstAmount: totals.CgstAmount,
		SgstAmount: totals.SgstAmount,
		IgstAmount: totals.IgstAmount,
		GrandTotal: totals.GrandTotal,
		Notes:      input.Notes,
		Items:      items,
		CreatedBy:  int(ctx.Locals("userID").(float64)),
	}

	// Header and lines land together or not at all
	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Order created successfully", "data": order})
}

func (c *OrderController) UpdateOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input orderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var order models.Order
	if err := c.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if order.Status == models.OrderStatusDelivered || order.Status == models.OrderStatusCancelled {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order can no longer be edited"})
	}

	orderDate, err := time.Parse("2006-01-02", input.OrderDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid order_date, expected YYYY-MM-DD"})
	}

	var dueDate *time.Time
	if input.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.DueDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid due_date, expected YYYY-MM-DD"})
		}
		dueDate = &parsed
	}

	var customer models.Customer
	if err := c.DB.First(&customer, input.CustomerID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Customer not found"})
	}

	if input.UnitID != nil {
		var unit models.ProductionUnit
		if err := c.DB.First(&unit, *input.UnitID).Error; err != nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
		}
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, it := range input.Items {
		if it.Quantity.LessThanOrEqual(decimal.Zero) || it.Rate.IsNegative() {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Item quantity must be positive and rate non-negative"})
		}
		items = append(items, models.OrderItem{
			OrderID:     order.ID,
			Description: it.Description,
			HsnCode:     it.HsnCode,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			GstRate:     it.GstRate,
		})
	}

	totals := services.ComputeOrderTotals(items, input.InterState)
	userID := int(ctx.Locals("userID").(float64))

	tx := c.DB.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Replace the lines wholesale, then rewrite the header totals
	if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Model(&models.Order{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"customer_id": input.CustomerID,
			"unit_id":     input.UnitID,
			"order_date":  orderDate,
			"due_date":    dueDate,
			"inter_state": input.InterState,
			"subtotal":    totals.Subtotal,
			"cgst_amount": totals.CgstAmount,
			"sgst_amount": totals.SgstAmount,
			"igst_amount": totals.IgstAmount,
			"grand_total": totals.GrandTotal,
			"notes":       input.Notes,
			"updated_by":  userID,
		}).Error; err != nil {
		tx.Rollback()
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := tx.Commit().Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to commit transaction"})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order updated successfully", "data": input})
}

// UpdateOrderStatus walks the order through its lifecycle
func (c *OrderController) UpdateOrderStatus(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input struct {
		Status string `json:"status" validate:"required,oneof=pending in_progress completed delivered cancelled"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var order models.Order
	if err := c.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !models.IsValidOrderTransition(order.Status, input.Status) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Cannot change order status from %s to %s", order.Status, input.Status),
		})
	}

	if err := c.DB.Model(&models.Order{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     input.Status,
			"updated_by": int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Order status updated successfully",
		"data":    fiber.Map{"id": id, "status": input.Status},
	})
}

func (c *OrderController) DeleteOrder(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var order models.Order
	if err := c.DB.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Order not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if order.Status == models.OrderStatusDelivered {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Delivered orders cannot be deleted"})
	}

	order.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&order).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Order deleted successfully", "data": order})
}

func (c *OrderController) ExportOrders(ctx *fiber.Ctx) error {
	var orders []models.Order
	if err := c.DB.Order("order_date DESC").Find(&orders).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch orders",
			"error":   err.Error(),
		})
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	headers := []string{"ORDER_NO", "CUSTOMER_ID", "ORDER_DATE", "STATUS", "SUBTOTAL", "CGST", "SGST", "IGST", "GRAND_TOTAL"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, o := range orders {
		values := []interface{}{
			o.OrderNo, o.CustomerID, o.OrderDate.Format("2006-01-02"), o.Status,
			o.Subtotal.String(), o.CgstAmount.String(), o.SgstAmount.String(),
			o.IgstAmount.String(), o.GrandTotal.String(),
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
	ctx.Set("Content-Disposition", `attachment; filename="orders.xlsx"`)
	return ctx.Send(buf.Bytes())
}
