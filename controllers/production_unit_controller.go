package controllers

import (
	"errors"

	"stitch-erp/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductionUnitController struct {
	DB *gorm.DB
}

func NewProductionUnitController(db *gorm.DB) *ProductionUnitController {
	return &ProductionUnitController{DB: db}
}

func (c *ProductionUnitController) GetAllUnits(ctx *fiber.Ctx) error {
	var units []models.ProductionUnit
	if err := c.DB.Find(&units).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production units found", "data": units})
}

func (c *ProductionUnitController) GetUnitByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.ProductionUnit
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production unit found", "data": result})
}

// GetUnitSummary returns cost-to-date and revenue-to-date for one unit
func (c *ProductionUnitController) GetUnitSummary(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var unit models.ProductionUnit
	if err := c.DB.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var totals struct {
		Expenses    decimal.Decimal `json:"expenses"`
		Salaries    decimal.Decimal `json:"salaries"`
		Maintenance decimal.Decimal `json:"maintenance"`
		Revenues    decimal.Decimal `json:"revenues"`
	}

	sql := `SELECT
		(SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE unit_id = ? AND deleted_at IS NULL) AS expenses,
		(SELECT COALESCE(SUM(net_amount), 0) FROM salary_payments WHERE unit_id = ? AND deleted_at IS NULL) AS salaries,
		(SELECT COALESCE(SUM(cost), 0) FROM maintenance_records WHERE unit_id = ? AND deleted_at IS NULL) AS maintenance,
		(SELECT COALESCE(SUM(amount), 0) FROM revenues WHERE unit_id = ? AND deleted_at IS NULL) AS revenues`

	if err := c.DB.Raw(sql, id, id, id, id).Scan(&totals).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	costToDate := totals.Expenses.Add(totals.Salaries).Add(totals.Maintenance)

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Production unit summary found",
		"data": fiber.Map{
			"unit":            unit,
			"cost_to_date":    costToDate,
			"revenue_to_date": totals.Revenues,
			"expenses":        totals.Expenses,
			"salaries":        totals.Salaries,
			"maintenance":     totals.Maintenance,
		},
	})
}

func (c *ProductionUnitController) CreateUnit(ctx *fiber.Ctx) error {
	var unitInput struct {
		UnitCode   string `json:"unit_code" validate:"required,min=2"`
		UnitName   string `json:"unit_name" validate:"required,min=3"`
		Location   string `json:"location"`
		Supervisor string `json:"supervisor"`
		Notes      string `json:"notes"`
	}

	if err := ctx.BodyParser(&unitInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(unitInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	unit := models.ProductionUnit{
		UnitCode:   unitInput.UnitCode,
		UnitName:   unitInput.UnitName,
		Location:   unitInput.Location,
		Supervisor: unitInput.Supervisor,
		Status:     "active",
		Notes:      unitInput.Notes,
		CreatedBy:  int(ctx.Locals("userID").(float64)),
	}

	var existing models.ProductionUnit
	if err := c.DB.Where("unit_code = ?", unit.UnitCode).First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unit code already exists"})
	}

	if err := c.DB.Create(&unit).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Production unit created successfully", "data": unit})
}

func (c *ProductionUnitController) UpdateUnit(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var unitInput struct {
		UnitName   string `json:"unit_name" validate:"required,min=3"`
		Location   string `json:"location"`
		Supervisor string `json:"supervisor"`
		Status     string `json:"status" validate:"omitempty,oneof=active closed"`
		Notes      string `json:"notes"`
	}

	if err := ctx.BodyParser(&unitInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(unitInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var unit models.ProductionUnit
	if err := c.DB.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.ProductionUnit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"unit_name":  unitInput.UnitName,
			"location":   unitInput.Location,
			"supervisor": unitInput.Supervisor,
			"status":     unitInput.Status,
			"notes":      unitInput.Notes,
			"updated_by": int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production unit updated successfully", "data": unitInput})
}

func (c *ProductionUnitController) DeleteUnit(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var unit models.ProductionUnit
	if err := c.DB.First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// A unit with booked transactions cannot be removed
	var linked int64
	c.DB.Model(&models.Expense{}).Where("unit_id = ?", id).Count(&linked)
	if linked == 0 {
		c.DB.Model(&models.Revenue{}).Where("unit_id = ?", id).Count(&linked)
	}
	if linked == 0 {
		c.DB.Model(&models.Order{}).Where("unit_id = ?", id).Count(&linked)
	}
	if linked == 0 {
		c.DB.Model(&models.SalaryPayment{}).Where("unit_id = ?", id).Count(&linked)
	}
	if linked > 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Production unit has linked records and cannot be deleted",
		})
	}

	unit.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&unit).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&unit).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Production unit deleted successfully", "data": unit})
}
