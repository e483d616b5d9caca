package controllers

import (
	"errors"
	"time"

	"stitch-erp/models"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MaintenanceController struct {
	DB *gorm.DB
}

func NewMaintenanceController(db *gorm.DB) *MaintenanceController {
	return &MaintenanceController{DB: db}
}

type maintenanceInput struct {
	UnitID          uint            `json:"unit_id" validate:"required"`
	MachineName     string          `json:"machine_name" validate:"required,min=2"`
	Description     string          `json:"description"`
	Cost            decimal.Decimal `json:"cost"`
	MaintenanceDate string          `json:"maintenance_date" validate:"required"`
	PerformedBy     string          `json:"performed_by"`
	NextDueDate     string          `json:"next_due_date"`
}

func (c *MaintenanceController) GetAllRecords(ctx *fiber.Ctx) error {
	var records []models.MaintenanceRecord
	query := c.DB.Order("maintenance_date DESC")

	if unitID := ctx.QueryInt("unit_id", 0); unitID > 0 {
		query = query.Where("unit_id = ?", unitID)
	}

	if err := query.Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Maintenance records found", "data": records})
}

func (c *MaintenanceController) GetRecordByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.MaintenanceRecord
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Maintenance record found", "data": result})
}

// GetUpcoming lists records whose next service falls within the given days
func (c *MaintenanceController) GetUpcoming(ctx *fiber.Ctx) error {
	days := ctx.QueryInt("days", 30)
	if days <= 0 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "days must be positive"})
	}

	now := time.Now()
	cutoff := now.AddDate(0, 0, days)

	var records []models.MaintenanceRecord
	if err := c.DB.Where("next_due_date IS NOT NULL AND next_due_date BETWEEN ? AND ?", now, cutoff).
		Order("next_due_date ASC").Find(&records).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Upcoming maintenance found", "data": records})
}

func (c *MaintenanceController) CreateRecord(ctx *fiber.Ctx) error {
	var input maintenanceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	maintenanceDate, err := time.Parse("2006-01-02", input.MaintenanceDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance_date, expected YYYY-MM-DD"})
	}

	var nextDueDate *time.Time
	if input.NextDueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.NextDueDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid next_due_date, expected YYYY-MM-DD"})
		}
		nextDueDate = &parsed
	}

	var unit models.ProductionUnit
	if err := c.DB.First(&unit, input.UnitID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
	}

	record := models.MaintenanceRecord{
		UnitID:          input.UnitID,
		MachineName:     input.MachineName,
		Description:     input.Description,
		Cost:            input.Cost,
		MaintenanceDate: maintenanceDate,
		PerformedBy:     input.PerformedBy,
		NextDueDate:     nextDueDate,
		CreatedBy:       int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&record).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Maintenance record created successfully", "data": record})
}

func (c *MaintenanceController) UpdateRecord(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input maintenanceInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	maintenanceDate, err := time.Parse("2006-01-02", input.MaintenanceDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid maintenance_date, expected YYYY-MM-DD"})
	}

	var nextDueDate *time.Time
	if input.NextDueDate != "" {
		parsed, err := time.Parse("2006-01-02", input.NextDueDate)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid next_due_date, expected YYYY-MM-DD"})
		}
		nextDueDate = &parsed
	}

	var record models.MaintenanceRecord
	if err := c.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.MaintenanceRecord{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"unit_id":          input.UnitID,
			"machine_name":     input.MachineName,
			"description":      input.Description,
			"cost":             input.Cost,
			"maintenance_date": maintenanceDate,
			"performed_by":     input.PerformedBy,
			"next_due_date":    nextDueDate,
			"updated_by":       int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Maintenance record updated successfully", "data": input})
}

func (c *MaintenanceController) DeleteRecord(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var record models.MaintenanceRecord
	if err := c.DB.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Maintenance record not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	record.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&record).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&record).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Maintenance record deleted successfully", "data": record})
}
