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

type RevenueController struct {
	DB *gorm.DB
}

func NewRevenueController(db *gorm.DB) *RevenueController {
	return &RevenueController{DB: db}
}

type revenueInput struct {
	UnitID       uint            `json:"unit_id" validate:"required"`
	Source       string          `json:"source" validate:"required"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	RevenueDate  string          `json:"revenue_date" validate:"required"`
	ReceivedFrom string          `json:"received_from"`
	PaymentMode  string          `json:"payment_mode"`
}

func (c *RevenueController) GetAllRevenues(ctx *fiber.Ctx) error {
	var revenues []models.Revenue
	query := c.DB.Order("revenue_date DESC")

	if unitID := ctx.QueryInt("unit_id", 0); unitID > 0 {
		query = query.Where("unit_id = ?", unitID)
	}
	if source := ctx.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}

	if err := query.Find(&revenues).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Revenues found", "data": revenues})
}

func (c *RevenueController) GetRevenueByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Revenue
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Revenue not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Revenue found", "data": result})
}

func (c *RevenueController) CreateRevenue(ctx *fiber.Ctx) error {
	var input revenueInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be greater than zero"})
	}

	revenueDate, err := time.Parse("2006-01-02", input.RevenueDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid revenue_date, expected YYYY-MM-DD"})
	}

	var unit models.ProductionUnit
	if err := c.DB.First(&unit, input.UnitID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
	}

	revenue := models.Revenue{
		UnitID:       input.UnitID,
		Source:       input.Source,
		Description:  input.Description,
		Amount:       input.Amount,
		RevenueDate:  revenueDate,
		ReceivedFrom: input.ReceivedFrom,
		PaymentMode:  input.PaymentMode,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}

	if err := c.DB.Create(&revenue).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Revenue created successfully", "data": revenue})
}

func (c *RevenueController) UpdateRevenue(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input revenueInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Amount must be greater than zero"})
	}

	revenueDate, err := time.Parse("2006-01-02", input.RevenueDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid revenue_date, expected YYYY-MM-DD"})
	}

	var unit models.ProductionUnit
	if err := c.DB.First(&unit, input.UnitID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
	}

	var revenue models.Revenue
	if err := c.DB.First(&revenue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Revenue not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.Revenue{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"unit_id":       input.UnitID,
			"source":        input.Source,
			"description":   input.Description,
			"amount":        input.Amount,
			"revenue_date":  revenueDate,
			"received_from": input.ReceivedFrom,
			"payment_mode":  input.PaymentMode,
			"updated_by":    int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Revenue updated successfully", "data": input})
}

func (c *RevenueController) DeleteRevenue(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var revenue models.Revenue
	if err := c.DB.First(&revenue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Revenue not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	revenue.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&revenue).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&revenue).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Revenue deleted successfully", "data": revenue})
}
