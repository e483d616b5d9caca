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

type SalaryController struct {
	DB *gorm.DB
}

func NewSalaryController(db *gorm.DB) *SalaryController {
	return &SalaryController{DB: db}
}

type salaryInput struct {
	UnitID       uint            `json:"unit_id" validate:"required"`
	EmployeeName string          `json:"employee_name" validate:"required,min=2"`
	EmployeeRole string          `json:"employee_role"`
	PeriodYear   int             `json:"period_year" validate:"required,min=2000,max=2100"`
	PeriodMonth  int             `json:"period_month" validate:"required,min=1,max=12"`
	BaseAmount   decimal.Decimal `json:"base_amount"`
	Overtime     decimal.Decimal `json:"overtime"`
	Deductions   decimal.Decimal `json:"deductions"`
	PaymentDate  string          `json:"payment_date" validate:"required"`
	PaymentMode  string          `json:"payment_mode"`
}

func (c *SalaryController) GetAllPayments(ctx *fiber.Ctx) error {
	var payments []models.SalaryPayment
	query := c.DB.Order("payment_date DESC")

	if unitID := ctx.QueryInt("unit_id", 0); unitID > 0 {
		query = query.Where("unit_id = ?", unitID)
	}
	if year := ctx.QueryInt("year", 0); year > 0 {
		query = query.Where("period_year = ?", year)
	}
	if month := ctx.QueryInt("month", 0); month > 0 {
		query = query.Where("period_month = ?", month)
	}

	if err := query.Find(&payments).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Salary payments found", "data": payments})
}

func (c *SalaryController) GetPaymentByID(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.SalaryPayment
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salary payment not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Salary payment found", "data": result})
}

func (c *SalaryController) CreatePayment(ctx *fiber.Ctx) error {
	var input salaryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if input.BaseAmount.LessThanOrEqual(decimal.Zero) {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Base amount must be greater than zero"})
	}

	paymentDate, err := time.Parse("2006-01-02", input.PaymentDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment_date, expected YYYY-MM-DD"})
	}

	var unit models.ProductionUnit
	if err := c.DB.First(&unit, input.UnitID).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
	}

	netAmount := input.BaseAmount.Add(input.Overtime).Sub(input.Deductions)
	if netAmount.IsNegative() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Deductions exceed gross salary"})
	}

	payment := models.SalaryPayment{
		UnitID:       input.UnitID,
		EmployeeName: input.EmployeeName,
		EmployeeRole: input.EmployeeRole,
		PeriodYear:   input.PeriodYear,
		PeriodMonth:  input.PeriodMonth,
		BaseAmount:   input.BaseAmount,
		Overtime:     input.Overtime,
		Deductions:   input.Deductions,
		NetAmount:    netAmount,
		PaymentDate:  paymentDate,
		PaymentMode:  input.PaymentMode,
		CreatedBy:    int(ctx.Locals("userID").(float64)),
	}

	// One payment per employee per period per unit; check and insert
	// inside a transaction since no DB index backs this up
	duplicate := false
	err = c.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.SalaryPayment
		if err := tx.Where("unit_id = ? AND employee_name = ? AND period_year = ? AND period_month = ?",
			input.UnitID, input.EmployeeName, input.PeriodYear, input.PeriodMonth).
			First(&existing).Error; err == nil {
			duplicate = true
			return gorm.ErrDuplicatedKey
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&payment).Error
	})
	if duplicate {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Salary already paid for this employee and period",
		})
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Salary payment created successfully", "data": payment})
}

func (c *SalaryController) UpdatePayment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input salaryInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	paymentDate, err := time.Parse("2006-01-02", input.PaymentDate)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment_date, expected YYYY-MM-DD"})
	}

	var payment models.SalaryPayment
	if err := c.DB.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salary payment not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	// Another row may already hold this period
	var existing models.SalaryPayment
	if err := c.DB.Where("unit_id = ? AND employee_name = ? AND period_year = ? AND period_month = ? AND id <> ?",
		input.UnitID, input.EmployeeName, input.PeriodYear, input.PeriodMonth, id).
		First(&existing).Error; err == nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Salary already paid for this employee and period",
		})
	}

	netAmount := input.BaseAmount.Add(input.Overtime).Sub(input.Deductions)
	if netAmount.IsNegative() {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Deductions exceed gross salary"})
	}

	if err := c.DB.Model(&models.SalaryPayment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"unit_id":       input.UnitID,
			"employee_name": input.EmployeeName,
			"employee_role": input.EmployeeRole,
			"period_year":   input.PeriodYear,
			"period_month":  input.PeriodMonth,
			"base_amount":   input.BaseAmount,
			"overtime":      input.Overtime,
			"deductions":    input.Deductions,
			"net_amount":    netAmount,
			"payment_date":  paymentDate,
			"payment_mode":  input.PaymentMode,
			"updated_by":    int(ctx.Locals("userID").(float64)),
		}).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Salary payment updated successfully", "data": input})
}

func (c *SalaryController) DeletePayment(ctx *fiber.Ctx) error {
	id, err := ctx.ParamsInt("id")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var payment models.SalaryPayment
	if err := c.DB.First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salary payment not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	payment.DeletedBy = int(ctx.Locals("userID").(float64))
	if err := c.DB.Select("deleted_by").Where("id = ?", id).Updates(&payment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&payment).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Salary payment deleted successfully", "data": payment})
}
