package controllers

import (
	"errors"
	"strconv"
	"strings"

	"stitch-erp/models"
	"stitch-erp/services"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ReportController struct {
	DB *gorm.DB
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db}
}

func (c *ReportController) GetAllReports(ctx *fiber.Ctx) error {
	var reports []models.Report
	query := c.DB.Order("created_at DESC")

	if unitID := ctx.QueryInt("unit_id", 0); unitID > 0 {
		query = query.Where("unit_id = ?", unitID)
	}
	if year := ctx.QueryInt("year", 0); year > 0 {
		query = query.Where("period_year = ?", year)
	}

	if err := query.Find(&reports).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Reports found", "data": reports})
}

func (c *ReportController) GetReportByID(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var result models.Report
	if err := c.DB.First(&result, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Report found", "data": result})
}

func (c *ReportController) GenerateReport(ctx *fiber.Ctx) error {
	var input struct {
		UnitID      *uint `json:"unit_id"`
		PeriodYear  int   `json:"period_year" validate:"required,min=2000,max=2100"`
		PeriodMonth int   `json:"period_month" validate:"required,min=1,max=12"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	userID := int(ctx.Locals("userID").(float64))

	svc := services.NewReportService(c.DB)
	report, err := svc.GenerateReport(input.UnitID, input.PeriodYear, input.PeriodMonth, userID)
	if err != nil {
		if strings.Contains(err.Error(), "production unit not found") {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Production unit not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Report generated successfully", "data": report})
}

// DownloadReport streams the stored workbook
func (c *ReportController) DownloadReport(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var report models.Report
	if err := c.DB.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if report.FilePath == "" {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report workbook not found on disk"})
	}

	return ctx.Download(report.FilePath, report.ReportNo+".xlsx")
}

func (c *ReportController) EmailReport(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var input struct {
		To []string `json:"to" validate:"required,min=1,dive,email"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var report models.Report
	if err := c.DB.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	svc := services.NewReportService(c.DB)
	if err := svc.EmailReport(&report, input.To); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Model(&models.Report{}).
		Where("id = ?", report.ID).
		Update("emailed_to", strings.Join(input.To, ",")).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Report emailed successfully"})
}

func (c *ReportController) DeleteReport(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ID"})
	}

	var report models.Report
	if err := c.DB.First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Report not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.DB.Delete(&report).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{"success": true, "message": "Report deleted successfully", "data": report})
}
