package controllers

import (
	"time"

	"stitch-erp/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(DB *gorm.DB) *DashboardController {
	return &DashboardController{DB: DB}
}

// GetDashboard returns per-unit cost and revenue totals plus headline counts
func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	repo := repositories.NewDashboardRepository(c.DB)

	units, err := repo.GetUnitTotals()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	pendingOrders, err := repo.CountPendingOrders()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	lowStock, err := repo.CountLowStockItems()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Dashboard retrieved successfully",
		"data": fiber.Map{
			"units":           units,
			"pending_orders":  pendingOrders,
			"low_stock_items": lowStock,
		},
	})
}

// GetMonthlySummary returns expense vs revenue per month for a year
func (c *DashboardController) GetMonthlySummary(ctx *fiber.Ctx) error {
	year := ctx.QueryInt("year", time.Now().Year())
	if year < 2000 || year > 2100 {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid year"})
	}

	repo := repositories.NewDashboardRepository(c.DB)
	series, err := repo.GetMonthlySeries(year)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Monthly summary retrieved successfully",
		"data": fiber.Map{
			"year":   year,
			"series": series,
		},
	})
}
