package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/dashboard", middleware.AuthMiddleware)
	dashboardController := &controllers.DashboardController{}
	api.Use(middleware.InjectDBMiddleware(dashboardController))

	api.Get("/", dashboardController.GetDashboard)
	api.Get("/monthly", dashboardController.GetMonthlySummary)
}
