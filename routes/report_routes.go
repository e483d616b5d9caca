package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupReportRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/reports", middleware.AuthMiddleware)
	reportController := &controllers.ReportController{}
	api.Use(middleware.InjectDBMiddleware(reportController))

	api.Post("/generate", reportController.GenerateReport)
	api.Get("/", reportController.GetAllReports)
	api.Get("/:id/download", reportController.DownloadReport)
	api.Post("/:id/email", reportController.EmailReport)
	api.Get("/:id", reportController.GetReportByID)
	api.Delete("/:id", reportController.DeleteReport)
}
