package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupMaintenanceRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/maintenance", middleware.AuthMiddleware)
	maintenanceController := &controllers.MaintenanceController{}
	api.Use(middleware.InjectDBMiddleware(maintenanceController))

	api.Get("/upcoming", maintenanceController.GetUpcoming)
	api.Post("/", maintenanceController.CreateRecord)
	api.Get("/", maintenanceController.GetAllRecords)
	api.Get("/:id", maintenanceController.GetRecordByID)
	api.Put("/:id", maintenanceController.UpdateRecord)
	api.Delete("/:id", maintenanceController.DeleteRecord)
}
