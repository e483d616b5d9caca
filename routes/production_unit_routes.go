package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupProductionUnitRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/units", middleware.AuthMiddleware)
	unitController := &controllers.ProductionUnitController{}
	api.Use(middleware.InjectDBMiddleware(unitController))

	api.Post("/", unitController.CreateUnit)
	api.Get("/", unitController.GetAllUnits)
	api.Get("/:id/summary", unitController.GetUnitSummary)
	api.Get("/:id", unitController.GetUnitByID)
	api.Put("/:id", unitController.UpdateUnit)
	api.Delete("/:id", unitController.DeleteUnit)
}
