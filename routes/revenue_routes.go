package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupRevenueRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/revenues", middleware.AuthMiddleware)
	revenueController := &controllers.RevenueController{}
	api.Use(middleware.InjectDBMiddleware(revenueController))

	api.Post("/", revenueController.CreateRevenue)
	api.Get("/", revenueController.GetAllRevenues)
	api.Get("/:id", revenueController.GetRevenueByID)
	api.Put("/:id", revenueController.UpdateRevenue)
	api.Delete("/:id", revenueController.DeleteRevenue)
}
