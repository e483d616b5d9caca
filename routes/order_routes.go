package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupOrderRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)
	orderController := &controllers.OrderController{}
	api.Use(middleware.InjectDBMiddleware(orderController))

	api.Post("/export", orderController.ExportOrders)
	api.Post("/", orderController.CreateOrder)
	api.Get("/", orderController.GetAllOrders)
	api.Put("/:id/status", orderController.UpdateOrderStatus)
	api.Get("/:id", orderController.GetOrderByID)
	api.Put("/:id", orderController.UpdateOrder)
	api.Delete("/:id", orderController.DeleteOrder)
}
