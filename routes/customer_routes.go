package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupCustomerRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/customers", middleware.AuthMiddleware)
	customerController := &controllers.CustomerController{}
	api.Use(middleware.InjectDBMiddleware(customerController))

	api.Post("/upload-excel", customerController.CreateCustomerFromExcel)
	api.Post("/export", customerController.ExportCustomers)
	api.Post("/", customerController.CreateCustomer)
	api.Get("/", customerController.GetAllCustomers)
	api.Get("/:id", customerController.GetCustomerByID)
	api.Put("/:id", customerController.UpdateCustomer)
	api.Delete("/:id", customerController.DeleteCustomer)
}
