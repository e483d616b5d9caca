package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupSalaryRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/salaries", middleware.AuthMiddleware)
	salaryController := &controllers.SalaryController{}
	api.Use(middleware.InjectDBMiddleware(salaryController))

	api.Post("/", salaryController.CreatePayment)
	api.Get("/", salaryController.GetAllPayments)
	api.Get("/:id", salaryController.GetPaymentByID)
	api.Put("/:id", salaryController.UpdatePayment)
	api.Delete("/:id", salaryController.DeletePayment)
}
