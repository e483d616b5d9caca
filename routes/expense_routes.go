package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupExpenseRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/expenses", middleware.AuthMiddleware)
	expenseController := &controllers.ExpenseController{}
	api.Use(middleware.InjectDBMiddleware(expenseController))

	api.Post("/", expenseController.CreateExpense)
	api.Get("/", expenseController.GetAllExpenses)
	api.Get("/:id", expenseController.GetExpenseByID)
	api.Put("/:id", expenseController.UpdateExpense)
	api.Delete("/:id", expenseController.DeleteExpense)
}
