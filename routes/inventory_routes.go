package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupInventoryRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/inventory", middleware.AuthMiddleware)
	inventoryController := &controllers.InventoryController{}
	api.Use(middleware.InjectDBMiddleware(inventoryController))

	api.Post("/upload-excel", inventoryController.CreateItemFromExcel)
	api.Post("/export", inventoryController.ExportItems)
	api.Get("/low-stock", inventoryController.GetLowStockItems)
	api.Post("/", inventoryController.CreateItem)
	api.Get("/", inventoryController.GetAllItems)
	api.Post("/:id/adjust", inventoryController.AdjustStock)
	api.Get("/:id/history", inventoryController.GetStockHistory)
	api.Get("/:id", inventoryController.GetItemByID)
	api.Put("/:id", inventoryController.UpdateItem)
	api.Delete("/:id", inventoryController.DeleteItem)
}
