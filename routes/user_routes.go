package routes

import (
	"stitch-erp/config"
	"stitch-erp/controllers"
	"stitch-erp/middleware"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(app *fiber.App) {

	api := app.Group(config.MAIN_ROUTES+"/users", middleware.AuthMiddleware)
	userController := &controllers.UserController{}
	api.Use(middleware.InjectDBMiddleware(userController))

	api.Post("/", userController.CreateUser)
	api.Get("/", userController.GetAllUsers)
	api.Get("/:id", userController.GetUserByID)
	api.Put("/:id", userController.UpdateUser)
	api.Delete("/:id", userController.DeleteUser)

	profile := app.Group(config.MAIN_ROUTES+"/user", middleware.AuthMiddleware)
	profile.Use(middleware.InjectDBMiddleware(userController))
	profile.Get("/profile", userController.GetProfile)
}
