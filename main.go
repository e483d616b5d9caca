package main

import (
	"fmt"
	"log"

	"stitch-erp/config"
	"stitch-erp/controllers/idgen"
	"stitch-erp/database"
	"stitch-erp/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	mainDB, err := database.OpenMainDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(mainDB); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(mainDB)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app)
	routes.SetupDashboardRoutes(app)
	routes.SetupProductionUnitRoutes(app)
	routes.SetupExpenseRoutes(app)
	routes.SetupRevenueRoutes(app)
	routes.SetupInventoryRoutes(app)
	routes.SetupCustomerRoutes(app)
	routes.SetupOrderRoutes(app)
	routes.SetupSalaryRoutes(app)
	routes.SetupMaintenanceRoutes(app)
	routes.SetupReportRoutes(app)
	routes.SetupUserRoutes(app)

	port := config.APP_PORT
	fmt.Println("Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
