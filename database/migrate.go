// database/migrate.go
package database

import (
	"stitch-erp/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.ProductionUnit{},
		&models.Expense{},
		&models.Revenue{},
		&models.InventoryItem{},
		&models.StockAdjustment{},
		&models.Customer{},
		&models.Order{},
		&models.OrderItem{},
		&models.SalaryPayment{},
		&models.MaintenanceRecord{},
		&models.Report{},
		&models.FileLog{},
	)
}
