// database/seeder.go
package database

import (
	"log"

	"stitch-erp/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedAdminUser(db)
	SeedProductionUnits(db)
}

func SeedAdminUser(db *gorm.DB) {
	var existing models.User
	if err := db.Where("username = ?", "admin").First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
			if err != nil {
				log.Fatalf("Failed to hash seed password: %v", err)
			}
			admin := models.User{
				Username: "admin",
				Name:     "Administrator",
				Email:    "admin@localhost",
				Password: string(hashed),
				Role:     "admin",
			}
			if err := db.Create(&admin).Error; err != nil {
				log.Fatalf("Failed to create admin user: %v", err)
			}
		} else {
			log.Fatalf("Unexpected DB error: %v", err)
		}
	}
}

func SeedProductionUnits(db *gorm.DB) {
	units := []models.ProductionUnit{
		{UnitCode: "MAIN", UnitName: "Main Stitching Unit", Status: "active"},
	}

	for _, u := range units {
		var existing models.ProductionUnit
		if err := db.Where("unit_code = ?", u.UnitCode).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&u)
			}
		}
	}
}
