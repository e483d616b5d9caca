package utils

import (
	"stitch-erp/models"

	"gorm.io/gorm"
)

func InsertFileLog(db *gorm.DB, log models.FileLog) {
	db.Create(&log)
}
