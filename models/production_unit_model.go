package models

import "gorm.io/gorm"

type ProductionUnit struct {
	gorm.Model
	UnitCode   string `json:"unit_code" gorm:"index"`
	UnitName   string `json:"unit_name"`
	Location   string `json:"location"`
	Supervisor string `json:"supervisor"`
	Status     string `json:"status" gorm:"default:active"`
	Notes      string `json:"notes"`
	CreatedBy  int
	UpdatedBy  int
	DeletedBy  int
}
