package database

import (
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// AutoMigrate creates or updates the schema for all domain models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Board{},
		&domain.Category{},
		&domain.CustomField{},
		&domain.Task{},
		&domain.EventLog{},
		&domain.SystemSetting{},
	)
}
