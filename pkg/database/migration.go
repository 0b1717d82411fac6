package database

import (
	"github.com/wallfeed/wallfeed/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate runs schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Profile{},
		&model.Post{},
	)
}
