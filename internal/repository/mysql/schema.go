package mysql

import (
	"gorm.io/gorm"

	"github.com/Guyuepp/forum-comments/internal/repository/mysql/model"
)

// AutoMigrate creates or updates the users, topics and comments tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(model.All()...)
}
