package database

import (
	"github.com/schedulebob/auth/internal/model"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the users and user_sessions tables,
// including the unique index that keeps one session per user.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Session{},
	)
}
