package model

import (
	"time"

	"github.com/schedulebob/auth/internal/constants"
	"gorm.io/gorm"
)

type User struct {
	ID             uint       `gorm:"column:id;primaryKey"`
	Email          string     `gorm:"column:email;size:255;uniqueIndex;not null"`
	Password       *string    `gorm:"column:password"`
	Name           string     `gorm:"column:name;size:100;not null"`
	Phone          *string    `gorm:"column:phone;size:20"`
	Role           string     `gorm:"column:role;size:30;not null;default:'USER'"`
	SocialProvider *string    `gorm:"column:social_provider;size:30"`
	JoinedAt       time.Time  `gorm:"column:joined_at;<-:create;autoCreateTime;not null"`
	LastLoginAt    *time.Time `gorm:"column:last_login_at"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate fills in the default role so the issued tokens always carry one.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.Role == "" {
		u.Role = constants.RoleUser
	}
	return nil
}
