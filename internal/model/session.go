package model

import (
	"time"

	"gorm.io/datatypes"
)

// Session is the single persisted token pair of a user. UserID is unique, so
// a user never has more than one row.
type Session struct {
	ID           uint              `gorm:"column:id;primaryKey"`
	UserID       uint              `gorm:"column:user_id;not null;uniqueIndex:uniq_user_sessions_user_id"`
	AccessToken  string            `gorm:"column:access_token;type:text;not null"`
	RefreshToken string            `gorm:"column:refresh_token;type:text;not null;index:idx_user_sessions_refresh_token"`
	IssuedAt     time.Time         `gorm:"column:issued_at;not null"`
	ExpiredAt    time.Time         `gorm:"column:expired_at;not null"`
	ClientInfo   datatypes.JSONMap `gorm:"column:client_info;type:jsonb"`
}

func (Session) TableName() string {
	return "user_sessions"
}
