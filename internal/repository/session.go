package repository

import (
	"context"
	"errors"
	"time"

	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/internal/model"
	ctxutil "github.com/schedulebob/auth/pkg/context"
	"github.com/schedulebob/auth/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// FindByUserID returns nil, nil when the user has no session.
func (r *SessionRepository) FindByUserID(ctx context.Context, userID uint) (*model.Session, error) {
	ctx = ctxutil.WithValue(ctx, ctxutil.FunctionKey, "FindByUserID")
	ctx = ctxutil.WithValue(ctx, ctxutil.ModuleKey, constants.ModuleRepository)

	return r.first(ctx, "user_id = ?", userID)
}

// FindByRefreshToken returns nil, nil when no session holds the token.
func (r *SessionRepository) FindByRefreshToken(ctx context.Context, refreshToken string) (*model.Session, error) {
	ctx = ctxutil.WithValue(ctx, ctxutil.FunctionKey, "FindByRefreshToken")
	ctx = ctxutil.WithValue(ctx, ctxutil.ModuleKey, constants.ModuleRepository)

	return r.first(ctx, "refresh_token = ?", refreshToken)
}

func (r *SessionRepository) first(ctx context.Context, query string, arg interface{}) (*model.Session, error) {
	start := time.Now()
	var session model.Session

	result := r.db.WithContext(ctx).Where(query, arg).First(&session)
	duration := time.Since(start)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.ErrorWithContext(ctx, "Failed to get session").
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "Session retrieved").
		Uint("session_id", session.ID).
		Uint("user_id", session.UserID).
		Duration(duration).
		Log()

	return &session, nil
}

// Save upserts on user_id: an existing row for the user gets the new token
// pair and timestamps, otherwise a row is inserted.
func (r *SessionRepository) Save(ctx context.Context, session *model.Session) error {
	ctx = ctxutil.WithValue(ctx, ctxutil.FunctionKey, "Save")
	ctx = ctxutil.WithValue(ctx, ctxutil.ModuleKey, constants.ModuleRepository)

	start := time.Now()
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token",
				"refresh_token",
				"issued_at",
				"expired_at",
				"client_info",
			}),
		}).
		Create(session)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to save session").
			Uint("user_id", session.UserID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Session saved").
		Uint("session_id", session.ID).
		Uint("user_id", session.UserID).
		Time("expired_at", session.ExpiredAt).
		Duration(duration).
		Log()

	return nil
}
