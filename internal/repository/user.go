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
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns nil, nil when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx = ctxutil.WithValue(ctx, ctxutil.FunctionKey, "FindByEmail")
	ctx = ctxutil.WithValue(ctx, ctxutil.ModuleKey, constants.ModuleRepository)

	start := time.Now()
	var user model.User

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&user)
	duration := time.Since(start)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.DebugWithContext(ctx, "User not found by email").
				String("email", email).
				Duration(duration).
				Log()
			return nil, nil
		}
		logger.ErrorWithContext(ctx, "Failed to get user by email").
			String("email", email).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	logger.DebugWithContext(ctx, "User retrieved by email").
		String("email", email).
		Uint("user_id", user.ID).
		Duration(duration).
		Log()

	return &user, nil
}

// UpdateLastLogin touches only last_login_at so concurrent profile edits are kept.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error {
	ctx = ctxutil.WithValue(ctx, ctxutil.FunctionKey, "UpdateLastLogin")
	ctx = ctxutil.WithValue(ctx, ctxutil.ModuleKey, constants.ModuleRepository)

	start := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.User{ID: userID}).
		Update("last_login_at", at)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update last login").
			Uint("user_id", userID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.DebugWithContext(ctx, "Last login updated").
		Uint("user_id", userID).
		Duration(duration).
		Log()

	return nil
}

// Create inserts a new user. Used by the admin seeder.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	ctx = ctxutil.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = ctxutil.WithValue(ctx, ctxutil.ModuleKey, constants.ModuleRepository)

	start := time.Now()
	result := r.db.WithContext(ctx).Create(user)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", user.Email).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "User created successfully").
		String("email", user.Email).
		Uint("user_id", user.ID).
		String("role", user.Role).
		Duration(duration).
		Log()

	return nil
}
