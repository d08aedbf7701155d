package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/schedulebob/auth/config"
	"github.com/schedulebob/auth/internal/constants"
	"github.com/schedulebob/auth/internal/model"
	"github.com/schedulebob/auth/internal/repository"
	"gorm.io/gorm"
)

// PasswordHasher produces the stored form of a plaintext password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// Seed creates the configured admin account unless a user with that email
// already exists. It is a no-op when seeding is disabled.
func Seed(ctx context.Context, db *gorm.DB, cfg config.SeedConfig, hasher PasswordHasher) error {
	if !cfg.Enabled {
		return nil
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return errors.New("seed: admin email and password are required")
	}

	users := repository.NewUserRepository(db)

	existing, err := users.FindByEmail(ctx, cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("seed: lookup admin: %w", err)
	}
	if existing != nil {
		return nil
	}

	hashed, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	admin := &model.User{
		Email:    cfg.AdminEmail,
		Password: &hashed,
		Name:     cfg.AdminName,
		Role:     constants.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed: create admin: %w", err)
	}
	return nil
}
