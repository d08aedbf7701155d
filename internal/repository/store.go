package repository

import (
	"context"
	"time"

	"github.com/schedulebob/auth/internal/model"
	"gorm.io/gorm"
)

// UserStore is the read/write surface the auth flows need on users.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateLastLogin(ctx context.Context, userID uint, at time.Time) error
}

// SessionStore keeps at most one session per user.
type SessionStore interface {
	FindByUserID(ctx context.Context, userID uint) (*model.Session, error)
	FindByRefreshToken(ctx context.Context, refreshToken string) (*model.Session, error)
	Save(ctx context.Context, session *model.Session) error
}

// Store groups the repositories so a flow can run them in one transaction.
type Store interface {
	Users() UserStore
	Sessions() SessionStore
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type GormStore struct {
	db       *gorm.DB
	users    *UserRepository
	sessions *SessionRepository
}

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db:       db,
		users:    NewUserRepository(db),
		sessions: NewSessionRepository(db),
	}
}

func (s *GormStore) Users() UserStore { return s.users }
func (s *GormStore) Sessions() SessionStore { return s.sessions }

// Transaction runs fn against a Store bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
