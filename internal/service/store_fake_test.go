package service

import (
	"context"
	"maps"
	"time"

	"github.com/schedulebob/auth/internal/model"
	"github.com/schedulebob/auth/internal/repository"
)

// memStore is an in-memory repository.Store. A failed transaction restores
// the state it started from.
type memStore struct {
	users         map[string]model.User
	sessions      map[uint]model.Session
	nextSessionID uint

	findUserErr    error
	saveSessionErr error
}

func newMemStore(users ...model.User) *memStore {
	m := &memStore{
		users:    make(map[string]model.User),
		sessions: make(map[uint]model.Session),
	}
	for _, u := range users {
		m.users[u.Email] = u
	}
	return m
}

func (m *memStore) Users() repository.UserStore { return memUsers{m} }
func (m *memStore) Sessions() repository.SessionStore { return memSessions{m} }

func (m *memStore) Transaction(ctx context.Context, fn func(tx repository.Store) error) error {
	users := maps.Clone(m.users)
	sessions := maps.Clone(m.sessions)
	nextID := m.nextSessionID

	if err := fn(m); err != nil {
		m.users, m.sessions, m.nextSessionID = users, sessions, nextID
		return err
	}
	return nil
}

func (m *memStore) session(userID uint) (model.Session, bool) {
	s, ok := m.sessions[userID]
	return s, ok
}

type memUsers struct{ m *memStore }

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if r.m.findUserErr != nil {
		return nil, r.m.findUserErr
	}
	u, ok := r.m.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r memUsers) UpdateLastLogin(_ context.Context, userID uint, at time.Time) error {
	for email, u := range r.m.users {
		if u.ID == userID {
			u.LastLoginAt = &at
			r.m.users[email] = u
		}
	}
	return nil
}

type memSessions struct{ m *memStore }

func (r memSessions) FindByUserID(_ context.Context, userID uint) (*model.Session, error) {
	s, ok := r.m.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r memSessions) FindByRefreshToken(_ context.Context, refreshToken string) (*model.Session, error) {
	for _, s := range r.m.sessions {
		if s.RefreshToken == refreshToken {
			return &s, nil
		}
	}
	return nil, nil
}

func (r memSessions) Save(_ context.Context, session *model.Session) error {
	if r.m.saveSessionErr != nil {
		return r.m.saveSessionErr
	}
	if existing, ok := r.m.sessions[session.UserID]; ok {
		session.ID = existing.ID
	} else {
		r.m.nextSessionID++
		session.ID = r.m.nextSessionID
	}
	r.m.sessions[session.UserID] = *session
	return nil
}

type recordedOutcomes struct {
	logins    []string
	refreshes []string
}

func (r *recordedOutcomes) RecordLogin(outcome string) { r.logins = append(r.logins, outcome) }
func (r *recordedOutcomes) RecordRefresh(outcome string) { r.refreshes = append(r.refreshes, outcome) }
