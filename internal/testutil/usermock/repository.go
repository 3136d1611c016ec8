package usermock

import (
	"context"
	"time"

	domain "loan-tracker/internal/domain/user"
)

var (
	_ domain.AccountRepository = (*Accounts)(nil)
	_ domain.ProfileRepository = (*Profiles)(nil)
	_ domain.SessionStore      = (*Sessions)(nil)
)

// Accounts is a function-backed mock of domain.AccountRepository.
type Accounts struct {
	CreateFn      func(ctx context.Context, a *domain.Account) error
	GetByEmailFn  func(ctx context.Context, email string) (*domain.Account, error)
	GetByUserIDFn func(ctx context.Context, userID string) (*domain.Account, error)
}

func (m *Accounts) Create(ctx context.Context, a *domain.Account) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Accounts) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, domain.ErrNotFound
}

func (m *Accounts) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, domain.ErrNotFound
}

// Profiles is a function-backed mock of domain.ProfileRepository.
type Profiles struct {
	CreateFn func(ctx context.Context, p *domain.Profile) error
}

func (m *Profiles) Create(ctx context.Context, p *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

// Sessions is an in-memory domain.SessionStore; TTLs are recorded, not enforced.
type Sessions struct {
	Revoked map[string]time.Duration
	Err     error
}

func NewSessions() *Sessions { return &Sessions{Revoked: map[string]time.Duration{}} }

func (m *Sessions) Revoke(_ context.Context, sessionID string, ttl time.Duration) error {
	if m.Err != nil {
		return m.Err
	}
	m.Revoked[sessionID] = ttl
	return nil
}

func (m *Sessions) IsRevoked(_ context.Context, sessionID string) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	_, ok := m.Revoked[sessionID]
	return ok, nil
}
