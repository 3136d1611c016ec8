package user

import (
	"context"
	"time"
)

type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByUserID(ctx context.Context, userID string) (*Account, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
}

// SessionStore remembers revoked session ids until their tokens expire.
type SessionStore interface {
	Revoke(ctx context.Context, sessionID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}
