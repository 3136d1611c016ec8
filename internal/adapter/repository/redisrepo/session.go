package redisrepo

import (
	"context"
	"errors"
	"time"

	"loan-tracker/internal/domain/user"

	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "session:revoked:"

// SessionStore keeps revoked session ids in redis until the token would have
// expired, after which the key disappears on its own.
type SessionStore struct{ rdb *redis.Client }

var _ user.SessionStore = (*SessionStore)(nil)

func NewSessionStore(rdb *redis.Client) *SessionStore { return &SessionStore{rdb: rdb} }

func (s *SessionStore) Revoke(ctx context.Context, sessionID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.rdb.Set(ctx, revokedPrefix+sessionID, 1, ttl).Err()
}

func (s *SessionStore) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	err := s.rdb.Get(ctx, revokedPrefix+sessionID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
