package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

func nowUTC() time.Time { return time.Now().UTC() }

// buildKey scopes a request id to the route and the session user, so two users
// reusing the same request id never collide.
func buildKey(method, path, userID, requestID string) string {
	return "idemp:loans:" + strings.ToLower(method) + ":" + path + ":" + userID + ":" + requestID
}

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

func validReqID(id string) bool {
	id = strings.TrimSpace(id)
	return reUUID.MatchString(id) || reHex32.MatchString(id)
}

// parseRequestAt accepts epoch seconds, epoch milliseconds, or RFC3339 with
// an explicit zone. Naive local timestamps are rejected.
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing Ax-Request-At")
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New("Ax-Request-At must be epoch (s/ms) or RFC3339 with timezone")
}

type idempStore struct {
	rdb *redis.Client
}

func (s idempStore) lock(ctx context.Context, key string, e idempEntry) (bool, error) {
	payload, _ := json.Marshal(e)
	return s.rdb.SetNX(ctx, key, payload, provisionalLockTTL).Result()
}

func (s idempStore) load(ctx context.Context, key string) (idempEntry, error) {
	var e idempEntry
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(v, &e); err != nil {
		return e, err
	}
	return e, nil
}

func (s idempStore) save(ctx context.Context, key string, e idempEntry, ttl time.Duration) error {
	payload, _ := json.Marshal(e)
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

// release drops a provisional lock so the client can retry after a 5xx.
func (s idempStore) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
