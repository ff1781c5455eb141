package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrRefreshTokenNotFound is returned when a refresh token is unknown,
// expired or already rotated.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

const refreshKeyPrefix = "refresh:"

// RefreshStore keeps opaque refresh tokens in Redis. Each token maps to
// the owning user ID and expires with the configured TTL. Rotation
// deletes the old token so a stolen token can be used at most once.
type RefreshStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRefreshStore creates a refresh token store backed by the given client.
func NewRefreshStore(rdb *redis.Client, ttl time.Duration) *RefreshStore {
	return &RefreshStore{rdb: rdb, ttl: ttl}
}

func newOpaqueToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Issue creates and stores a new refresh token for the user.
func (s *RefreshStore) Issue(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := newOpaqueToken()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, refreshKeyPrefix+token, userID.String(), s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}
	return token, nil
}

// Rotate atomically consumes the old token and returns the user it
// belonged to plus a freshly issued replacement.
func (s *RefreshStore) Rotate(ctx context.Context, oldToken string) (uuid.UUID, string, error) {
	// GETDEL makes consume-once atomic; two concurrent refreshes with the
	// same token cannot both succeed.
	val, err := s.rdb.GetDel(ctx, refreshKeyPrefix+oldToken).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, "", ErrRefreshTokenNotFound
		}
		return uuid.Nil, "", fmt.Errorf("failed to look up refresh token: %w", err)
	}

	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, "", ErrRefreshTokenNotFound
	}

	newToken, err := s.Issue(ctx, userID)
	if err != nil {
		return uuid.Nil, "", err
	}
	return userID, newToken, nil
}

// Revoke deletes a refresh token. Revoking an unknown token is a no-op.
func (s *RefreshStore) Revoke(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, refreshKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
