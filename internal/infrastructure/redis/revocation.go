package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/baechuer/edusphere/internal/domain"
)

// RevocationStore keeps deactivated user ids in Redis with a TTL equal to
// the token lifetime, so every token issued before deactivation expires
// from the set on its own.
type RevocationStore struct {
	rdb     *goredis.Client
	keyPref string
}

func NewRevocationStore(c *Client) *RevocationStore {
	return &RevocationStore{rdb: c.rdb, keyPref: "revoked:user:"}
}

func (s *RevocationStore) key(userID string) string {
	return s.keyPref + userID
}

func (s *RevocationStore) Revoke(ctx context.Context, userID string, ttl time.Duration) error {
	if userID == "" {
		return domain.ErrMissingField("user_id")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := s.rdb.Set(ctx, s.key(userID), "1", ttl).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (s *RevocationStore) Clear(ctx context.Context, userID string) error {
	if err := s.rdb.Del(ctx, s.key(userID)).Err(); err != nil {
		return domain.ErrRedisUnavailable(err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, userID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, s.key(userID)).Result()
	if err != nil {
		return false, domain.ErrRedisUnavailable(err)
	}
	return n > 0, nil
}
