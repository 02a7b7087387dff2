package cartstore

import (
	"context"
	"errors"

	pkgredis "github.com/diningtech/tableside/pkg/redis"
)

// RedisStore keeps cart snapshots in Redis under ts:cart:{venue}:{table}.
// Snapshots carry no TTL; an abandoned cart is overwritten on the table's
// next visit.
type RedisStore struct {
	client *pkgredis.Client
}

func NewRedisStore(client *pkgredis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, venueID string, table int, payload string) error {
	return s.client.Set(ctx, pkgredis.CartKey(venueID, table), payload, 0)
}

func (s *RedisStore) Load(ctx context.Context, venueID string, table int) (string, bool, error) {
	payload, err := s.client.Get(ctx, pkgredis.CartKey(venueID, table))
	if errors.Is(err, pkgredis.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return payload, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, venueID string, table int) error {
	return s.client.Del(ctx, pkgredis.CartKey(venueID, table))
}
