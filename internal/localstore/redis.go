package localstore

import (
	"context"
	"errors"

	"github.com/andremartins/storefront-backend/internal/remote"
	"github.com/andremartins/storefront-backend/pkg/redis"
)

// RedisStore persists session records in redis for shared deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps the platform redis client.
func NewRedisStore(client *redis.Client) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client}, nil
}

func (r *RedisStore) save(ctx context.Context, sessionID, key string, payload []byte) error {
	return r.client.Set(ctx, r.client.StateKey(sessionID, key), payload, 0)
}

func (r *RedisStore) load(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	value, err := r.client.Get(ctx, r.client.StateKey(sessionID, key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return []byte(value), true, nil
}

func (r *RedisStore) discard(ctx context.Context, sessionID, key string) {
	_ = r.client.Del(ctx, r.client.StateKey(sessionID, key))
}

// SaveCart stores the full line snapshot sequence for the session.
func (r *RedisStore) SaveCart(ctx context.Context, sessionID string, items []remote.CartItem) error {
	payload, err := encodeCart(items)
	if err != nil {
		return err
	}
	return r.save(ctx, sessionID, RecordKeyCart, payload)
}

// LoadCart returns the persisted lines; a corrupt record is discarded and
// read as empty.
func (r *RedisStore) LoadCart(ctx context.Context, sessionID string) ([]remote.CartItem, error) {
	payload, ok, err := r.load(ctx, sessionID, RecordKeyCart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []remote.CartItem{}, nil
	}
	items, ok := decodeCart(payload)
	if !ok {
		r.discard(ctx, sessionID, RecordKeyCart)
		return []remote.CartItem{}, nil
	}
	return items, nil
}

// SaveFavoriteIDs stores only the product ids.
func (r *RedisStore) SaveFavoriteIDs(ctx context.Context, sessionID string, ids []int64) error {
	payload, err := encodeFavoriteIDs(ids)
	if err != nil {
		return err
	}
	return r.save(ctx, sessionID, RecordKeyFavorites, payload)
}

// LoadFavoriteIDs returns the persisted ids; a corrupt record is discarded
// and read as empty.
func (r *RedisStore) LoadFavoriteIDs(ctx context.Context, sessionID string) ([]int64, error) {
	payload, ok, err := r.load(ctx, sessionID, RecordKeyFavorites)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []int64{}, nil
	}
	ids, ok := decodeFavoriteIDs(payload)
	if !ok {
		r.discard(ctx, sessionID, RecordKeyFavorites)
		return []int64{}, nil
	}
	return ids, nil
}

// Ping verifies redis is reachable.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
