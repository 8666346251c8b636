package localstore

import (
	"context"
	"encoding/json"

	"github.com/andremartins/storefront-backend/internal/remote"
)

// Record keys are fixed: one record per concern per session.
const (
	RecordKeyCart      = "cart"
	RecordKeyFavorites = "favorites"
)

// Store round-trips session state. Reads are best-effort: a missing or
// corrupt record yields an empty collection, never an error, and corrupt
// records are discarded.
type Store interface {
	SaveCart(ctx context.Context, sessionID string, items []remote.CartItem) error
	LoadCart(ctx context.Context, sessionID string) ([]remote.CartItem, error)

	SaveFavoriteIDs(ctx context.Context, sessionID string, ids []int64) error
	LoadFavoriteIDs(ctx context.Context, sessionID string) ([]int64, error)

	Ping(ctx context.Context) error
}

func encodeCart(items []remote.CartItem) ([]byte, error) {
	if items == nil {
		items = []remote.CartItem{}
	}
	return json.Marshal(items)
}

func decodeCart(payload []byte) ([]remote.CartItem, bool) {
	var items []remote.CartItem
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, false
	}
	return items, true
}

func encodeFavoriteIDs(ids []int64) ([]byte, error) {
	if ids == nil {
		ids = []int64{}
	}
	return json.Marshal(ids)
}

func decodeFavoriteIDs(payload []byte) ([]int64, bool) {
	var ids []int64
	if err := json.Unmarshal(payload, &ids); err != nil {
		return nil, false
	}
	return ids, true
}
