package localstore

import (
	"context"
	"sync"

	"github.com/andremartins/storefront-backend/internal/remote"
)

// MemoryStore keeps session records in process memory. Default for tests and
// dev runs without an embedded database.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]map[string][]byte
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]map[string][]byte{}}
}

func (m *MemoryStore) put(sessionID, key string, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.records[sessionID]
	if !ok {
		session = map[string][]byte{}
		m.records[sessionID] = session
	}
	session[key] = payload
}

func (m *MemoryStore) get(sessionID, key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.records[sessionID]
	if !ok {
		return nil, false
	}
	payload, ok := session[key]
	return payload, ok
}

func (m *MemoryStore) delete(sessionID, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if session, ok := m.records[sessionID]; ok {
		delete(session, key)
	}
}

// SaveCart stores the full line snapshot sequence for the session.
func (m *MemoryStore) SaveCart(ctx context.Context, sessionID string, items []remote.CartItem) error {
	payload, err := encodeCart(items)
	if err != nil {
		return err
	}
	m.put(sessionID, RecordKeyCart, payload)
	return nil
}

// LoadCart returns the persisted lines; missing or corrupt records read as empty.
func (m *MemoryStore) LoadCart(ctx context.Context, sessionID string) ([]remote.CartItem, error) {
	payload, ok := m.get(sessionID, RecordKeyCart)
	if !ok {
		return []remote.CartItem{}, nil
	}
	items, ok := decodeCart(payload)
	if !ok {
		m.delete(sessionID, RecordKeyCart)
		return []remote.CartItem{}, nil
	}
	return items, nil
}

// SaveFavoriteIDs stores only the product ids.
func (m *MemoryStore) SaveFavoriteIDs(ctx context.Context, sessionID string, ids []int64) error {
	payload, err := encodeFavoriteIDs(ids)
	if err != nil {
		return err
	}
	m.put(sessionID, RecordKeyFavorites, payload)
	return nil
}

// LoadFavoriteIDs returns the persisted ids; missing or corrupt records read as empty.
func (m *MemoryStore) LoadFavoriteIDs(ctx context.Context, sessionID string) ([]int64, error) {
	payload, ok := m.get(sessionID, RecordKeyFavorites)
	if !ok {
		return []int64{}, nil
	}
	ids, ok := decodeFavoriteIDs(payload)
	if !ok {
		m.delete(sessionID, RecordKeyFavorites)
		return []int64{}, nil
	}
	return ids, nil
}

// Ping always succeeds for the in-memory backend.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return nil
}

// Corrupt overwrites a record with an unparseable payload. Test hook.
func (m *MemoryStore) Corrupt(sessionID, key string) {
	m.put(sessionID, key, []byte("{not json"))
}
