package localstore

import (
	"context"
	"errors"
	"time"

	"github.com/andremartins/storefront-backend/internal/remote"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateRecord is one persisted session record (cart or favorites payload).
type StateRecord struct {
	SessionID string    `gorm:"column:session_id;primaryKey"`
	RecordKey string    `gorm:"column:record_key;primaryKey"`
	Payload   []byte    `gorm:"column:payload;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name used by the embedded store.
func (StateRecord) TableName() string {
	return "session_state_records"
}

// GormStore persists session records through the embedded sqlite database.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore migrates the state table and returns the store.
func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if db == nil {
		return nil, errors.New("gorm db is required")
	}
	if err := db.AutoMigrate(&StateRecord{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

func (g *GormStore) save(ctx context.Context, sessionID, key string, payload []byte) error {
	record := StateRecord{SessionID: sessionID, RecordKey: key, Payload: payload}
	return g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).
		Error
}

func (g *GormStore) load(ctx context.Context, sessionID, key string) ([]byte, bool, error) {
	var record StateRecord
	err := g.db.WithContext(ctx).
		Where("session_id = ? AND record_key = ?", sessionID, key).
		First(&record).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return record.Payload, true, nil
}

func (g *GormStore) discard(ctx context.Context, sessionID, key string) {
	g.db.WithContext(ctx).
		Where("session_id = ? AND record_key = ?", sessionID, key).
		Delete(&StateRecord{})
}

// SaveCart stores the full line snapshot sequence for the session.
func (g *GormStore) SaveCart(ctx context.Context, sessionID string, items []remote.CartItem) error {
	payload, err := encodeCart(items)
	if err != nil {
		return err
	}
	return g.save(ctx, sessionID, RecordKeyCart, payload)
}

// LoadCart returns the persisted lines; a corrupt record is discarded and
// read as empty.
func (g *GormStore) LoadCart(ctx context.Context, sessionID string) ([]remote.CartItem, error) {
	payload, ok, err := g.load(ctx, sessionID, RecordKeyCart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []remote.CartItem{}, nil
	}
	items, ok := decodeCart(payload)
	if !ok {
		g.discard(ctx, sessionID, RecordKeyCart)
		return []remote.CartItem{}, nil
	}
	return items, nil
}

// SaveFavoriteIDs stores only the product ids.
func (g *GormStore) SaveFavoriteIDs(ctx context.Context, sessionID string, ids []int64) error {
	payload, err := encodeFavoriteIDs(ids)
	if err != nil {
		return err
	}
	return g.save(ctx, sessionID, RecordKeyFavorites, payload)
}

// LoadFavoriteIDs returns the persisted ids; a corrupt record is discarded
// and read as empty.
func (g *GormStore) LoadFavoriteIDs(ctx context.Context, sessionID string) ([]int64, error) {
	payload, ok, err := g.load(ctx, sessionID, RecordKeyFavorites)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []int64{}, nil
	}
	ids, ok := decodeFavoriteIDs(payload)
	if !ok {
		g.discard(ctx, sessionID, RecordKeyFavorites)
		return []int64{}, nil
	}
	return ids, nil
}

// Ping verifies the backing database is reachable.
func (g *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
