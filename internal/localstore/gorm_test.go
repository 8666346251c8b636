package localstore

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	silent := gormlogger.New(log.New(io.Discard, "", log.LstdFlags), gormlogger.Config{LogLevel: gormlogger.Silent})
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: silent})
	require.NoError(t, err)
	store, err := NewGormStore(db)
	require.NoError(t, err)
	return store
}

func TestGormCartRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t)

	require.NoError(t, store.SaveCart(ctx, "s1", sampleLines()))

	loaded, err := store.LoadCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, int64(2), loaded[1].Product.ID)
	require.Equal(t, 1, loaded[1].Quantity)
	require.Equal(t, 3, loaded[1].Product.Stock)
}

func TestGormSaveOverwritesPreviousRecord(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t)

	require.NoError(t, store.SaveCart(ctx, "s1", sampleLines()))
	require.NoError(t, store.SaveCart(ctx, "s1", sampleLines()[:1]))

	loaded, err := store.LoadCart(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
}

func TestGormMissingRecordReadsEmpty(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t)

	cart, err := store.LoadCart(ctx, "ghost")
	require.NoError(t, err)
	require.Empty(t, cart)

	ids, err := store.LoadFavoriteIDs(ctx, "ghost")
	require.NoError(t, err)
	require.Empty(t, ids)
}

func TestGormCorruptRecordDiscarded(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t)

	require.NoError(t, store.save(ctx, "s1", RecordKeyFavorites, []byte("][")))

	ids, err := store.LoadFavoriteIDs(ctx, "s1")
	require.NoError(t, err)
	require.Empty(t, ids)

	var count int64
	require.NoError(t, store.db.Model(&StateRecord{}).
		Where("session_id = ? AND record_key = ?", "s1", RecordKeyFavorites).
		Count(&count).Error)
	require.Zero(t, count, "corrupt record should have been deleted")
}

func TestGormFavoriteIDsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestGormStore(t)

	require.NoError(t, store.SaveFavoriteIDs(ctx, "s1", []int64{10, 20}))

	ids, err := store.LoadFavoriteIDs(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []int64{10, 20}, ids)
}
