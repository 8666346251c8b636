package favorites

import (
	"context"
	"testing"

	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/localstore"
	"github.com/andremartins/storefront-backend/internal/remote"
	"github.com/andremartins/storefront-backend/pkg/config"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testProducts() []remote.Product {
	return []remote.Product{
		{ID: 1, Name: "Tênis A", Price: decimal.RequireFromString("100"), Stock: 5},
		{ID: 2, Name: "Tênis B", Price: decimal.RequireFromString("200"), Stock: 5},
	}
}

func newTestService(t *testing.T, store localstore.Store) Service {
	t.Helper()
	mock := remote.NewMockWithData(config.RemoteConfig{}, testProducts(), nil)
	cat, err := catalog.NewService(mock)
	require.NoError(t, err)
	require.NoError(t, cat.Load(context.Background()))

	svc, err := NewService(ServiceParams{Catalog: cat, Store: store})
	require.NoError(t, err)
	return svc
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, localstore.NewMemoryStore())

	require.NoError(t, svc.Add(ctx, "s1", 1))
	require.NoError(t, svc.Add(ctx, "s1", 1))

	ids, err := svc.IDs(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []int64{1}, ids)
}

func TestAddUnknownProduct(t *testing.T) {
	svc := newTestService(t, localstore.NewMemoryStore())

	err := svc.Add(context.Background(), "s1", 999)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, localstore.NewMemoryStore())

	require.NoError(t, svc.Add(ctx, "s1", 1))
	require.NoError(t, svc.Remove(ctx, "s1", 1))
	require.NoError(t, svc.Remove(ctx, "s1", 1))

	fav, err := svc.IsFavorite(ctx, "s1", 1)
	require.NoError(t, err)
	require.False(t, fav)
}

func TestToggleTwiceRestoresMembership(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, localstore.NewMemoryStore())

	before, err := svc.IsFavorite(ctx, "s1", 1)
	require.NoError(t, err)

	member, err := svc.Toggle(ctx, "s1", 1)
	require.NoError(t, err)
	require.True(t, member)

	member, err = svc.Toggle(ctx, "s1", 1)
	require.NoError(t, err)
	require.False(t, member)

	after, err := svc.IsFavorite(ctx, "s1", 1)
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestRehydrationDropsMissingIDs(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.SaveFavoriteIDs(ctx, "s1", []int64{1, 2, 999}))

	svc := newTestService(t, store)

	for id, want := range map[int64]bool{1: true, 2: true, 999: false} {
		fav, err := svc.IsFavorite(ctx, "s1", id)
		require.NoError(t, err)
		require.Equal(t, want, fav, "product %d", id)
	}
}

func TestRehydratedSetReflectsCurrentCatalog(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.SaveFavoriteIDs(ctx, "s1", []int64{1}))

	mock := remote.NewMockWithData(config.RemoteConfig{}, testProducts(), nil)
	newPrice := decimal.RequireFromString("150")
	_, err := mock.UpdateProduct(ctx, 1, remote.UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)

	cat, err := catalog.NewService(mock)
	require.NoError(t, err)
	require.NoError(t, cat.Load(ctx))
	svc, err := NewService(ServiceParams{Catalog: cat, Store: store})
	require.NoError(t, err)

	list, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].Price.Equal(newPrice), "favorites must carry current catalog state, got %s", list[0].Price)
}

func TestRehydrationRequiresLoadedCatalog(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.SaveFavoriteIDs(ctx, "s1", []int64{1, 2}))

	mock := remote.NewMockWithData(config.RemoteConfig{}, testProducts(), nil)
	cat, err := catalog.NewService(mock)
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{Catalog: cat, Store: store})
	require.NoError(t, err)

	// A touch before the catalog is ready must refuse, not resolve the set
	// against nothing and flip the gate.
	_, err = svc.IDs(ctx, "s1")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())

	require.NoError(t, cat.Load(ctx))
	require.NoError(t, svc.Add(ctx, "s1", 1))

	persisted, err := store.LoadFavoriteIDs(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, persisted, "early touch must not gut the stored set")
}

func TestPersistGateSurvivesReadOnlyTouch(t *testing.T) {
	// A read before any mutation must not overwrite the persisted ids with
	// an empty set — the exact failure the initialized gate exists for.
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	require.NoError(t, store.SaveFavoriteIDs(ctx, "s1", []int64{1, 2}))

	svc := newTestService(t, store)
	_, err := svc.IDs(ctx, "s1")
	require.NoError(t, err)

	persisted, err := store.LoadFavoriteIDs(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, persisted)
}

func TestMutationsPersistIDsOnly(t *testing.T) {
	ctx := context.Background()
	store := localstore.NewMemoryStore()
	svc := newTestService(t, store)

	require.NoError(t, svc.Add(ctx, "s1", 1))
	require.NoError(t, svc.Add(ctx, "s1", 2))
	require.NoError(t, svc.Remove(ctx, "s1", 1))

	persisted, err := store.LoadFavoriteIDs(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, []int64{2}, persisted)
}
