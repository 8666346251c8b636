package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/andremartins/storefront-backend/internal/remote"
	"github.com/andremartins/storefront-backend/pkg/config"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/andremartins/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
)

func newLoadedService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(remote.NewMock(config.RemoteConfig{}))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("loading catalog: %v", err)
	}
	return svc
}

type failingRemote struct {
	remote.Client
}

func (f failingRemote) Products(ctx context.Context) ([]remote.Product, error) {
	return nil, errors.New("upstream down")
}

func (f failingRemote) SubmitOrder(ctx context.Context, customer types.CustomerInfo, items []remote.CartItem) (remote.OrderReceipt, error) {
	return remote.OrderReceipt{}, errors.New("upstream down")
}

func TestLoadFailureLeavesStateEmpty(t *testing.T) {
	svc, err := NewService(failingRemote{})
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	loadErr := svc.Load(context.Background())
	if loadErr == nil {
		t.Fatal("expected load error")
	}
	if typed := pkgerrors.As(loadErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", loadErr)
	}
	if svc.Loaded() {
		t.Fatal("expected unloaded state after failure")
	}
	if got := len(svc.Products()); got != 0 {
		t.Fatalf("expected empty products, got %d", got)
	}
}

func TestLoadRunsOncePerSession(t *testing.T) {
	svc := newLoadedService(t)
	before := len(svc.Products())

	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("second load: %v", err)
	}
	if len(svc.Products()) != before {
		t.Fatal("second load changed state")
	}
}

func TestConcurrentLoadReturnsOnlyWhenReady(t *testing.T) {
	svc, err := NewService(remote.NewMock(config.RemoteConfig{
		LatencyMin: 20 * time.Millisecond,
		LatencyMax: 30 * time.Millisecond,
	}))
	if err != nil {
		t.Fatalf("building service: %v", err)
	}

	// Every caller must come back with a ready catalog, including the ones
	// that arrive while the first fetch is still in flight.
	const callers = 4
	counts := make(chan int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Load(context.Background()); err != nil {
				counts <- -1
				return
			}
			counts <- len(svc.Products())
		}()
	}
	wg.Wait()
	close(counts)

	for got := range counts {
		if got <= 0 {
			t.Fatalf("Load returned before the catalog was ready (saw %d products)", got)
		}
	}
}

func TestProductByID(t *testing.T) {
	svc := newLoadedService(t)

	p, ok := svc.ProductByID(1)
	if !ok {
		t.Fatal("expected product 1")
	}
	if p.Name == "" {
		t.Fatal("expected populated product")
	}

	if _, ok := svc.ProductByID(9999); ok {
		t.Fatal("expected not-found for unknown id")
	}
}

func TestFiltersPreserveOrderAndReturnFreshSlices(t *testing.T) {
	svc := newLoadedService(t)

	featured := svc.FeaturedProducts()
	for _, p := range featured {
		if !p.Featured {
			t.Fatalf("non-featured product %d in featured view", p.ID)
		}
	}
	for i := 1; i < len(featured); i++ {
		if featured[i].ID < featured[i-1].ID {
			t.Fatal("store ordering not preserved")
		}
	}

	featured[0].Name = "mutated"
	again := svc.FeaturedProducts()
	if again[0].Name == "mutated" {
		t.Fatal("filter returned a shared mutable view")
	}

	for _, p := range svc.OnSaleProducts() {
		if !p.OnSale {
			t.Fatalf("product %d not on sale", p.ID)
		}
	}
	for _, p := range svc.BestSellers() {
		if !p.BestSeller {
			t.Fatalf("product %d not a best seller", p.ID)
		}
	}
	for _, p := range svc.ProductsByCategory(2) {
		if p.CategoryID != 2 {
			t.Fatalf("product %d outside category 2", p.ID)
		}
	}
	for _, p := range svc.ProductsByBrand("Vortex") {
		if p.Brand != "Vortex" {
			t.Fatalf("product %d has wrong brand", p.ID)
		}
	}
}

func TestAllBrandsSortedDistinct(t *testing.T) {
	svc := newLoadedService(t)

	brands := svc.AllBrands()
	if len(brands) == 0 {
		t.Fatal("expected brands")
	}
	seen := map[string]bool{}
	for i, b := range brands {
		if seen[b] {
			t.Fatalf("duplicate brand %s", b)
		}
		seen[b] = true
		if i > 0 && brands[i-1] > b {
			t.Fatal("brands not sorted ascending")
		}
	}
}

func TestSearchEmptyQueryContract(t *testing.T) {
	svc := newLoadedService(t)

	if got := svc.SearchProducts(""); len(got) != 0 {
		t.Fatalf("empty query must return empty slice, got %d", len(got))
	}
	if got := svc.SearchProducts("   "); len(got) != 0 {
		t.Fatalf("whitespace query must return empty slice, got %d", len(got))
	}
}

func TestSearchMatchesFields(t *testing.T) {
	svc := newLoadedService(t)

	if got := svc.SearchProducts("RUNNER"); len(got) == 0 {
		t.Fatal("expected case-insensitive name match")
	}
	if got := svc.SearchProducts("vortex"); len(got) == 0 {
		t.Fatal("expected brand match")
	}
	if got := svc.SearchProducts("corrida"); len(got) == 0 {
		t.Fatal("expected category name match")
	}
	if got := svc.SearchProducts("amortecimento"); len(got) == 0 {
		t.Fatal("expected description match")
	}
	if got := svc.SearchProducts("zzz-no-such-thing"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestRefreshPicksUpRemoteChanges(t *testing.T) {
	mock := remote.NewMock(config.RemoteConfig{})
	svc, err := NewService(mock)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("loading: %v", err)
	}
	before := len(svc.Products())

	if _, err := mock.CreateProduct(context.Background(), remote.CreateProductInput{
		Name: "Novo Tênis", Price: decimal.RequireFromString("100"), Stock: 1,
	}); err != nil {
		t.Fatalf("creating product: %v", err)
	}

	if len(svc.Products()) != before {
		t.Fatal("state changed without an explicit refresh")
	}
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refreshing: %v", err)
	}
	if len(svc.Products()) != before+1 {
		t.Fatal("refresh did not pick up the new product")
	}
}

func TestCategoryLookups(t *testing.T) {
	svc := newLoadedService(t)

	if _, ok := svc.CategoryByID(1); !ok {
		t.Fatal("expected category 1")
	}
	if _, ok := svc.CategoryByID(999); ok {
		t.Fatal("expected not-found for unknown category")
	}
	for _, c := range svc.FeaturedCategories() {
		if !c.Featured {
			t.Fatalf("category %d not featured", c.ID)
		}
	}
}
