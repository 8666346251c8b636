package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/andremartins/storefront-backend/internal/remote"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
)

// Service is the single source of truth for products and categories during a
// session. Views are fresh slices over the loaded state, never shared.
type Service interface {
	Load(ctx context.Context) error
	Refresh(ctx context.Context) error
	Loading() bool
	Loaded() bool

	Products() []remote.Product
	ProductByID(id int64) (remote.Product, bool)
	ProductsByCategory(categoryID int64) []remote.Product
	FeaturedProducts() []remote.Product
	BestSellers() []remote.Product
	OnSaleProducts() []remote.Product
	ProductsByBrand(brand string) []remote.Product
	AllBrands() []string
	SearchProducts(query string) []remote.Product

	Categories() []remote.Category
	CategoryByID(id int64) (remote.Category, bool)
	FeaturedCategories() []remote.Category
}

type service struct {
	remote remote.Client

	// fetchMu serializes fetches so a Load returning means the outcome is
	// real, not that another caller's fetch is still in flight.
	fetchMu   sync.Mutex
	attempted bool
	loadErr   error

	mu         sync.RWMutex
	products   []remote.Product
	categories []remote.Category
	loading    bool
	loaded     bool
}

// NewService builds a catalog service backed by the given remote client.
func NewService(client remote.Client) (Service, error) {
	if client == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "remote client is required")
	}
	return &service{remote: client}, nil
}

// Load fetches the catalog exactly once. Concurrent callers block until the
// in-flight fetch resolves and see its outcome; later calls return the first
// attempt's result without refetching. On failure the state stays empty and
// only an explicit Refresh retries.
func (s *service) Load(ctx context.Context) error {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	if s.attempted {
		return s.loadErr
	}
	s.attempted = true
	s.loadErr = s.fetch(ctx)
	return s.loadErr
}

// Refresh re-fetches the catalog regardless of prior state. This is the
// explicit trigger consumers call instead of implicit reactive recomputation.
func (s *service) Refresh(ctx context.Context) error {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	s.attempted = true
	s.loadErr = s.fetch(ctx)
	return s.loadErr
}

func (s *service) fetch(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	products, err := s.remote.Products(ctx)
	if err != nil {
		s.finishLoad(nil, nil, false)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading products")
	}
	categories, err := s.remote.Categories(ctx)
	if err != nil {
		s.finishLoad(nil, nil, false)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading categories")
	}

	s.finishLoad(products, categories, true)
	return nil
}

func (s *service) finishLoad(products []remote.Product, categories []remote.Category, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if !ok {
		s.products = nil
		s.categories = nil
		s.loaded = false
		return
	}
	s.products = products
	s.categories = categories
	s.loaded = true
}

// Loading reports whether a fetch is in flight.
func (s *service) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Loaded reports whether the catalog finished loading successfully.
func (s *service) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Products returns a fresh copy of the full product list in store order.
func (s *service) Products() []remote.Product {
	return s.filter(func(remote.Product) bool { return true })
}

// ProductByID reflects the latest loaded state.
func (s *service) ProductByID(id int64) (remote.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return remote.Product{}, false
}

func (s *service) ProductsByCategory(categoryID int64) []remote.Product {
	return s.filter(func(p remote.Product) bool { return p.CategoryID == categoryID })
}

func (s *service) FeaturedProducts() []remote.Product {
	return s.filter(func(p remote.Product) bool { return p.Featured })
}

func (s *service) BestSellers() []remote.Product {
	return s.filter(func(p remote.Product) bool { return p.BestSeller })
}

func (s *service) OnSaleProducts() []remote.Product {
	return s.filter(func(p remote.Product) bool { return p.OnSale })
}

func (s *service) ProductsByBrand(brand string) []remote.Product {
	return s.filter(func(p remote.Product) bool { return p.Brand == brand })
}

// AllBrands returns the distinct brands present in the catalog, ascending,
// case-sensitive per stored casing.
func (s *service) AllBrands() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := map[string]struct{}{}
	brands := make([]string, 0)
	for _, p := range s.products {
		if p.Brand == "" {
			continue
		}
		if _, ok := seen[p.Brand]; ok {
			continue
		}
		seen[p.Brand] = struct{}{}
		brands = append(brands, p.Brand)
	}
	sort.Strings(brands)
	return brands
}

// SearchProducts matches a case-insensitive substring against name,
// description, brand and resolved category name. An empty or whitespace-only
// query returns an empty sequence, not the full catalog.
func (s *service) SearchProducts(query string) []remote.Product {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return []remote.Product{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	categoryNames := make(map[int64]string, len(s.categories))
	for _, c := range s.categories {
		categoryNames[c.ID] = strings.ToLower(c.Name)
	}

	out := make([]remote.Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.Brand), needle) ||
			strings.Contains(categoryNames[p.CategoryID], needle) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// Categories returns a fresh copy of the category list.
func (s *service) Categories() []remote.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]remote.Category(nil), s.categories...)
}

func (s *service) CategoryByID(id int64) (remote.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return remote.Category{}, false
}

func (s *service) FeaturedCategories() []remote.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]remote.Category, 0)
	for _, c := range s.categories {
		if c.Featured {
			out = append(out, c)
		}
	}
	return out
}

func (s *service) filter(keep func(remote.Product) bool) []remote.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]remote.Product, 0)
	for _, p := range s.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}
