package remote

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/andremartins/storefront-backend/pkg/config"
	"github.com/andremartins/storefront-backend/pkg/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Client is the catalog backend surface. The mock implementation below is the
// development stand-in; a real upstream would satisfy the same interface.
type Client interface {
	Products(ctx context.Context) ([]Product, error)
	ProductByID(ctx context.Context, id int64) (*Product, error)
	ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error)
	FeaturedProducts(ctx context.Context) ([]Product, error)
	OnSaleProducts(ctx context.Context) ([]Product, error)
	BestSellerProducts(ctx context.Context) ([]Product, error)

	Categories(ctx context.Context) ([]Category, error)
	CategoryByID(ctx context.Context, id int64) (*Category, error)
	FeaturedCategories(ctx context.Context) ([]Category, error)

	CreateProduct(ctx context.Context, input CreateProductInput) (Product, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*Product, error)
	DeleteProduct(ctx context.Context, id int64) (bool, error)

	SubmitOrder(ctx context.Context, customer types.CustomerInfo, items []CartItem) (OrderReceipt, error)
}

// Mock serves catalog reads and admin writes from process memory, sleeping a
// configurable simulated latency on every read so loading paths get exercised.
type Mock struct {
	mu         sync.RWMutex
	products   []Product
	categories []Category
	orders     []Order
	latencyMin time.Duration
	latencyMax time.Duration
}

// NewMock builds a mock backend seeded with the default catalog.
func NewMock(cfg config.RemoteConfig) *Mock {
	return NewMockWithData(cfg, seedProducts(), seedCategories())
}

// NewMockWithData builds a mock backend over the given collections.
func NewMockWithData(cfg config.RemoteConfig, products []Product, categories []Category) *Mock {
	return &Mock{
		products:   products,
		categories: categories,
		latencyMin: cfg.LatencyMin,
		latencyMax: cfg.LatencyMax,
	}
}

// simulateLatency blocks for a random duration in [min, max], honoring ctx.
func (m *Mock) simulateLatency(ctx context.Context) error {
	if m.latencyMax <= 0 {
		return ctx.Err()
	}
	delay := m.latencyMin
	if span := m.latencyMax - m.latencyMin; span > 0 {
		delay += time.Duration(rand.Int63n(int64(span) + 1))
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Products returns a copy of the full product list.
func (m *Mock) Products(ctx context.Context) ([]Product, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneProducts(m.products), nil
}

// ProductByID returns the product or nil when it does not exist.
func (m *Mock) ProductByID(ctx context.Context, id int64) (*Product, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.products {
		if p.ID == id {
			clone := p.Clone()
			return &clone, nil
		}
	}
	return nil, nil
}

// ProductsByCategory filters by category id.
func (m *Mock) ProductsByCategory(ctx context.Context, categoryID int64) ([]Product, error) {
	return m.filterProducts(ctx, func(p Product) bool { return p.CategoryID == categoryID })
}

// FeaturedProducts returns products flagged as featured.
func (m *Mock) FeaturedProducts(ctx context.Context) ([]Product, error) {
	return m.filterProducts(ctx, func(p Product) bool { return p.Featured })
}

// OnSaleProducts returns products flagged as on sale.
func (m *Mock) OnSaleProducts(ctx context.Context) ([]Product, error) {
	return m.filterProducts(ctx, func(p Product) bool { return p.OnSale })
}

// BestSellerProducts returns products flagged as best sellers.
func (m *Mock) BestSellerProducts(ctx context.Context) ([]Product, error) {
	return m.filterProducts(ctx, func(p Product) bool { return p.BestSeller })
}

func (m *Mock) filterProducts(ctx context.Context, keep func(Product) bool) ([]Product, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Product, 0)
	for _, p := range m.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Categories returns a copy of the category list.
func (m *Mock) Categories(ctx context.Context) ([]Category, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Category(nil), m.categories...), nil
}

// CategoryByID returns the category or nil when it does not exist.
func (m *Mock) CategoryByID(ctx context.Context, id int64) (*Category, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.categories {
		if c.ID == id {
			clone := c
			return &clone, nil
		}
	}
	return nil, nil
}

// FeaturedCategories returns categories flagged as featured.
func (m *Mock) FeaturedCategories(ctx context.Context) ([]Category, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Category, 0)
	for _, c := range m.categories {
		if c.Featured {
			out = append(out, c)
		}
	}
	return out, nil
}

// CreateProduct assigns max(id)+1 (1 when the list is empty) and appends.
func (m *Mock) CreateProduct(ctx context.Context, input CreateProductInput) (Product, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return Product{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var nextID int64 = 1
	for _, p := range m.products {
		if p.ID >= nextID {
			nextID = p.ID + 1
		}
	}

	product := Product{
		ID:          nextID,
		Name:        input.Name,
		Description: input.Description,
		Brand:       input.Brand,
		Price:       input.Price,
		OldPrice:    input.OldPrice,
		CategoryID:  input.CategoryID,
		Images:      append([]string(nil), input.Images...),
		Featured:    input.Featured,
		OnSale:      input.OnSale,
		BestSeller:  input.BestSeller,
		Stock:       input.Stock,
		Rating:      input.Rating,
		ReviewCount: input.ReviewCount,
	}
	m.products = append(m.products, product)
	return product.Clone(), nil
}

// UpdateProduct applies the patch and returns nil when the id is unknown.
func (m *Mock) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*Product, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].ID != id {
			continue
		}
		applyProductPatch(&m.products[i], input)
		clone := m.products[i].Clone()
		return &clone, nil
	}
	return nil, nil
}

// DeleteProduct removes the product and reports whether it existed.
func (m *Mock) DeleteProduct(ctx context.Context, id int64) (bool, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.products {
		if m.products[i].ID == id {
			m.products = append(m.products[:i], m.products[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// SubmitOrder always succeeds in the mock. This is the seam where a real
// implementation would perform network I/O, validation and error propagation.
func (m *Mock) SubmitOrder(ctx context.Context, customer types.CustomerInfo, items []CartItem) (OrderReceipt, error) {
	if err := m.simulateLatency(ctx); err != nil {
		return OrderReceipt{}, err
	}

	total := decimal.Zero
	cloned := make([]CartItem, 0, len(items))
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		cloned = append(cloned, CartItem{Product: item.Product.Clone(), Quantity: item.Quantity})
	}

	order := Order{
		ID:              uuid.NewString(),
		Items:           cloned,
		Total:           total,
		Status:          OrderStatusPending,
		CreatedAt:       time.Now().UTC(),
		Customer:        customer,
		ShippingAddress: customer.Address.Normalized(),
	}

	m.mu.Lock()
	m.orders = append(m.orders, order)
	m.mu.Unlock()

	return OrderReceipt{Success: true, OrderID: order.ID}, nil
}

// Orders exposes submitted orders for inspection.
func (m *Mock) Orders() []Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Order(nil), m.orders...)
}

func applyProductPatch(p *Product, input UpdateProductInput) {
	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Brand != nil {
		p.Brand = *input.Brand
	}
	if input.Price != nil {
		p.Price = *input.Price
	}
	if input.OldPrice != nil {
		v := *input.OldPrice
		p.OldPrice = &v
	}
	if input.CategoryID != nil {
		p.CategoryID = *input.CategoryID
	}
	if input.Images != nil {
		p.Images = append([]string(nil), (*input.Images)...)
	}
	if input.Featured != nil {
		p.Featured = *input.Featured
	}
	if input.OnSale != nil {
		p.OnSale = *input.OnSale
	}
	if input.BestSeller != nil {
		p.BestSeller = *input.BestSeller
	}
	if input.Stock != nil {
		p.Stock = *input.Stock
	}
	if input.Rating != nil {
		p.Rating = *input.Rating
	}
	if input.ReviewCount != nil {
		p.ReviewCount = *input.ReviewCount
	}
}

func cloneProducts(in []Product) []Product {
	out := make([]Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}
