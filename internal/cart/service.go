package cart

import (
	"context"
	"sync"

	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/localstore"
	"github.com/andremartins/storefront-backend/internal/remote"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/shopspring/decimal"
)

// Summary is the cart view returned by every operation: the line items plus
// the derived totals.
type Summary struct {
	Items     []remote.CartItem `json:"items"`
	Total     decimal.Decimal   `json:"total"`
	ItemCount int               `json:"item_count"`
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Catalog catalog.Service
	Store   localstore.Store
}

// Service owns the session-scoped cart. Lines are unique per product id and
// quantities stay within [1, stock of the frozen snapshot]; every mutation
// persists the full cart before returning.
type Service interface {
	Get(ctx context.Context, sessionID string) (Summary, error)
	AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (Summary, error)
	UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Summary, error)
	RemoveItem(ctx context.Context, sessionID string, productID int64) (Summary, error)
	Clear(ctx context.Context, sessionID string) error
	Total(ctx context.Context, sessionID string) (decimal.Decimal, error)
	ItemCount(ctx context.Context, sessionID string) (int, error)
}

type session struct {
	mu     sync.Mutex
	items  []remote.CartItem
	loaded bool
}

type service struct {
	catalog catalog.Service
	store   localstore.Store

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Catalog == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog service is required")
	}
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "state store is required")
	}
	return &service{
		catalog:  params.Catalog,
		store:    params.Store,
		sessions: map[string]*session{},
	}, nil
}

// withSession runs fn while holding the session lock, rehydrating persisted
// lines on first touch. Mutations on the same session are serialized here, so
// concurrent adds cannot race on the same product line.
func (s *service) withSession(ctx context.Context, sessionID string, fn func(sess *session) error) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.loaded {
		items, err := s.store.LoadCart(ctx, sessionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
		}
		sess.items = items
		sess.loaded = true
	}

	return fn(sess)
}

func (s *service) persist(ctx context.Context, sessionID string, sess *session) error {
	if err := s.store.SaveCart(ctx, sessionID, sess.items); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting cart")
	}
	return nil
}

// Get returns the current cart summary.
func (s *service) Get(ctx context.Context, sessionID string) (Summary, error) {
	var out Summary
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		out = summarize(sess.items)
		return nil
	})
	return out, err
}

// AddItem creates a line for the product or increments the existing one.
// The resulting quantity may not exceed the snapshot's stock.
func (s *service) AddItem(ctx context.Context, sessionID string, productID int64, quantity int) (Summary, error) {
	if quantity < 1 {
		return Summary{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	var out Summary
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		for i := range sess.items {
			if sess.items[i].Product.ID != productID {
				continue
			}
			next := sess.items[i].Quantity + quantity
			if next > sess.items[i].Product.Stock {
				return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for product").
					WithDetails(map[string]any{"product_id": productID, "stock": sess.items[i].Product.Stock})
			}
			sess.items[i].Quantity = next
			if err := s.persist(ctx, sessionID, sess); err != nil {
				return err
			}
			out = summarize(sess.items)
			return nil
		}

		product, ok := s.catalog.ProductByID(productID)
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if quantity > product.Stock {
			return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for product").
				WithDetails(map[string]any{"product_id": productID, "stock": product.Stock})
		}

		sess.items = append(sess.items, remote.CartItem{Product: product.Clone(), Quantity: quantity})
		if err := s.persist(ctx, sessionID, sess); err != nil {
			return err
		}
		out = summarize(sess.items)
		return nil
	})
	return out, err
}

// UpdateQuantity replaces a line's quantity. A quantity of zero or less
// removes the line, same as RemoveItem.
func (s *service) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (Summary, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, sessionID, productID)
	}

	var out Summary
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		for i := range sess.items {
			if sess.items[i].Product.ID != productID {
				continue
			}
			if quantity > sess.items[i].Product.Stock {
				return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for product").
					WithDetails(map[string]any{"product_id": productID, "stock": sess.items[i].Product.Stock})
			}
			sess.items[i].Quantity = quantity
			if err := s.persist(ctx, sessionID, sess); err != nil {
				return err
			}
			out = summarize(sess.items)
			return nil
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	})
	return out, err
}

// RemoveItem deletes the line if present; absence is not an error.
func (s *service) RemoveItem(ctx context.Context, sessionID string, productID int64) (Summary, error) {
	var out Summary
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		for i := range sess.items {
			if sess.items[i].Product.ID == productID {
				sess.items = append(sess.items[:i], sess.items[i+1:]...)
				break
			}
		}
		if err := s.persist(ctx, sessionID, sess); err != nil {
			return err
		}
		out = summarize(sess.items)
		return nil
	})
	return out, err
}

// Clear empties all lines.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	return s.withSession(ctx, sessionID, func(sess *session) error {
		sess.items = []remote.CartItem{}
		return s.persist(ctx, sessionID, sess)
	})
}

// Total sums price times quantity over the frozen per-line snapshots.
func (s *service) Total(ctx context.Context, sessionID string) (decimal.Decimal, error) {
	summary, err := s.Get(ctx, sessionID)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.Total, nil
}

// ItemCount sums quantities, which is distinct from the line count.
func (s *service) ItemCount(ctx context.Context, sessionID string) (int, error) {
	summary, err := s.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return summary.ItemCount, nil
}

func summarize(items []remote.CartItem) Summary {
	total := decimal.Zero
	count := 0
	cloned := make([]remote.CartItem, 0, len(items))
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		count += item.Quantity
		cloned = append(cloned, remote.CartItem{Product: item.Product.Clone(), Quantity: item.Quantity})
	}
	return Summary{Items: cloned, Total: total, ItemCount: count}
}
