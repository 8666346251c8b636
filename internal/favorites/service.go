package favorites

import (
	"context"
	"sync"

	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/localstore"
	"github.com/andremartins/storefront-backend/internal/remote"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
)

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Catalog catalog.Service
	Store   localstore.Store
}

// Service owns the session-scoped favorite set. Only product ids are
// persisted; snapshots are rehydrated from the catalog on first touch, so
// favorites always reflect current catalog state after a reload.
type Service interface {
	List(ctx context.Context, sessionID string) ([]remote.Product, error)
	IDs(ctx context.Context, sessionID string) ([]int64, error)
	IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, error)
	Add(ctx context.Context, sessionID string, productID int64) error
	Remove(ctx context.Context, sessionID string, productID int64) error
	Toggle(ctx context.Context, sessionID string, productID int64) (bool, error)
}

type session struct {
	mu       sync.Mutex
	order    []int64
	products map[int64]remote.Product

	// initialized gates persistence: until the persisted ids have been
	// rehydrated, saving would overwrite stored state with an empty set.
	initialized bool
}

type service struct {
	catalog catalog.Service
	store   localstore.Store

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService builds a favorites service with the required dependencies.
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

// withSession runs fn holding the session lock. First touch rehydrates the
// persisted ids through the catalog; ids that no longer resolve are silently
// dropped. Rehydration refuses to run against a catalog that never loaded —
// resolving against an empty catalog would drop every id and the next persist
// would overwrite the stored set with the gutted one. The initialized flag
// flips only after rehydration completes.
func (s *service) withSession(ctx context.Context, sessionID string, fn func(sess *session) error) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{products: map[int64]remote.Product{}}
		s.sessions[sessionID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if !sess.initialized {
		if !s.catalog.Loaded() {
			return pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded")
		}
		ids, err := s.store.LoadFavoriteIDs(ctx, sessionID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading favorites")
		}
		for _, id := range ids {
			product, ok := s.catalog.ProductByID(id)
			if !ok {
				continue
			}
			if _, dup := sess.products[id]; dup {
				continue
			}
			sess.order = append(sess.order, id)
			sess.products[id] = product
		}
		sess.initialized = true
	}

	return fn(sess)
}

func (s *service) persist(ctx context.Context, sessionID string, sess *session) error {
	if !sess.initialized {
		return nil
	}
	ids := append([]int64(nil), sess.order...)
	if err := s.store.SaveFavoriteIDs(ctx, sessionID, ids); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persisting favorites")
	}
	return nil
}

// List returns the favorited product snapshots in insertion order.
func (s *service) List(ctx context.Context, sessionID string) ([]remote.Product, error) {
	var out []remote.Product
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		out = make([]remote.Product, 0, len(sess.order))
		for _, id := range sess.order {
			out = append(out, sess.products[id].Clone())
		}
		return nil
	})
	return out, err
}

// IDs returns only the favorited product ids.
func (s *service) IDs(ctx context.Context, sessionID string) ([]int64, error) {
	var out []int64
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		out = append([]int64{}, sess.order...)
		return nil
	})
	return out, err
}

// IsFavorite reports membership for the product id.
func (s *service) IsFavorite(ctx context.Context, sessionID string, productID int64) (bool, error) {
	var out bool
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		_, out = sess.products[productID]
		return nil
	})
	return out, err
}

// Add inserts the product into the favorite set. Idempotent.
func (s *service) Add(ctx context.Context, sessionID string, productID int64) error {
	return s.withSession(ctx, sessionID, func(sess *session) error {
		return s.addLocked(ctx, sessionID, sess, productID)
	})
}

// Remove drops the product from the set. Idempotent.
func (s *service) Remove(ctx context.Context, sessionID string, productID int64) error {
	return s.withSession(ctx, sessionID, func(sess *session) error {
		return s.removeLocked(ctx, sessionID, sess, productID)
	})
}

// Toggle removes the product if present, adds it otherwise, and returns the
// resulting membership. Atomic from the caller's perspective.
func (s *service) Toggle(ctx context.Context, sessionID string, productID int64) (bool, error) {
	var member bool
	err := s.withSession(ctx, sessionID, func(sess *session) error {
		if _, ok := sess.products[productID]; ok {
			member = false
			return s.removeLocked(ctx, sessionID, sess, productID)
		}
		member = true
		return s.addLocked(ctx, sessionID, sess, productID)
	})
	if err != nil {
		return false, err
	}
	return member, nil
}

func (s *service) addLocked(ctx context.Context, sessionID string, sess *session, productID int64) error {
	if _, ok := sess.products[productID]; ok {
		return nil
	}
	product, ok := s.catalog.ProductByID(productID)
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	sess.order = append(sess.order, productID)
	sess.products[productID] = product
	return s.persist(ctx, sessionID, sess)
}

func (s *service) removeLocked(ctx context.Context, sessionID string, sess *session, productID int64) error {
	if _, ok := sess.products[productID]; !ok {
		return nil
	}
	delete(sess.products, productID)
	for i, id := range sess.order {
		if id == productID {
			sess.order = append(sess.order[:i], sess.order[i+1:]...)
			break
		}
	}
	return s.persist(ctx, sessionID, sess)
}
