package orders

import (
	"context"
	"time"

	"github.com/andremartins/storefront-backend/internal/cart"
	"github.com/andremartins/storefront-backend/internal/remote"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/andremartins/storefront-backend/pkg/types"
)

// ServiceParams groups dependencies for the checkout service.
type ServiceParams struct {
	Cart   cart.Service
	Remote remote.Client
}

// Service turns the session cart into a submitted order.
type Service interface {
	Checkout(ctx context.Context, sessionID string, customer types.CustomerInfo) (*remote.Order, error)
}

type service struct {
	cart   cart.Service
	remote remote.Client
}

// NewService builds a checkout service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Cart == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart service is required")
	}
	if params.Remote == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "remote client is required")
	}
	return &service{cart: params.Cart, remote: params.Remote}, nil
}

// Checkout submits the current cart and clears it on success. The cart is
// left untouched when submission fails so the buyer can retry.
func (s *service) Checkout(ctx context.Context, sessionID string, customer types.CustomerInfo) (*remote.Order, error) {
	if err := customer.Address.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping address")
	}

	summary, err := s.cart.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(summary.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	receipt, err := s.remote.SubmitOrder(ctx, customer, summary.Items)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "submitting order")
	}

	if err := s.cart.Clear(ctx, sessionID); err != nil {
		return nil, err
	}

	order := &remote.Order{
		ID:              receipt.OrderID,
		UserID:          sessionID,
		Items:           summary.Items,
		Total:           summary.Total,
		Status:          remote.OrderStatusPending,
		CreatedAt:       time.Now().UTC(),
		Customer:        customer,
		ShippingAddress: customer.Address.Normalized(),
	}
	return order, nil
}
