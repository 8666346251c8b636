package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/andremartins/storefront-backend/internal/cart"
	"github.com/andremartins/storefront-backend/internal/catalog"
	"github.com/andremartins/storefront-backend/internal/localstore"
	"github.com/andremartins/storefront-backend/internal/remote"
	"github.com/andremartins/storefront-backend/pkg/config"
	pkgerrors "github.com/andremartins/storefront-backend/pkg/errors"
	"github.com/andremartins/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testCustomer() types.CustomerInfo {
	return types.CustomerInfo{
		Name:  "João Pereira",
		Email: "joao@example.com",
		Address: types.Address{
			Line1:      "Av. Paulista 1000",
			City:       "São Paulo",
			State:      "SP",
			PostalCode: "01310-100",
		},
	}
}

func newCheckoutStack(t *testing.T) (Service, cart.Service, *remote.Mock) {
	t.Helper()
	mock := remote.NewMockWithData(config.RemoteConfig{}, []remote.Product{
		{ID: 10, Name: "Tênis X", Price: decimal.RequireFromString("100"), Stock: 3},
	}, nil)
	cat, err := catalog.NewService(mock)
	require.NoError(t, err)
	require.NoError(t, cat.Load(context.Background()))

	cartSvc, err := cart.NewService(cart.ServiceParams{Catalog: cat, Store: localstore.NewMemoryStore()})
	require.NoError(t, err)
	svc, err := NewService(ServiceParams{Cart: cartSvc, Remote: mock})
	require.NoError(t, err)
	return svc, cartSvc, mock
}

func TestCheckoutSubmitsAndClearsCart(t *testing.T) {
	ctx := context.Background()
	svc, cartSvc, mock := newCheckoutStack(t)

	_, err := cartSvc.AddItem(ctx, "s1", 10, 2)
	require.NoError(t, err)

	order, err := svc.Checkout(ctx, "s1", testCustomer())
	require.NoError(t, err)
	require.NotEmpty(t, order.ID)
	require.Equal(t, remote.OrderStatusPending, order.Status)
	require.True(t, order.Total.Equal(decimal.RequireFromString("200")))
	require.Len(t, order.Items, 1)

	count, err := cartSvc.ItemCount(ctx, "s1")
	require.NoError(t, err)
	require.Zero(t, count, "cart must be empty after checkout")

	require.Len(t, mock.Orders(), 1)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _, _ := newCheckoutStack(t)

	_, err := svc.Checkout(context.Background(), "s1", testCustomer())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestCheckoutRejectsBadAddress(t *testing.T) {
	svc, cartSvc, _ := newCheckoutStack(t)
	ctx := context.Background()

	_, err := cartSvc.AddItem(ctx, "s1", 10, 1)
	require.NoError(t, err)

	customer := testCustomer()
	customer.Address.City = ""
	_, err = svc.Checkout(ctx, "s1", customer)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())

	count, err := cartSvc.ItemCount(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 1, count, "cart must survive a failed checkout")
}

type failingSubmitter struct {
	remote.Client
}

func (f failingSubmitter) SubmitOrder(ctx context.Context, customer types.CustomerInfo, items []remote.CartItem) (remote.OrderReceipt, error) {
	return remote.OrderReceipt{}, errors.New("upstream down")
}

func TestCheckoutKeepsCartWhenSubmitFails(t *testing.T) {
	ctx := context.Background()
	_, cartSvc, mock := newCheckoutStack(t)

	svc, err := NewService(ServiceParams{Cart: cartSvc, Remote: failingSubmitter{Client: mock}})
	require.NoError(t, err)

	_, err = cartSvc.AddItem(ctx, "s1", 10, 1)
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "s1", testCustomer())
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeDependency, typed.Code())

	count, err := cartSvc.ItemCount(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
