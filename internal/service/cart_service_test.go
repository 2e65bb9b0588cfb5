package service_test

import (
	"context"
	"math"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCheckout
type MockCheckout struct {
	PlaceOrderFunc func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error)
}

func (m *MockCheckout) PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
	return m.PlaceOrderFunc(ctx, in)
}

type cartEnv struct {
	svc      service.CartService
	store    *cart.Store
	checkout *MockCheckout
	variant  uuid.UUID
	stock    int
	active   bool
}

func newCartEnv(t *testing.T) *cartEnv {
	t.Helper()
	env := &cartEnv{variant: uuid.New(), stock: 3, active: true, checkout: &MockCheckout{}}
	productID := uuid.New()
	blue := "Azul"

	repo := &repository.Repository{
		Variants: &MockVariantRepo{
			BatchGetStockFunc: func(ctx context.Context, ids []uuid.UUID) ([]repository.StockRow, error) {
				if len(ids) != 1 || ids[0] != env.variant {
					return nil, nil
				}
				return []repository.StockRow{{
					VariantID:   env.variant,
					ProductID:   productID,
					ProductName: "Funda",
					Price:       decimal.NewFromInt(100),
					Stock:       env.stock,
					Active:      env.active,
				}}, nil
			},
		},
		Products: &MockProductRepo{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
				return &models.Product{
					ID:       productID,
					Name:     "Funda",
					Slug:     "funda",
					Images:   models.StringList{"/img/funda.png"},
					Variants: []models.Variant{{ID: env.variant, ColorName: &blue}},
				}, nil
			},
		},
	}
	env.store = cart.NewStore(cart.NewMemoryPersistence())
	env.svc = service.NewCartService(repo, env.store, env.checkout, zap.NewNop())
	return env
}

func TestCartService_AddItem(t *testing.T) {
	env := newCartEnv(t)
	ctx := authed(uuid.New())

	c, err := env.svc.AddItem(ctx, env.variant, 2)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	l := c.Lines[0]
	assert.Equal(t, "Funda", l.ProductName)
	assert.Equal(t, "funda", l.ProductSlug)
	assert.Equal(t, "Azul", l.VariantLabel)
	assert.Equal(t, "/img/funda.png", l.Image)
	assert.True(t, c.Total().Equal(decimal.NewFromInt(200)))

	// 2 в корзине + 2 > остатка 3
	_, err = env.svc.AddItem(ctx, env.variant, 2)
	var ins *service.InsufficientStockError
	require.ErrorAs(t, err, &ins)
	assert.Equal(t, 4, ins.Lines[0].Requested)

	c, err = env.svc.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Quantity(env.variant))
}

func TestCartService_QuantityOverflow(t *testing.T) {
	env := newCartEnv(t)
	env.stock = math.MaxInt
	ctx := authed(uuid.New())

	_, err := env.svc.AddItem(ctx, env.variant, math.MaxInt)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = env.svc.AddItem(ctx, env.variant, service.MaxLineQuantity)
	require.NoError(t, err)

	_, err = env.svc.AddItem(ctx, env.variant, 1)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = env.svc.AddItem(ctx, env.variant, math.MaxInt)
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	c, err := env.svc.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, service.MaxLineQuantity, c.Quantity(env.variant))

	_, err = env.svc.SetItemQuantity(ctx, env.variant, service.MaxLineQuantity+1)
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestCartService_UnknownOrInactive(t *testing.T) {
	env := newCartEnv(t)
	ctx := authed(uuid.New())

	_, err := env.svc.AddItem(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, service.ErrProductNotFound)

	env.active = false
	_, err = env.svc.AddItem(ctx, env.variant, 1)
	assert.ErrorIs(t, err, service.ErrProductNotFound)
}

func TestCartService_SetQuantityAndRemove(t *testing.T) {
	env := newCartEnv(t)
	ctx := authed(uuid.New())

	_, err := env.svc.SetItemQuantity(ctx, env.variant, 1)
	assert.ErrorIs(t, err, service.ErrVariantNotFound)

	_, err = env.svc.AddItem(ctx, env.variant, 1)
	require.NoError(t, err)

	c, err := env.svc.SetItemQuantity(ctx, env.variant, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Quantity(env.variant))

	_, err = env.svc.SetItemQuantity(ctx, env.variant, 4)
	assert.ErrorIs(t, err, service.ErrInsufficientStock)

	c, err = env.svc.SetItemQuantity(ctx, env.variant, 0)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty())
}

func TestCartService_Checkout(t *testing.T) {
	env := newCartEnv(t)
	ctx := authed(uuid.New())

	_, err := env.svc.Checkout(ctx, shipping)
	assert.ErrorIs(t, err, service.ErrEmptyCart)

	_, err = env.svc.AddItem(ctx, env.variant, 2)
	require.NoError(t, err)

	env.checkout.PlaceOrderFunc = func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
		require.Len(t, in.Items, 1)
		assert.Equal(t, env.variant, in.Items[0].VariantID)
		assert.Equal(t, 2, in.Items[0].Quantity)
		return &service.PlacedOrder{Order: &models.Order{ID: uuid.New()}}, nil
	}
	placed, err := env.svc.Checkout(ctx, shipping)
	require.NoError(t, err)
	assert.NotNil(t, placed.Order)

	c, err := env.svc.GetCart(ctx)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "cart must be cleared after checkout")
}

func TestCartService_CheckoutFailureKeepsCart(t *testing.T) {
	env := newCartEnv(t)
	ctx := authed(uuid.New())
	_, err := env.svc.AddItem(ctx, env.variant, 1)
	require.NoError(t, err)

	env.checkout.PlaceOrderFunc = func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
		return nil, &service.StockConflictError{VariantID: env.variant, Requested: 1}
	}
	_, err = env.svc.Checkout(ctx, shipping)
	assert.ErrorIs(t, err, service.ErrStockConflict)

	c, err := env.svc.GetCart(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Quantity(env.variant))
}

func TestCartService_Unauthenticated(t *testing.T) {
	env := newCartEnv(t)
	_, err := env.svc.GetCart(context.Background())
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}
