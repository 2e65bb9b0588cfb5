package service_test

import (
	"context"
	"errors"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func adminCtx() context.Context {
	return service.WithIdentity(context.Background(), service.Identity{
		UserID: uuid.New(),
		Email:  "admin@example.com",
		Role:   service.RoleAdmin,
	})
}

type adminEnv struct {
	svc        service.AdminService
	products   *MockProductRepo
	variants   *MockVariantRepo
	orders     *MockOrderRepo
	items      *MockOrderItemRepo
	categories *MockCategoryRepo
	partners   *MockPartnerRepo
	bus        *recordingBus
	cache      *MockCatalogCache
}

func newAdminEnv() *adminEnv {
	env := &adminEnv{
		products:   &MockProductRepo{},
		variants:   &MockVariantRepo{},
		orders:     &MockOrderRepo{},
		items:      &MockOrderItemRepo{},
		categories: &MockCategoryRepo{},
		partners:   &MockPartnerRepo{},
		bus:        &recordingBus{},
		cache:      &MockCatalogCache{},
	}
	repo := &repository.Repository{
		Products:   env.products,
		Variants:   env.variants,
		Orders:     env.orders,
		OrderItems: env.items,
		Categories: env.categories,
		Partners:   env.partners,
	}
	env.svc = service.NewAdminService(repo, env.bus, env.cache, zap.NewNop())
	return env
}

func TestAdminService_RequiresAdmin(t *testing.T) {
	env := newAdminEnv()

	_, err := env.svc.CreateCategory(authed(uuid.New()), service.CategoryInput{Name: "Fundas"})
	assert.ErrorIs(t, err, service.ErrForbidden)

	err = env.svc.DeleteProduct(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrUnauthenticated)

	_, err = env.svc.ListOrders(authed(uuid.New()), service.AdminOrderQuery{})
	assert.ErrorIs(t, err, service.ErrForbidden)
}

func TestAdminService_UpdateOrderStatus(t *testing.T) {
	orderID, customerID := uuid.New(), uuid.New()
	newOrder := func() *models.Order {
		return &models.Order{
			ID:         orderID,
			CustomerID: customerID,
			Status:     models.OrderStatusPending,
			Customer:   &models.Customer{ID: customerID, Email: "ana@example.com", FullName: "Ana Pérez"},
		}
	}

	t.Run("change writes and publishes", func(t *testing.T) {
		env := newAdminEnv()
		env.orders.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Order, error) { return newOrder(), nil }
		var written models.OrderStatus
		env.orders.UpdateStatusFunc = func(ctx context.Context, id uuid.UUID, status models.OrderStatus) (bool, error) {
			written = status
			return true, nil
		}

		ord, err := env.svc.UpdateOrderStatus(adminCtx(), orderID, models.OrderStatusShipped)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, ord.Status)
		assert.Equal(t, models.OrderStatusShipped, written)

		require.Len(t, env.bus.changed, 1)
		ev := env.bus.changed[0]
		assert.Equal(t, orderID, ev.OrderID)
		assert.Equal(t, models.OrderStatusPending, ev.From)
		assert.Equal(t, models.OrderStatusShipped, ev.To)
		assert.Equal(t, "ana@example.com", ev.Email)
		assert.Equal(t, "Ana Pérez", ev.FullName)
	})

	t.Run("same status is a no-op", func(t *testing.T) {
		env := newAdminEnv()
		env.orders.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Order, error) { return newOrder(), nil }
		env.orders.UpdateStatusFunc = func(ctx context.Context, id uuid.UUID, status models.OrderStatus) (bool, error) {
			t.Fatal("status must not be written")
			return false, nil
		}

		ord, err := env.svc.UpdateOrderStatus(adminCtx(), orderID, models.OrderStatusPending)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusPending, ord.Status)
		assert.Empty(t, env.bus.changed)
	})

	t.Run("any to any", func(t *testing.T) {
		env := newAdminEnv()
		env.orders.GetByIDFunc = func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			o := newOrder()
			o.Status = models.OrderStatusDelivered
			return o, nil
		}
		_, err := env.svc.UpdateOrderStatus(adminCtx(), orderID, models.OrderStatusPending)
		require.NoError(t, err)
		require.Len(t, env.bus.changed, 1)
		assert.Equal(t, models.OrderStatusDelivered, env.bus.changed[0].From)
	})

	t.Run("invalid status", func(t *testing.T) {
		env := newAdminEnv()
		_, err := env.svc.UpdateOrderStatus(adminCtx(), orderID, models.OrderStatus("cancelled"))
		assert.ErrorIs(t, err, service.ErrInvalidStatus)
	})

	t.Run("unknown order", func(t *testing.T) {
		env := newAdminEnv()
		_, err := env.svc.UpdateOrderStatus(adminCtx(), orderID, models.OrderStatusPaid)
		assert.ErrorIs(t, err, service.ErrOrderNotFound)
		assert.Empty(t, env.bus.changed)
	})
}

func TestAdminService_DeleteProduct(t *testing.T) {
	id := uuid.New()

	t.Run("referenced by orders", func(t *testing.T) {
		env := newAdminEnv()
		env.items.ExistsForProductFunc = func(ctx context.Context, productID uuid.UUID) (bool, error) { return true, nil }
		env.products.DeleteFunc = func(ctx context.Context, id uuid.UUID) (bool, error) {
			t.Fatal("product must not be deleted")
			return false, nil
		}
		err := env.svc.DeleteProduct(adminCtx(), id)
		assert.ErrorIs(t, err, service.ErrProductHasOrders)
		assert.Zero(t, env.cache.invalidated)
	})

	t.Run("not found", func(t *testing.T) {
		env := newAdminEnv()
		env.products.DeleteFunc = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
		assert.ErrorIs(t, env.svc.DeleteProduct(adminCtx(), id), service.ErrProductNotFound)
	})

	t.Run("deleted", func(t *testing.T) {
		env := newAdminEnv()
		require.NoError(t, env.svc.DeleteProduct(adminCtx(), id))
		assert.Equal(t, 1, env.cache.invalidated)
	})

	t.Run("lookup failure", func(t *testing.T) {
		env := newAdminEnv()
		env.items.ExistsForProductFunc = func(ctx context.Context, productID uuid.UUID) (bool, error) {
			return false, errors.New("connection reset")
		}
		assert.ErrorIs(t, env.svc.DeleteProduct(adminCtx(), id), service.ErrLookup)
	})
}

func TestAdminService_UpdateProduct(t *testing.T) {
	id := uuid.New()
	env := newAdminEnv()
	env.products.GetByIDFunc = func(ctx context.Context, pid uuid.UUID) (*models.Product, error) {
		return &models.Product{ID: pid, Name: "Funda"}, nil
	}
	var fields map[string]any
	env.products.UpdateFieldsFunc = func(ctx context.Context, pid uuid.UUID, f map[string]any) error {
		fields = f
		return nil
	}
	var except *uuid.UUID
	env.products.SlugExistsFunc = func(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
		except = exceptID
		return false, nil
	}

	slug, noCategory := "  Funda Única ", uuid.Nil
	_, err := env.svc.UpdateProduct(adminCtx(), id, service.ProductPatch{Slug: &slug, CategoryID: &noCategory})
	require.NoError(t, err)
	assert.Equal(t, "funda-unica", fields["slug"])
	assert.Contains(t, fields, "category_id")
	assert.Nil(t, fields["category_id"])
	require.NotNil(t, except)
	assert.Equal(t, id, *except)
	assert.Equal(t, 1, env.cache.invalidated)

	missing := uuid.New()
	_, err = env.svc.UpdateProduct(adminCtx(), id, service.ProductPatch{CategoryID: &missing})
	assert.ErrorIs(t, err, service.ErrCategoryNotFound)

	empty := "  "
	_, err = env.svc.UpdateProduct(adminCtx(), id, service.ProductPatch{Name: &empty})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestAdminService_Categories(t *testing.T) {
	t.Run("slug generated from name", func(t *testing.T) {
		env := newAdminEnv()
		var created *models.Category
		env.categories.CreateFunc = func(ctx context.Context, c *models.Category) error {
			created = c
			return nil
		}
		c, err := env.svc.CreateCategory(adminCtx(), service.CategoryInput{Name: " Fundas y Protectores "})
		require.NoError(t, err)
		assert.Equal(t, "Fundas y Protectores", c.Name)
		assert.Equal(t, "fundas-y-protectores", c.Slug)
		assert.Same(t, c, created)
		assert.Equal(t, 1, env.cache.invalidated)
	})

	t.Run("slug taken", func(t *testing.T) {
		env := newAdminEnv()
		env.categories.SlugExistsFunc = func(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
			return slug == "fundas", nil
		}
		_, err := env.svc.CreateCategory(adminCtx(), service.CategoryInput{Name: "Fundas"})
		assert.ErrorIs(t, err, service.ErrSlugTaken)
	})

	t.Run("empty slug", func(t *testing.T) {
		env := newAdminEnv()
		_, err := env.svc.CreateCategory(adminCtx(), service.CategoryInput{Name: "¡¡!!"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("update unknown", func(t *testing.T) {
		env := newAdminEnv()
		name := "Cargadores"
		_, err := env.svc.UpdateCategory(adminCtx(), uuid.New(), service.CategoryPatch{Name: &name})
		assert.ErrorIs(t, err, service.ErrCategoryNotFound)
	})

	t.Run("update", func(t *testing.T) {
		env := newAdminEnv()
		id := uuid.New()
		env.categories.GetByIDFunc = func(ctx context.Context, cid uuid.UUID) (*models.Category, error) {
			return &models.Category{ID: cid, Name: "Cargadores", Slug: "cargadores"}, nil
		}
		var fields map[string]any
		env.categories.UpdateFieldsFunc = func(ctx context.Context, cid uuid.UUID, f map[string]any) error {
			fields = f
			return nil
		}
		name := "Cargadores rápidos"
		_, err := env.svc.UpdateCategory(adminCtx(), id, service.CategoryPatch{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"name": "Cargadores rápidos"}, fields)
		assert.Equal(t, 1, env.cache.invalidated)
	})

	t.Run("delete", func(t *testing.T) {
		env := newAdminEnv()
		env.categories.DeleteFunc = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
		assert.ErrorIs(t, env.svc.DeleteCategory(adminCtx(), uuid.New()), service.ErrCategoryNotFound)

		env.categories.DeleteFunc = nil
		require.NoError(t, env.svc.DeleteCategory(adminCtx(), uuid.New()))
		assert.Equal(t, 1, env.cache.invalidated)
	})
}

func TestAdminService_Partners(t *testing.T) {
	env := newAdminEnv()
	ctx := adminCtx()

	p, err := env.svc.CreatePartner(ctx, service.PartnerInput{Name: " Mercado Pago "})
	require.NoError(t, err)
	assert.Equal(t, "Mercado Pago", p.Name)
	assert.True(t, p.IsActive)

	inactive := false
	p, err = env.svc.CreatePartner(ctx, service.PartnerInput{Name: "Andreani", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, p.IsActive)

	_, err = env.svc.CreatePartner(ctx, service.PartnerInput{Name: " "})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	var onlyActive = true
	env.partners.ListFunc = func(ctx context.Context, active bool) ([]models.Partner, error) {
		onlyActive = active
		return []models.Partner{{Name: "Andreani"}}, nil
	}
	list, err := env.svc.ListPartners(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.False(t, onlyActive, "admin sees inactive partners too")

	website := "https://andreani.com"
	_, err = env.svc.UpdatePartner(ctx, uuid.New(), service.PartnerPatch{Website: &website})
	assert.ErrorIs(t, err, service.ErrPartnerNotFound)

	env.partners.DeleteFunc = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
	assert.ErrorIs(t, env.svc.DeletePartner(ctx, uuid.New()), service.ErrPartnerNotFound)
}

func TestAdminService_Variants(t *testing.T) {
	env := newAdminEnv()
	ctx := adminCtx()

	_, err := env.svc.AddVariant(ctx, uuid.New(), service.VariantInput{Stock: -1})
	assert.ErrorIs(t, err, service.ErrInvalidInput)

	_, err = env.svc.AddVariant(ctx, uuid.New(), service.VariantInput{Stock: 1})
	assert.ErrorIs(t, err, service.ErrProductNotFound)

	stock := 7
	_, err = env.svc.UpdateVariant(ctx, uuid.New(), service.VariantPatch{Stock: &stock})
	assert.ErrorIs(t, err, service.ErrVariantNotFound)

	negative := -3
	_, err = env.svc.UpdateVariant(ctx, uuid.New(), service.VariantPatch{Stock: &negative})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestAdminService_ListOrders(t *testing.T) {
	env := newAdminEnv()
	ctx := adminCtx()

	bad := models.OrderStatus("lost")
	_, err := env.svc.ListOrders(ctx, service.AdminOrderQuery{Status: &bad})
	assert.ErrorIs(t, err, service.ErrInvalidStatus)

	var got repository.OrderListFilter
	env.orders.ListFunc = func(ctx context.Context, f repository.OrderListFilter) ([]models.Order, int64, error) {
		got = f
		return nil, 0, nil
	}
	paid := models.OrderStatusPaid
	page, err := env.svc.ListOrders(ctx, service.AdminOrderQuery{Status: &paid, Limit: 1000, Offset: -5})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Equal(t, service.MaxPageSize, got.Limit)
	assert.Equal(t, 0, got.Offset)
	require.NotNil(t, got.Status)
	assert.Equal(t, paid, *got.Status)
}
