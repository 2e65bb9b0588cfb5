package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/internal/cart"
	"storefront/internal/models"
	"storefront/internal/router"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockCheckoutService
type MockCheckoutService struct {
	PlaceOrderFunc func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error)
}

func (m *MockCheckoutService) PlaceOrder(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
	return m.PlaceOrderFunc(ctx, in)
}

// MockCatalogService
type MockCatalogService struct {
	ListProductsFunc func(ctx context.Context, q service.CatalogQuery) (*service.CatalogPage, error)
	GetProductFunc   func(ctx context.Context, slug string) (*service.ProductSummary, error)
}

func (m *MockCatalogService) ListProducts(ctx context.Context, q service.CatalogQuery) (*service.CatalogPage, error) {
	return m.ListProductsFunc(ctx, q)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, slug string) (*service.ProductSummary, error) {
	return m.GetProductFunc(ctx, slug)
}

func (m *MockCatalogService) ListBrands(ctx context.Context) ([]string, error) {
	return []string{"Apple"}, nil
}

func (m *MockCatalogService) ListCategories(ctx context.Context) ([]service.CategorySummary, error) {
	return nil, nil
}

func (m *MockCatalogService) ListPartners(ctx context.Context) ([]service.PartnerView, error) {
	return nil, nil
}

// MockCartService
type MockCartService struct {
	service.CartService
	GetCartFunc func(ctx context.Context) (*cart.Cart, error)
}

func (m *MockCartService) GetCart(ctx context.Context) (*cart.Cart, error) {
	return m.GetCartFunc(ctx)
}

type staticVerifier struct{ id service.Identity }

func (v staticVerifier) Verify(ctx context.Context, token string) (service.Identity, error) {
	if token != "valid" {
		return service.Identity{}, errors.New("bad token")
	}
	return v.id, nil
}

func newServer(svc router.Services, role service.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	v := staticVerifier{id: service.Identity{UserID: uuid.New(), Email: "ana@example.com", Role: role}}
	return router.Router(svc, v, nil, zap.NewNop())
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer valid")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func orderBody(variant uuid.UUID, qty int) map[string]any {
	return map[string]any{
		"shipping": map[string]any{
			"address_line1": "Av. Corrientes 1234",
			"city":          "Buenos Aires",
			"state":         "CABA",
			"country":       "AR",
		},
		"items": []map[string]any{{"variant_id": variant.String(), "quantity": qty}},
	}
}

func TestPlaceOrder_Created(t *testing.T) {
	v := uuid.New()
	checkout := &MockCheckoutService{PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
		if _, ok := service.IdentityFromContext(ctx); !ok {
			t.Fatal("identity must be in request context")
		}
		require.Len(t, in.Items, 1)
		assert.Equal(t, v, in.Items[0].VariantID)
		assert.Equal(t, "CABA", in.Shipping.State)
		return &service.PlacedOrder{
			Order: &models.Order{
				ID:          uuid.New(),
				Status:      models.OrderStatusPending,
				TotalAmount: decimal.NewFromInt(250),
				Items:       []models.OrderItem{{VariantID: v, Quantity: 2, Price: decimal.NewFromInt(125)}},
			},
			PaymentURL: "https://checkout.stripe.com/c/pay/cs_test",
		}, nil
	}}
	r := newServer(router.Services{Checkout: checkout}, service.RoleCustomer)

	w := do(t, r, http.MethodPost, "/api/v1/orders", orderBody(v, 2))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Order struct {
			Status      string `json:"status"`
			TotalAmount string `json:"total_amount"`
			Items       []struct {
				Subtotal string `json:"subtotal"`
			} `json:"items"`
		} `json:"order"`
		PaymentURL string `json:"payment_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "pending", resp.Order.Status)
	assert.Equal(t, "250", resp.Order.TotalAmount)
	assert.Equal(t, "250", resp.Order.Items[0].Subtotal)
	assert.NotEmpty(t, resp.PaymentURL)
}

func TestPlaceOrder_ErrorMapping(t *testing.T) {
	v := uuid.New()
	tests := []struct {
		name string
		err  error
		code int
		key  string
	}{
		{"not found", &service.ProductNotFoundError{VariantIDs: []uuid.UUID{v}}, http.StatusNotFound, "product_not_found"},
		{"insufficient", &service.InsufficientStockError{Lines: []service.StockShortfall{{VariantID: v, Requested: 3, Available: 1}}}, http.StatusConflict, "insufficient_stock"},
		{"conflict", &service.StockConflictError{VariantID: v, Requested: 1}, http.StatusConflict, "stock_conflict"},
		{"lookup", &service.LookupError{Op: "variants", Err: errors.New("timeout")}, http.StatusServiceUnavailable, "lookup_failed"},
		{"write", &service.WriteError{Op: "order", Err: errors.New("disk full")}, http.StatusInternalServerError, "internal_error"},
		{"unauthenticated", service.ErrUnauthenticated, http.StatusUnauthorized, "unauthorized"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkout := &MockCheckoutService{PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
				return nil, tt.err
			}}
			r := newServer(router.Services{Checkout: checkout}, service.RoleCustomer)

			w := do(t, r, http.MethodPost, "/api/v1/orders", orderBody(v, 1))
			assert.Equal(t, tt.code, w.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.key, body["code"])
		})
	}
}

func TestPlaceOrder_InsufficientStockListsLines(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	checkout := &MockCheckoutService{PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
		return nil, &service.InsufficientStockError{Lines: []service.StockShortfall{
			{VariantID: a, ProductName: "A", Requested: 3, Available: 1},
			{VariantID: b, ProductName: "B", Requested: 2, Available: 0},
		}}
	}}
	r := newServer(router.Services{Checkout: checkout}, service.RoleCustomer)

	w := do(t, r, http.MethodPost, "/api/v1/orders", orderBody(a, 3))
	require.Equal(t, http.StatusConflict, w.Code)

	var body struct {
		Lines []struct {
			VariantID string `json:"variant_id"`
			Available int    `json:"available"`
		} `json:"lines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Lines, 2)
	assert.Equal(t, b.String(), body.Lines[1].VariantID)
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	checkout := &MockCheckoutService{PlaceOrderFunc: func(ctx context.Context, in service.PlaceOrderInput) (*service.PlacedOrder, error) {
		t.Fatal("service must not be called")
		return nil, nil
	}}
	r := newServer(router.Services{Checkout: checkout}, service.RoleCustomer)

	body := orderBody(uuid.New(), 0)
	w := do(t, r, http.MethodPost, "/api/v1/orders", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/orders", map[string]any{"items": []any{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/orders", orderBody(uuid.New(), 2147483648))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body = orderBody(uuid.New(), 1)
	body["items"] = []map[string]any{{"variant_id": "not-a-uuid", "quantity": 1}}
	w = do(t, r, http.MethodPost, "/api/v1/orders", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCatalog_PublicAndFilters(t *testing.T) {
	cat := uuid.New()
	catalog := &MockCatalogService{
		ListProductsFunc: func(ctx context.Context, q service.CatalogQuery) (*service.CatalogPage, error) {
			assert.Equal(t, 2, q.Page)
			assert.Equal(t, []string{"Apple", "Samsung"}, q.Brands)
			assert.Equal(t, []uuid.UUID{cat}, q.CategoryIDs)
			assert.Equal(t, "funda", q.Search)
			return &service.CatalogPage{Items: []service.ProductSummary{}, Page: 2, PageSize: 12}, nil
		},
		GetProductFunc: func(ctx context.Context, slug string) (*service.ProductSummary, error) {
			return nil, service.ErrProductNotFound
		},
	}
	r := newServer(router.Services{Catalog: catalog}, service.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=2&q=funda&brand=Apple,Samsung&category="+cat.String(), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products?category=nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCart_RequiresAuth(t *testing.T) {
	carts := &MockCartService{GetCartFunc: func(ctx context.Context) (*cart.Cart, error) {
		c := cart.New("u")
		c.Add(cart.Line{VariantID: uuid.New(), Price: decimal.NewFromInt(100), Quantity: 2})
		return c, nil
	}}
	r := newServer(router.Services{Cart: carts}, service.RoleCustomer)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Count int    `json:"count"`
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "200", body.Total)
}

func TestAdmin_ForbiddenForCustomer(t *testing.T) {
	r := newServer(router.Services{}, service.RoleCustomer)
	w := do(t, r, http.MethodPatch, "/api/v1/admin/orders/"+uuid.NewString()+"/status", map[string]string{"status": "paid"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := router.Router(router.Services{}, staticVerifier{}, map[string]router.HealthCheck{
		"postgres": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("down") },
	}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "degraded")
}
