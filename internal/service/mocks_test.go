package service_test

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/service"

	"github.com/google/uuid"
)

// MockVariantRepo
type MockVariantRepo struct {
	CreateFunc        func(ctx context.Context, v *models.Variant) error
	UpdateFieldsFunc  func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc       func(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	BatchGetStockFunc func(ctx context.Context, ids []uuid.UUID) ([]repository.StockRow, error)
	TryDecrementFunc  func(ctx context.Context, id uuid.UUID, qty int) (bool, error)
}

func (m *MockVariantRepo) Create(ctx context.Context, v *models.Variant) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	return nil
}

func (m *MockVariantRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockVariantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockVariantRepo) BatchGetStock(ctx context.Context, ids []uuid.UUID) ([]repository.StockRow, error) {
	if m.BatchGetStockFunc != nil {
		return m.BatchGetStockFunc(ctx, ids)
	}
	return nil, nil
}

func (m *MockVariantRepo) TryDecrement(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	if m.TryDecrementFunc != nil {
		return m.TryDecrementFunc(ctx, id, qty)
	}
	return true, nil
}

// MockCustomerRepo
type MockCustomerRepo struct {
	GetByUserIDFunc    func(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	CreateIfAbsentFunc func(ctx context.Context, c *models.Customer) (bool, error)
}

func (m *MockCustomerRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockCustomerRepo) CreateIfAbsent(ctx context.Context, c *models.Customer) (bool, error) {
	if m.CreateIfAbsentFunc != nil {
		return m.CreateIfAbsentFunc(ctx, c)
	}
	return true, nil
}

// MockProductRepo
type MockProductRepo struct {
	CreateFunc       func(ctx context.Context, p *models.Product) error
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetBySlugFunc    func(ctx context.Context, slug string) (*models.Product, error)
	SlugExistsFunc   func(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error)
	ListFunc         func(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error)
	BrandsFunc       func(ctx context.Context) ([]string, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockProductRepo) Create(ctx context.Context, p *models.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockProductRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProductRepo) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *MockProductRepo) SlugExists(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
	if m.SlugExistsFunc != nil {
		return m.SlugExistsFunc(ctx, slug, exceptID)
	}
	return false, nil
}

func (m *MockProductRepo) List(ctx context.Context, f repository.ProductListFilter) ([]models.Product, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

func (m *MockProductRepo) Brands(ctx context.Context) ([]string, error) {
	if m.BrandsFunc != nil {
		return m.BrandsFunc(ctx)
	}
	return nil, nil
}

func (m *MockProductRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

// MockOrderRepo
type MockOrderRepo struct {
	CreateFunc              func(ctx context.Context, o *models.Order) error
	GetByIDFunc             func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	GetByIDForCustomerFunc  func(ctx context.Context, id, customerID uuid.UUID) (*models.Order, error)
	UpdateStatusFunc        func(ctx context.Context, id uuid.UUID, status models.OrderStatus) (bool, error)
	SetPaymentReferenceFunc func(ctx context.Context, id uuid.UUID, ref string) error
	ListFunc                func(ctx context.Context, f repository.OrderListFilter) ([]models.Order, int64, error)
}

func (m *MockOrderRepo) Create(ctx context.Context, o *models.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	return nil
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockOrderRepo) GetByIDForCustomer(ctx context.Context, id, customerID uuid.UUID) (*models.Order, error) {
	if m.GetByIDForCustomerFunc != nil {
		return m.GetByIDForCustomerFunc(ctx, id, customerID)
	}
	return nil, nil
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (bool, error) {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	return true, nil
}

func (m *MockOrderRepo) SetPaymentReference(ctx context.Context, id uuid.UUID, ref string) error {
	if m.SetPaymentReferenceFunc != nil {
		return m.SetPaymentReferenceFunc(ctx, id, ref)
	}
	return nil
}

func (m *MockOrderRepo) List(ctx context.Context, f repository.OrderListFilter) ([]models.Order, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, f)
	}
	return nil, 0, nil
}

// MockOrderItemRepo
type MockOrderItemRepo struct {
	BulkCreateFunc       func(ctx context.Context, items []models.OrderItem) error
	ExistsForProductFunc func(ctx context.Context, productID uuid.UUID) (bool, error)
}

func (m *MockOrderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if m.BulkCreateFunc != nil {
		return m.BulkCreateFunc(ctx, items)
	}
	return nil
}

func (m *MockOrderItemRepo) ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	if m.ExistsForProductFunc != nil {
		return m.ExistsForProductFunc(ctx, productID)
	}
	return false, nil
}

// MockCategoryRepo
type MockCategoryRepo struct {
	CreateFunc       func(ctx context.Context, c *models.Category) error
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Category, error)
	SlugExistsFunc   func(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error)
	ListFunc         func(ctx context.Context) ([]models.Category, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockCategoryRepo) Create(ctx context.Context, c *models.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	return nil
}

func (m *MockCategoryRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockCategoryRepo) SlugExists(ctx context.Context, slug string, exceptID *uuid.UUID) (bool, error) {
	if m.SlugExistsFunc != nil {
		return m.SlugExistsFunc(ctx, slug, exceptID)
	}
	return false, nil
}

func (m *MockCategoryRepo) List(ctx context.Context) ([]models.Category, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockCategoryRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

// MockPartnerRepo
type MockPartnerRepo struct {
	CreateFunc       func(ctx context.Context, p *models.Partner) error
	UpdateFieldsFunc func(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	ListFunc         func(ctx context.Context, onlyActive bool) ([]models.Partner, error)
	DeleteFunc       func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *MockPartnerRepo) Create(ctx context.Context, p *models.Partner) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	return nil
}

func (m *MockPartnerRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(ctx, id, fields)
	}
	return nil
}

func (m *MockPartnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockPartnerRepo) List(ctx context.Context, onlyActive bool) ([]models.Partner, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, onlyActive)
	}
	return nil, nil
}

func (m *MockPartnerRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return true, nil
}

// MockCatalogCache: страницы в памяти, счётчик инвалидаций.
type MockCatalogCache struct {
	pages       map[string]*service.CatalogPage
	GetErr      error
	invalidated int
}

func (m *MockCatalogCache) GetPage(ctx context.Context, key string) (*service.CatalogPage, bool, error) {
	if m.GetErr != nil {
		return nil, false, m.GetErr
	}
	p, ok := m.pages[key]
	return p, ok, nil
}

func (m *MockCatalogCache) SetPage(ctx context.Context, key string, page *service.CatalogPage) error {
	if m.pages == nil {
		m.pages = map[string]*service.CatalogPage{}
	}
	m.pages[key] = page
	return nil
}

func (m *MockCatalogCache) Invalidate(ctx context.Context) error {
	m.invalidated++
	m.pages = nil
	return nil
}
