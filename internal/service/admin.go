package service

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type VariantInput struct {
	Color     *string
	ColorName *string
	Storage   *string
	Finish    *string
	Price     decimal.Decimal
	Stock     int
	IsActive  *bool
}

type VariantPatch struct {
	Color     *string
	ColorName *string
	Storage   *string
	Finish    *string
	Price     *decimal.Decimal
	Stock     *int
	IsActive  *bool
}

type ProductInput struct {
	Name        string
	Brand       string
	Slug        string // пустой: генерируется из name
	Description string
	Features    []string
	Images      []string
	CategoryID  *uuid.UUID
	IsActive    *bool
	Variants    []VariantInput
}

type ProductPatch struct {
	Name        *string
	Brand       *string
	Slug        *string
	Description *string
	Features    *[]string
	Images      *[]string
	CategoryID  *uuid.UUID
	IsActive    *bool
}

type CategoryInput struct {
	Name  string
	Slug  string
	Image *string
}

type CategoryPatch struct {
	Name  *string
	Slug  *string
	Image *string
}

type PartnerInput struct {
	Name     string
	Logo     *string
	Website  *string
	IsActive *bool
}

type PartnerPatch struct {
	Name     *string
	Logo     *string
	Website  *string
	IsActive *bool
}

type AdminOrderQuery struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

// AdminService: все методы требуют роль admin.
type AdminService interface {
	CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, p ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	AddVariant(ctx context.Context, productID uuid.UUID, in VariantInput) (*models.Variant, error)
	UpdateVariant(ctx context.Context, id uuid.UUID, p VariantPatch) (*models.Variant, error)

	CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, p CategoryPatch) (*models.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	ListPartners(ctx context.Context) ([]models.Partner, error)
	CreatePartner(ctx context.Context, in PartnerInput) (*models.Partner, error)
	UpdatePartner(ctx context.Context, id uuid.UUID, p PartnerPatch) (*models.Partner, error)
	DeletePartner(ctx context.Context, id uuid.UUID) error

	ListOrders(ctx context.Context, q AdminOrderQuery) (*OrderPage, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}
