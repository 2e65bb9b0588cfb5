package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

type CatalogQuery struct {
	Page        int
	PageSize    int
	Brands      []string
	CategoryIDs []uuid.UUID
	Search      string
}

type CategorySummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type VariantView struct {
	ID        uuid.UUID       `json:"id"`
	Color     *string         `json:"color,omitempty"`
	ColorName *string         `json:"color_name,omitempty"`
	Storage   *string         `json:"storage,omitempty"`
	Finish    *string         `json:"finish,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

type ProductSummary struct {
	ID                uuid.UUID        `json:"id"`
	Name              string           `json:"name"`
	Brand             string           `json:"brand"`
	Slug              string           `json:"slug"`
	Description       string           `json:"description"`
	Features          []string         `json:"features"`
	Images            []string         `json:"images"`
	Category          *CategorySummary `json:"category,omitempty"`
	Variants          []VariantView    `json:"variants"`
	MinPrice          decimal.Decimal  `json:"min_price"`
	MaxPrice          decimal.Decimal  `json:"max_price"`
	HasMultiplePrices bool             `json:"has_multiple_prices"`
	DisplayImage      string           `json:"display_image"`
	CreatedAt         time.Time        `json:"created_at"`
}

type CatalogPage struct {
	Items      []ProductSummary `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int64            `json:"total"`
	TotalPages int              `json:"total_pages"`
}

type CatalogService interface {
	ListProducts(ctx context.Context, q CatalogQuery) (*CatalogPage, error)
	GetProduct(ctx context.Context, slug string) (*ProductSummary, error)
	ListBrands(ctx context.Context) ([]string, error)
	ListCategories(ctx context.Context) ([]CategorySummary, error)
	ListPartners(ctx context.Context) ([]PartnerView, error)
}

type PartnerView struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Logo    *string   `json:"logo,omitempty"`
	Website *string   `json:"website,omitempty"`
}
