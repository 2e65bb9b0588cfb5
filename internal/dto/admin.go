package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type VariantRequest struct {
	Color     *string         `json:"color"`
	ColorName *string         `json:"color_name"`
	Storage   *string         `json:"storage"`
	Finish    *string         `json:"finish"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock" binding:"min=0"`
	IsActive  *bool           `json:"is_active"`
}

type UpdateVariantRequest struct {
	Color     *string          `json:"color"`
	ColorName *string          `json:"color_name"`
	Storage   *string          `json:"storage"`
	Finish    *string          `json:"finish"`
	Price     *decimal.Decimal `json:"price"`
	Stock     *int             `json:"stock" binding:"omitempty,min=0"`
	IsActive  *bool            `json:"is_active"`
}

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required"`
	Brand       string           `json:"brand" binding:"required"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Features    []string         `json:"features"`
	Images      []string         `json:"images"`
	CategoryID  *string          `json:"category_id" binding:"omitempty,uuid"`
	IsActive    *bool            `json:"is_active"`
	Variants    []VariantRequest `json:"variants" binding:"dive"`
}

// UpdateProductRequest: category_id = "" снимает категорию.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Brand       *string   `json:"brand"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	Features    *[]string `json:"features"`
	Images      *[]string `json:"images"`
	CategoryID  *string   `json:"category_id"`
	IsActive    *bool     `json:"is_active"`
}

type CategoryRequest struct {
	Name  string  `json:"name" binding:"required"`
	Slug  string  `json:"slug"`
	Image *string `json:"image"`
}

type UpdateCategoryRequest struct {
	Name  *string `json:"name"`
	Slug  *string `json:"slug"`
	Image *string `json:"image"`
}

type PartnerRequest struct {
	Name     string  `json:"name" binding:"required"`
	Logo     *string `json:"logo"`
	Website  *string `json:"website" binding:"omitempty,url"`
	IsActive *bool   `json:"is_active"`
}

type UpdatePartnerRequest struct {
	Name     *string `json:"name"`
	Logo     *string `json:"logo"`
	Website  *string `json:"website" binding:"omitempty,url"`
	IsActive *bool   `json:"is_active"`
}

type VariantResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Color     *string         `json:"color,omitempty"`
	ColorName *string         `json:"color_name,omitempty"`
	Storage   *string         `json:"storage,omitempty"`
	Finish    *string         `json:"finish,omitempty"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	IsActive  bool            `json:"is_active"`
}

type CategoryResponse struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Slug  string  `json:"slug"`
	Image *string `json:"image,omitempty"`
}

type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Brand       string            `json:"brand"`
	Slug        string            `json:"slug"`
	Description string            `json:"description"`
	Features    []string          `json:"features"`
	Images      []string          `json:"images"`
	Category    *CategoryResponse `json:"category,omitempty"`
	IsActive    bool              `json:"is_active"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type PartnerResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Logo     *string `json:"logo,omitempty"`
	Website  *string `json:"website,omitempty"`
	IsActive bool    `json:"is_active"`
}
