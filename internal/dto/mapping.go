package dto

import (
	"storefront/internal/cart"
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

func FromCart(c *cart.Cart) CartResponse {
	out := CartResponse{
		Lines: make([]CartLine, 0, len(c.Lines)),
		Count: c.Count(),
		Total: c.Total(),
	}
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		out.UpdatedAt = &t
	}
	for _, l := range c.Lines {
		out.Lines = append(out.Lines, CartLine{
			VariantID:    l.VariantID.String(),
			ProductID:    l.ProductID.String(),
			ProductName:  l.ProductName,
			ProductSlug:  l.ProductSlug,
			VariantLabel: l.VariantLabel,
			Image:        l.Image,
			Price:        l.Price,
			Quantity:     l.Quantity,
			Subtotal:     l.Subtotal(),
		})
	}
	return out
}

func FromOrder(o *models.Order) OrderResponse {
	out := OrderResponse{
		ID:               o.ID.String(),
		Status:           string(o.Status),
		TotalAmount:      o.TotalAmount,
		PaymentReference: o.PaymentReference,
		Items:            make([]OrderItemResponse, 0, len(o.Items)),
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
	}
	if o.Customer != nil {
		out.Customer = &CustomerResponse{
			ID:       o.Customer.ID.String(),
			Email:    o.Customer.Email,
			FullName: o.Customer.FullName,
			Phone:    o.Customer.Phone,
		}
	}
	if a := o.Address; a != nil {
		out.Address = &AddressResponse{
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
			Country:      a.Country,
		}
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, OrderItemResponse{
			VariantID: it.VariantID.String(),
			Quantity:  it.Quantity,
			Price:     it.Price,
			Subtotal:  it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))),
		})
	}
	return out
}

func FromOrders(list []models.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(list))
	for i := range list {
		out = append(out, FromOrder(&list[i]))
	}
	return out
}

func FromVariant(v *models.Variant) VariantResponse {
	return VariantResponse{
		ID:        v.ID.String(),
		ProductID: v.ProductID.String(),
		Color:     v.Color,
		ColorName: v.ColorName,
		Storage:   v.Storage,
		Finish:    v.Finish,
		Price:     v.Price,
		Stock:     v.Stock,
		IsActive:  v.IsActive,
	}
}

func FromCategory(c *models.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID.String(), Name: c.Name, Slug: c.Slug, Image: c.Image}
}

func FromProduct(p *models.Product) ProductResponse {
	out := ProductResponse{
		ID:          p.ID.String(),
		Name:        p.Name,
		Brand:       p.Brand,
		Slug:        p.Slug,
		Description: p.Description,
		Features:    append([]string{}, p.Features...),
		Images:      append([]string{}, p.Images...),
		IsActive:    p.IsActive,
		Variants:    make([]VariantResponse, 0, len(p.Variants)),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Category != nil {
		c := FromCategory(p.Category)
		out.Category = &c
	}
	for i := range p.Variants {
		out.Variants = append(out.Variants, FromVariant(&p.Variants[i]))
	}
	return out
}

func FromPartner(p *models.Partner) PartnerResponse {
	return PartnerResponse{ID: p.ID.String(), Name: p.Name, Logo: p.Logo, Website: p.Website, IsActive: p.IsActive}
}
