package service

import (
	"context"
	"strings"

	"storefront/internal/models"
)

type ShippingInfo struct {
	FullName     string
	Phone        string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
}

func (s ShippingInfo) validate() error {
	var missing []string
	if strings.TrimSpace(s.AddressLine1) == "" {
		missing = append(missing, "address_line1")
	}
	if strings.TrimSpace(s.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(s.State) == "" {
		missing = append(missing, "state")
	}
	if strings.TrimSpace(s.Country) == "" {
		missing = append(missing, "country")
	}
	if len(missing) > 0 {
		return invalidf("missing shipping fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

type PlaceOrderInput struct {
	Shipping ShippingInfo
	Items    []LineRequest
}

// PlacedOrder: созданный заказ и, если платёжный сервис ответил, ссылка на оплату.
type PlacedOrder struct {
	Order      *models.Order
	PaymentURL string
}

type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
	Locale     string
}

type CheckoutService interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (*PlacedOrder, error)
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
