package service

import (
	"context"

	"storefront/internal/payments"
)

// PaymentProvider: внешний платёжный сервис; по заказу возвращает URL для оплаты.
type PaymentProvider interface {
	CreateCheckoutSession(ctx context.Context, req payments.CheckoutSessionRequest) (payments.CheckoutSession, error)
}

type CatalogCache interface {
	GetPage(ctx context.Context, key string) (*CatalogPage, bool, error)
	SetPage(ctx context.Context, key string, page *CatalogPage) error
	Invalidate(ctx context.Context) error
}
