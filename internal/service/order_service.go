package service

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repository"

	"github.com/google/uuid"
)

type OrderPage struct {
	Items  []models.Order `json:"items"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// OrderService отдаёт покупателю только его собственные заказы.
type OrderService interface {
	ListMyOrders(ctx context.Context, limit, offset int) (*OrderPage, error)
	GetMyOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

type orderService struct {
	repo *repository.Repository
}

func NewOrderService(repo *repository.Repository) OrderService {
	return &orderService{repo: repo}
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = 20
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *orderService) currentCustomer(ctx context.Context) (*models.Customer, error) {
	id, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.Customers.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, &LookupError{Op: "customer", Err: err}
	}
	return c, nil
}

func (s *orderService) ListMyOrders(ctx context.Context, limit, offset int) (*OrderPage, error) {
	limit, offset = clampPage(limit, offset)
	c, err := s.currentCustomer(ctx)
	if err != nil {
		return nil, err
	}
	page := &OrderPage{Items: []models.Order{}, Limit: limit, Offset: offset}
	if c == nil {
		return page, nil
	}

	orders, total, err := s.repo.Orders.List(ctx, repository.OrderListFilter{
		CustomerID: &c.ID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return nil, &LookupError{Op: "orders", Err: err}
	}
	page.Items, page.Total = orders, total
	return page, nil
}

func (s *orderService) GetMyOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	c, err := s.currentCustomer(ctx)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrOrderNotFound
	}
	ord, err := s.repo.Orders.GetByIDForCustomer(ctx, id, c.ID)
	if err != nil {
		return nil, &LookupError{Op: "order", Err: err}
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}
