package service

import (
	"context"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repository"
)

const defaultCustomerName = "Cliente"

// ContactHint: данные из формы доставки, используемые при первом создании покупателя.
type ContactHint struct {
	FullName string
	Phone    string
}

type CustomerResolver struct {
	customers repository.CustomerRepo
}

func NewCustomerResolver(customers repository.CustomerRepo) *CustomerResolver {
	return &CustomerResolver{customers: customers}
}

// Resolve находит покупателя по идентификатору пользователя или создаёт его.
// Повторные вызовы для одного пользователя возвращают ту же строку.
func (r *CustomerResolver) Resolve(ctx context.Context, hint ContactHint) (*models.Customer, error) {
	id, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	existing, err := r.customers.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, &LookupError{Op: "customer", Err: err}
	}
	if existing != nil {
		return existing, nil
	}

	c := &models.Customer{
		UserID:   id.UserID,
		Email:    id.Email,
		FullName: displayName(hint.FullName, id.Name),
	}
	if p := strings.TrimSpace(hint.Phone); p != "" {
		c.Phone = &p
	}

	created, err := r.customers.CreateIfAbsent(ctx, c)
	if err != nil {
		return nil, &WriteError{Op: "customer", Err: err}
	}
	if created {
		return c, nil
	}

	// параллельный запрос успел создать строку первым
	existing, err = r.customers.GetByUserID(ctx, id.UserID)
	if err != nil {
		return nil, &LookupError{Op: "customer", Err: err}
	}
	if existing == nil {
		return nil, &LookupError{Op: "customer", Err: ErrUnauthenticated}
	}
	return existing, nil
}

func displayName(candidates ...string) string {
	for _, c := range candidates {
		if s := strings.TrimSpace(c); s != "" {
			return s
		}
	}
	return defaultCustomerName
}
