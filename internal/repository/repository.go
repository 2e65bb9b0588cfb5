package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository struct {
	DB         *gorm.DB
	Customers  CustomerRepo
	Addresses  AddressRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
	Products   ProductRepo
	Variants   VariantRepo
	Categories CategoryRepo
	Partners   PartnerRepo
}

func buildRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Customers:  NewCustomerRepo(db),
		Addresses:  NewAddressRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
		Products:   NewProductRepo(db),
		Variants:   NewVariantRepo(db),
		Categories: NewCategoryRepo(db),
		Partners:   NewPartnerRepo(db),
	}
}

func New(db *gorm.DB) *Repository { return buildRepository(db) }

// WithTx выполняет fn в одной транзакции на весь набор репозиториев.
// Любая ошибка из fn откатывает все записи.
func (r *Repository) WithTx(ctx context.Context, fn func(tx *Repository) error) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(buildRepository(tx))
	})
}
