package repository

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderItemRepo interface {
	BulkCreate(ctx context.Context, items []models.OrderItem) error
	ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error)
}

type orderItemRepo struct{ db *gorm.DB }

func NewOrderItemRepo(db *gorm.DB) OrderItemRepo { return &orderItemRepo{db: db} }

func (r *orderItemRepo) BulkCreate(ctx context.Context, items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// ExistsForProduct: есть ли позиции заказов по любому варианту товара.
func (r *orderItemRepo) ExistsForProduct(ctx context.Context, productID uuid.UUID) (bool, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN variants v ON v.id = order_items.variant_id").
		Where("v.product_id = ?", productID).
		Count(&cnt).Error
	return cnt > 0, err
}
