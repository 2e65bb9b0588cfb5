package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// StockRow: вариант вместе с именем товара для проверки остатков.
type StockRow struct {
	VariantID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Price       decimal.Decimal
	Stock       int
	Active      bool
}

type VariantRepo interface {
	Create(ctx context.Context, v *models.Variant) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error)
	BatchGetStock(ctx context.Context, ids []uuid.UUID) ([]StockRow, error)

	// TryDecrement атомарно: stock -= qty, если stock >= qty.
	// false без ошибки: остатка не хватило в момент записи.
	TryDecrement(ctx context.Context, id uuid.UUID, qty int) (bool, error)
}

type variantRepo struct{ db *gorm.DB }

func NewVariantRepo(db *gorm.DB) VariantRepo { return &variantRepo{db: db} }

func (r *variantRepo) Create(ctx context.Context, v *models.Variant) error {
	return createKeepingActive(ctx, r.db, v, v.IsActive, func(a bool) { v.IsActive = a })
}

func (r *variantRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Variant{}).Where("id = ?", id).Updates(fields).Error
}

func (r *variantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Variant, error) {
	var v models.Variant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &v, err
}

func (r *variantRepo) BatchGetStock(ctx context.Context, ids []uuid.UUID) ([]StockRow, error) {
	if len(ids) == 0 {
		return []StockRow{}, nil
	}

	var rows []StockRow
	err := r.db.WithContext(ctx).
		Table("variants AS v").
		Select(`v.id AS variant_id,
       v.product_id AS product_id,
       p.name AS product_name,
       v.price AS price,
       v.stock AS stock,
       (v.is_active AND p.is_active) AS active`).
		Joins("JOIN products p ON p.id = v.product_id").
		Where("v.id IN ?", ids).
		Scan(&rows).Error
	return rows, err
}

func (r *variantRepo) TryDecrement(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	tx := r.db.WithContext(ctx).Exec(`
UPDATE variants
SET stock = stock - @q,
    updated_at = now()
WHERE id = @id
  AND stock >= @q
`, map[string]any{
		"id": id,
		"q":  qty,
	})
	return tx.RowsAffected > 0, tx.Error
}
