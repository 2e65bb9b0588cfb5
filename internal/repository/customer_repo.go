package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CustomerRepo interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error)
	// CreateIfAbsent вставляет строку, если для user_id её ещё нет.
	// created=false означает, что строка уже существовала (конфликт по user_id).
	CreateIfAbsent(ctx context.Context, c *models.Customer) (created bool, err error)
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepo(db *gorm.DB) CustomerRepo { return &customerRepo{db: db} }

func (r *customerRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Customer, error) {
	var c models.Customer
	err := r.db.WithContext(ctx).First(&c, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &c, err
}

func (r *customerRepo) CreateIfAbsent(ctx context.Context, c *models.Customer) (bool, error) {
	tx := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(c)
	return tx.RowsAffected > 0, tx.Error
}
