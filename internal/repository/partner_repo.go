package repository

import (
	"context"
	"errors"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PartnerRepo interface {
	Create(ctx context.Context, p *models.Partner) error
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error)
	List(ctx context.Context, onlyActive bool) ([]models.Partner, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type partnerRepo struct{ db *gorm.DB }

func NewPartnerRepo(db *gorm.DB) PartnerRepo { return &partnerRepo{db: db} }

func (r *partnerRepo) Create(ctx context.Context, p *models.Partner) error {
	return createKeepingActive(ctx, r.db, p, p.IsActive, func(v bool) { p.IsActive = v })
}

func (r *partnerRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Partner{}).Where("id = ?", id).Updates(fields).Error
}

func (r *partnerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Partner, error) {
	var p models.Partner
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *partnerRepo) List(ctx context.Context, onlyActive bool) ([]models.Partner, error) {
	q := r.db.WithContext(ctx).Model(&models.Partner{})
	if onlyActive {
		q = q.Where("is_active = ?", true)
	}
	var list []models.Partner
	err := q.Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *partnerRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := r.db.WithContext(ctx).Delete(&models.Partner{}, "id = ?", id)
	return tx.RowsAffected > 0, tx.Error
}
