package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// createKeepingActive создаёт строку и сохраняет is_active=false, если так было задано:
// GORM пропускает нулевое значение bool и подставляет DEFAULT true.
func createKeepingActive(ctx context.Context, db *gorm.DB, value any, active bool, setActive func(bool)) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(value).Error; err != nil {
			return err
		}
		if active {
			return nil
		}
		if err := tx.Model(value).Update("is_active", false).Error; err != nil {
			return err
		}
		setActive(false)
		return nil
	})
}
