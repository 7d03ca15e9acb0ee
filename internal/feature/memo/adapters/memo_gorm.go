// Package adapters provides the memo repository and drafting implementations.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"aurora_backend/internal/feature/memo/domain/entity"
	"aurora_backend/internal/feature/memo/usecase"
)

// memoGorm is a gorm implementation of the MemoRepository interface.
type memoGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure memoGorm implements MemoRepository.
var _ usecase.MemoRepository = (*memoGorm)(nil)

// NewMemoGorm creates a new memo repository backed by gorm.
func NewMemoGorm(db *gorm.DB) *memoGorm {
	return &memoGorm{db: db}
}

// Create persists a new memo.
func (r *memoGorm) Create(ctx context.Context, m *entity.Memo) error {
	return r.db.WithContext(ctx).Create(MemoModelFromEntity(m)).Error
}

// FindByID retrieves a memo by its ID.
func (r *memoGorm) FindByID(ctx context.Context, id string) (*entity.Memo, error) {
	var model MemoModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrMemoNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// Update overwrites the editable columns of an existing memo.
func (r *memoGorm) Update(ctx context.Context, m *entity.Memo) error {
	model := MemoModelFromEntity(m)
	result := r.db.WithContext(ctx).
		Model(&MemoModel{ID: m.ID}).
		Select("title", "summary", "claims", "provenance", "updated_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrMemoNotFound
	}
	return nil
}

// Delete removes a memo by its ID.
func (r *memoGorm) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&MemoModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrMemoNotFound
	}
	return nil
}
