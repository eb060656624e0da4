package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// CustomFieldRepository defines the interface for custom field data access
type CustomFieldRepository interface {
	Create(ctx context.Context, field *domain.CustomField) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.CustomField, error)
	FindByBoardAndName(ctx context.Context, boardID uuid.UUID, name string) (*domain.CustomField, error)
	Update(ctx context.Context, field *domain.CustomField) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error
}

// customFieldRepositoryImpl is the GORM implementation of CustomFieldRepository
type customFieldRepositoryImpl struct {
	db *gorm.DB
}

// NewCustomFieldRepository creates a new instance of CustomFieldRepository
func NewCustomFieldRepository(db *gorm.DB) CustomFieldRepository {
	return &customFieldRepositoryImpl{db: db}
}

// Create creates a new custom field
func (r *customFieldRepositoryImpl) Create(ctx context.Context, field *domain.CustomField) error {
	return r.db.WithContext(ctx).Create(field).Error
}

// FindByID finds a custom field by ID
func (r *customFieldRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.CustomField, error) {
	var field domain.CustomField
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&field).Error; err != nil {
		return nil, err
	}
	return &field, nil
}

// FindByBoardID finds all custom fields of a board ordered by creation time
func (r *customFieldRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.CustomField, error) {
	var fields []*domain.CustomField
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("created_at ASC").
		Find(&fields).Error; err != nil {
		return nil, err
	}
	return fields, nil
}

// FindByBoardAndName finds a custom field by board and name, nil when absent
func (r *customFieldRepositoryImpl) FindByBoardAndName(ctx context.Context, boardID uuid.UUID, name string) (*domain.CustomField, error) {
	var field domain.CustomField
	if err := r.db.WithContext(ctx).
		Where("board_id = ? AND name = ?", boardID, name).
		First(&field).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &field, nil
}

// Update saves all fields of a custom field
func (r *customFieldRepositoryImpl) Update(ctx context.Context, field *domain.CustomField) error {
	return r.db.WithContext(ctx).Save(field).Error
}

// Delete hard deletes a custom field
func (r *customFieldRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CustomField{}, "id = ?", id).Error
}

// DeleteByBoardID hard deletes all custom fields of a board
func (r *customFieldRepositoryImpl) DeleteByBoardID(ctx context.Context, boardID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.CustomField{}, "board_id = ?", boardID).Error
}
