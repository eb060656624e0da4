package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// CategoryRepository defines the interface for category data access
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	MaxOrderByBoardID(ctx context.Context, boardID uuid.UUID) (int, error)
}

// categoryRepositoryImpl is the GORM implementation of CategoryRepository
type categoryRepositoryImpl struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new instance of CategoryRepository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepositoryImpl{db: db}
}

// Create creates a new category
func (r *categoryRepositoryImpl) Create(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

// FindByID finds a category by ID
func (r *categoryRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByBoardID finds all categories of a board ordered by display order
func (r *categoryRepositoryImpl) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := r.db.WithContext(ctx).
		Where("board_id = ?", boardID).
		Order("display_order ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Update saves all fields of a category
func (r *categoryRepositoryImpl) Update(ctx context.Context, category *domain.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete hard deletes a category
func (r *categoryRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

// MaxOrderByBoardID returns the highest display order within a board, -1 when the
// board has no categories
func (r *categoryRepositoryImpl) MaxOrderByBoardID(ctx context.Context, boardID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("board_id = ?", boardID).
		Count(&count).Error; err != nil {
		return -1, err
	}
	if count == 0 {
		return -1, nil
	}
	var max int
	if err := r.db.WithContext(ctx).
		Model(&domain.Category{}).
		Where("board_id = ?", boardID).
		Select("MAX(display_order)").
		Scan(&max).Error; err != nil {
		return -1, err
	}
	return max, nil
}
