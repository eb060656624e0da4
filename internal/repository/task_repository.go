package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(ctx context.Context, task *domain.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	FindByCategoryID(ctx context.Context, categoryID uuid.UUID, includeArchived bool) ([]*domain.Task, error)
	FindArchivedByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	UpdateRank(ctx context.Context, id uuid.UUID, rank int) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByCategoryID(ctx context.Context, categoryID uuid.UUID) error
	CountActiveByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error)
	MaxRankByCategoryID(ctx context.Context, categoryID uuid.UUID) (int, error)
	CountAll(ctx context.Context) (int64, error)
}

// taskRepositoryImpl is the GORM implementation of TaskRepository
type taskRepositoryImpl struct {
	db *gorm.DB
}

// NewTaskRepository creates a new instance of TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create creates a new task
func (r *taskRepositoryImpl) Create(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// FindByID finds a task by ID
func (r *taskRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	var task domain.Task
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByCategoryID finds tasks of a category ordered by rank. Archived tasks are
// excluded unless includeArchived is set.
func (r *taskRepositoryImpl) FindByCategoryID(ctx context.Context, categoryID uuid.UUID, includeArchived bool) ([]*domain.Task, error) {
	var tasks []*domain.Task
	query := r.db.WithContext(ctx).Where("category_id = ?", categoryID)
	if !includeArchived {
		query = query.Where("is_archived = ?", false)
	}
	if err := query.Order("display_rank ASC, created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindArchivedByBoardID finds all archived tasks of a board across its categories
func (r *taskRepositoryImpl) FindArchivedByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Task, error) {
	var tasks []*domain.Task
	if err := r.db.WithContext(ctx).
		Joins("JOIN categories ON categories.id = tasks.category_id").
		Where("categories.board_id = ? AND tasks.is_archived = ?", boardID, true).
		Order("tasks.updated_at DESC").
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves all fields of a task
func (r *taskRepositoryImpl) Update(ctx context.Context, task *domain.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// UpdateRank updates only the rank of a task
func (r *taskRepositoryImpl) UpdateRank(ctx context.Context, id uuid.UUID, rank int) error {
	return r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", id).
		Update("display_rank", rank).Error
}

// Delete hard deletes a task
func (r *taskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error
}

// DeleteByCategoryID hard deletes all tasks of a category
func (r *taskRepositoryImpl) DeleteByCategoryID(ctx context.Context, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, "category_id = ?", categoryID).Error
}

// CountActiveByCategoryID counts non-archived tasks of a category
func (r *taskRepositoryImpl) CountActiveByCategoryID(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("category_id = ? AND is_archived = ?", categoryID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MaxRankByCategoryID returns the highest rank within a category, -1 when empty
func (r *taskRepositoryImpl) MaxRankByCategoryID(ctx context.Context, categoryID uuid.UUID) (int, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return -1, err
	}
	if count == 0 {
		return -1, nil
	}
	var max int
	if err := r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("category_id = ?", categoryID).
		Select("MAX(display_rank)").
		Scan(&max).Error; err != nil {
		return -1, err
	}
	return max, nil
}

// CountAll counts all tasks
func (r *taskRepositoryImpl) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Task{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
