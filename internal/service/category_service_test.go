package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskboard-api/internal/domain"
	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
)

func newCategoryServiceForTest(
	categoryRepo *MockCategoryRepository,
	boardRepo *MockBoardRepository,
	taskRepo *MockTaskRepository,
	audit *MockAuditService,
) CategoryService {
	return NewCategoryService(categoryRepo, boardRepo, taskRepo, audit, nil, zap.NewNop())
}

func TestCreateCategory(t *testing.T) {
	boardID := uuid.New()
	actor := Actor{UserID: uuid.New()}

	boardRepo := &MockBoardRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
			return &domain.Board{BaseModel: domain.BaseModel{ID: boardID}}, nil
		},
	}

	t.Run("first category of a board gets order zero", func(t *testing.T) {
		var created *domain.Category
		categoryRepo := &MockCategoryRepository{
			CreateFunc: func(ctx context.Context, category *domain.Category) error {
				category.ID = uuid.New()
				created = category
				return nil
			},
		}
		audit := &MockAuditService{}
		service := newCategoryServiceForTest(categoryRepo, boardRepo, &MockTaskRepository{}, audit)

		resp, err := service.CreateCategory(context.Background(), actor, &dto.CreateCategoryRequest{
			Name:    "Backlog",
			BoardID: boardID,
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 0, created.Order)
		assert.Equal(t, 0, resp.Order)

		require.Len(t, audit.Events, 1)
		assert.Equal(t, "category.created", audit.Events[0].EventType)
		assert.Equal(t, domain.EntityTypeCategory, audit.Events[0].EntityType)
	})

	t.Run("later categories append after the current maximum", func(t *testing.T) {
		var created *domain.Category
		categoryRepo := &MockCategoryRepository{
			MaxOrderByBoardIDFunc: func(ctx context.Context, id uuid.UUID) (int, error) {
				return 4, nil
			},
			CreateFunc: func(ctx context.Context, category *domain.Category) error {
				created = category
				return nil
			},
		}
		service := newCategoryServiceForTest(categoryRepo, boardRepo, &MockTaskRepository{}, &MockAuditService{})

		_, err := service.CreateCategory(context.Background(), actor, &dto.CreateCategoryRequest{
			Name:    "Done",
			BoardID: boardID,
		})

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, 5, created.Order)
	})

	t.Run("unknown board records no event", func(t *testing.T) {
		missingBoardRepo := &MockBoardRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
				return nil, gorm.ErrRecordNotFound
			},
		}
		audit := &MockAuditService{}
		service := newCategoryServiceForTest(&MockCategoryRepository{}, missingBoardRepo, &MockTaskRepository{}, audit)

		_, err := service.CreateCategory(context.Background(), actor, &dto.CreateCategoryRequest{
			Name:    "Orphan",
			BoardID: boardID,
		})

		assertAppErrorCode(t, err, response.ErrCodeNotFound)
		assert.Empty(t, audit.Events)
	})
}

func TestUpdateCategory_RejectsNegativeOrder(t *testing.T) {
	category := &domain.Category{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		Name:      "Backlog",
		BoardID:   uuid.New(),
	}
	categoryRepo := &MockCategoryRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
			return category, nil
		},
	}
	audit := &MockAuditService{}
	service := newCategoryServiceForTest(categoryRepo, &MockBoardRepository{}, &MockTaskRepository{}, audit)

	order := -1
	_, err := service.UpdateCategory(context.Background(), Actor{}, category.ID, &dto.UpdateCategoryRequest{
		Order: &order,
	})

	assertAppErrorCode(t, err, response.ErrCodeValidation)
	assert.Empty(t, audit.Events)
}

func TestDeleteCategory(t *testing.T) {
	categoryID := uuid.New()
	actor := Actor{UserID: uuid.New()}

	category := &domain.Category{
		BaseModel: domain.BaseModel{ID: categoryID},
		Name:      "Backlog",
		BoardID:   uuid.New(),
	}
	categoryRepo := func(deleted *bool) *MockCategoryRepository {
		return &MockCategoryRepository{
			FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
				return category, nil
			},
			DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
				*deleted = true
				return nil
			},
		}
	}

	t.Run("category with active tasks is protected", func(t *testing.T) {
		deleted := false
		taskRepo := &MockTaskRepository{
			CountActiveByCategoryIDFunc: func(ctx context.Context, id uuid.UUID) (int64, error) {
				return 3, nil
			},
		}
		audit := &MockAuditService{}
		service := newCategoryServiceForTest(categoryRepo(&deleted), &MockBoardRepository{}, taskRepo, audit)

		err := service.DeleteCategory(context.Background(), actor, categoryID)

		assertAppErrorCode(t, err, response.ErrCodeConflict)
		assert.False(t, deleted)
		assert.Empty(t, audit.Events)
	})

	t.Run("category with only archived tasks is deleted with them", func(t *testing.T) {
		deleted := false
		tasksDeleted := false
		taskRepo := &MockTaskRepository{
			DeleteByCategoryIDFunc: func(ctx context.Context, id uuid.UUID) error {
				tasksDeleted = true
				return nil
			},
		}
		audit := &MockAuditService{}
		service := newCategoryServiceForTest(categoryRepo(&deleted), &MockBoardRepository{}, taskRepo, audit)

		err := service.DeleteCategory(context.Background(), actor, categoryID)

		require.NoError(t, err)
		assert.True(t, tasksDeleted)
		assert.True(t, deleted)
		require.Len(t, audit.Events, 1)
		assert.Equal(t, "category.deleted", audit.Events[0].EventType)
		assert.Equal(t, categoryID, audit.Events[0].EntityID)
	})
}
