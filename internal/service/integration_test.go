package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/repository"
	"taskboard-api/internal/response"
)

// setupIntegrationDB builds an in-memory SQLite database with hand-written DDL.
// A create callback fills in uuid primary keys, which postgres normally
// generates with gen_random_uuid().
func setupIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)

	err = db.Callback().Create().Before("gorm:create").Register("generate_uuid", func(db *gorm.DB) {
		if db.Statement.Schema == nil {
			return
		}
		for _, field := range db.Statement.Schema.PrimaryFields {
			if field.DataType != "uuid" {
				continue
			}
			value := field.ReflectValueOf(db.Statement.Context, db.Statement.ReflectValue)
			if value.IsZero() {
				_ = field.Set(db.Statement.Context, db.Statement.ReflectValue, uuid.New())
			}
		}
	})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT,
			email TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			avatar_color TEXT,
			is_active INTEGER NOT NULL DEFAULT 1,
			is_primordial INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE boards (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			name TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			is_archived INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE categories (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			name TEXT NOT NULL,
			color TEXT,
			board_id TEXT NOT NULL,
			display_order INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE custom_fields (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			options TEXT,
			board_id TEXT NOT NULL,
			UNIQUE(board_id, name)
		)`,
		`CREATE TABLE tasks (
			id TEXT PRIMARY KEY,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			title TEXT NOT NULL,
			description TEXT,
			due_date TEXT,
			priority TEXT,
			category_id TEXT NOT NULL,
			is_archived INTEGER NOT NULL DEFAULT 0,
			assignees TEXT,
			custom_data TEXT,
			comments INTEGER NOT NULL DEFAULT 0,
			display_rank INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE event_logs (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			event_type TEXT NOT NULL,
			entity_type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			details TEXT,
			ip_address TEXT,
			user_agent TEXT,
			created_at DATETIME NOT NULL
		)`,
	}
	for _, statement := range statements {
		require.NoError(t, db.Exec(statement).Error)
	}
	return db
}

// integrationEnv wires real repositories and services over one database
type integrationEnv struct {
	boards       BoardService
	categories   CategoryService
	customFields CustomFieldService
	tasks        TaskService
	eventLogs    repository.EventLogRepository
	actor        Actor
}

func newIntegrationEnv(t *testing.T) *integrationEnv {
	t.Helper()
	db := setupIntegrationDB(t)
	logger := zap.NewNop()

	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	customFieldRepo := repository.NewCustomFieldRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	eventLogRepo := repository.NewEventLogRepository(db)

	audit := NewAuditService(eventLogRepo, userRepo, nil, logger)

	return &integrationEnv{
		boards:       NewBoardService(boardRepo, categoryRepo, customFieldRepo, taskRepo, audit, nil, logger),
		categories:   NewCategoryService(categoryRepo, boardRepo, taskRepo, audit, nil, logger),
		customFields: NewCustomFieldService(customFieldRepo, boardRepo, audit, logger),
		tasks:        NewTaskService(taskRepo, categoryRepo, customFieldRepo, audit, nil, nil, logger),
		eventLogs:    eventLogRepo,
		actor:        Actor{UserID: uuid.New()},
	}
}

func (env *integrationEnv) countEvents(t *testing.T, eventType string) int64 {
	t.Helper()
	_, total, err := env.eventLogs.Query(context.Background(), repository.EventLogFilter{
		EventType: &eventType,
		Limit:     100,
	})
	require.NoError(t, err)
	return total
}

func (env *integrationEnv) totalEvents(t *testing.T) int64 {
	t.Helper()
	_, total, err := env.eventLogs.Query(context.Background(), repository.EventLogFilter{Limit: 100})
	require.NoError(t, err)
	return total
}

// setupBudgetBoard creates a board with "To Do" and "Done" columns and a
// numeric "Budget" field, and returns the board and column IDs.
func setupBudgetBoard(t *testing.T, env *integrationEnv) (boardID, todoID, doneID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	board, err := env.boards.CreateBoard(ctx, env.actor, &dto.CreateBoardRequest{Name: "Roadmap"})
	require.NoError(t, err)

	todo, err := env.categories.CreateCategory(ctx, env.actor, &dto.CreateCategoryRequest{
		Name: "To Do", BoardID: board.ID,
	})
	require.NoError(t, err)
	done, err := env.categories.CreateCategory(ctx, env.actor, &dto.CreateCategoryRequest{
		Name: "Done", BoardID: board.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 0, todo.Order)
	require.Equal(t, 1, done.Order)

	_, err = env.customFields.CreateCustomField(ctx, env.actor, &dto.CreateCustomFieldRequest{
		Name: "Budget", Type: "number", BoardID: board.ID,
	})
	require.NoError(t, err)

	return board.ID, todo.ID, done.ID
}

func TestTaskLifecycleScenarios(t *testing.T) {
	ctx := context.Background()

	t.Run("custom data survives create", func(t *testing.T) {
		env := newIntegrationEnv(t)
		_, todoID, _ := setupBudgetBoard(t, env)

		task, err := env.tasks.CreateTask(ctx, env.actor, &dto.CreateTaskRequest{
			Title:      "Estimate launch",
			CategoryID: todoID,
			CustomData: map[string]interface{}{"Budget": "500"},
		})
		require.NoError(t, err)

		fetched, err := env.tasks.GetTask(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"Budget": "500"}, fetched.CustomData)
		assert.Equal(t, int64(1), env.countEvents(t, "task.created"))
	})

	t.Run("clearing a custom value removes the key and is audited", func(t *testing.T) {
		env := newIntegrationEnv(t)
		_, todoID, _ := setupBudgetBoard(t, env)

		task, err := env.tasks.CreateTask(ctx, env.actor, &dto.CreateTaskRequest{
			Title:      "Estimate launch",
			CategoryID: todoID,
			CustomData: map[string]interface{}{"Budget": "500"},
		})
		require.NoError(t, err)

		patch := map[string]interface{}{"Budget": ""}
		updated, err := env.tasks.UpdateTask(ctx, env.actor, task.ID, &dto.UpdateTaskRequest{
			CustomData: &patch,
		})
		require.NoError(t, err)
		assert.Empty(t, updated.CustomData)

		entries, total, err := env.eventLogs.Query(ctx, repository.EventLogFilter{
			EventType: strPtr("task.updated"),
			Limit:     10,
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)

		var details map[string]interface{}
		require.NoError(t, json.Unmarshal(entries[0].Details, &details))
		assert.Contains(t, details["changedFields"], "customData")
	})

	t.Run("archive then restore returns the task to its column", func(t *testing.T) {
		env := newIntegrationEnv(t)
		_, todoID, _ := setupBudgetBoard(t, env)

		task, err := env.tasks.CreateTask(ctx, env.actor, &dto.CreateTaskRequest{
			Title:      "Estimate launch",
			CategoryID: todoID,
		})
		require.NoError(t, err)

		_, err = env.tasks.ArchiveTask(ctx, env.actor, task.ID)
		require.NoError(t, err)

		active, err := env.tasks.GetTasksByCategory(ctx, todoID, false)
		require.NoError(t, err)
		assert.Empty(t, active)

		restored, err := env.tasks.RestoreTask(ctx, env.actor, task.ID)
		require.NoError(t, err)
		assert.False(t, restored.IsArchived)

		active, err = env.tasks.GetTasksByCategory(ctx, todoID, false)
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, task.ID, active[0].ID)

		assert.Equal(t, int64(1), env.countEvents(t, "task.archived"))
		assert.Equal(t, int64(1), env.countEvents(t, "task.restored"))
	})

	t.Run("a column with an active task cannot be deleted", func(t *testing.T) {
		env := newIntegrationEnv(t)
		_, todoID, _ := setupBudgetBoard(t, env)

		_, err := env.tasks.CreateTask(ctx, env.actor, &dto.CreateTaskRequest{
			Title:      "Estimate launch",
			CategoryID: todoID,
		})
		require.NoError(t, err)
		eventsBefore := env.totalEvents(t)

		err = env.categories.DeleteCategory(ctx, env.actor, todoID)
		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeConflict, appErr.Code)

		_, err = env.categories.GetCategory(ctx, todoID)
		assert.NoError(t, err)
		assert.Equal(t, eventsBefore, env.totalEvents(t))
	})

	t.Run("deletion is terminal and audited with a snapshot", func(t *testing.T) {
		env := newIntegrationEnv(t)
		_, todoID, _ := setupBudgetBoard(t, env)

		task, err := env.tasks.CreateTask(ctx, env.actor, &dto.CreateTaskRequest{
			Title:      "Estimate launch",
			CategoryID: todoID,
		})
		require.NoError(t, err)

		categoryID, err := env.tasks.DeleteTask(ctx, env.actor, task.ID)
		require.NoError(t, err)
		assert.Equal(t, todoID, categoryID)

		_, err = env.tasks.GetTask(ctx, task.ID)
		var appErr *response.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, response.ErrCodeNotFound, appErr.Code)

		entries, total, err := env.eventLogs.Query(ctx, repository.EventLogFilter{
			EventType: strPtr("task.deleted"),
			Limit:     10,
		})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)

		var details map[string]interface{}
		require.NoError(t, json.Unmarshal(entries[0].Details, &details))
		snapshot, ok := details["task"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Estimate launch", snapshot["title"])
	})

	t.Run("moving across columns changes ownership and renumbers both lists", func(t *testing.T) {
		env := newIntegrationEnv(t)
		_, todoID, doneID := setupBudgetBoard(t, env)

		titles := []string{"Estimate launch", "Write copy", "Ship it"}
		created := make([]*dto.TaskResponse, 0, len(titles))
		for _, title := range titles {
			task, err := env.tasks.CreateTask(ctx, env.actor, &dto.CreateTaskRequest{
				Title:      title,
				CategoryID: todoID,
			})
			require.NoError(t, err)
			created = append(created, task)
		}

		moved, err := env.tasks.MoveTask(ctx, env.actor, created[1].ID, &dto.MoveTaskRequest{
			CategoryID: doneID,
			Index:      0,
		})
		require.NoError(t, err)
		assert.Equal(t, doneID, moved.CategoryID)
		assert.Equal(t, 0, moved.Rank)

		source, err := env.tasks.GetTasksByCategory(ctx, todoID, true)
		require.NoError(t, err)
		require.Len(t, source, 2)
		assert.Equal(t, created[0].ID, source[0].ID)
		assert.Equal(t, 0, source[0].Rank)
		assert.Equal(t, created[2].ID, source[1].ID)
		assert.Equal(t, 1, source[1].Rank)

		destination, err := env.tasks.GetTasksByCategory(ctx, doneID, false)
		require.NoError(t, err)
		require.Len(t, destination, 1)
		assert.Equal(t, created[1].ID, destination[0].ID)
	})
}

func strPtr(s string) *string {
	return &s
}
