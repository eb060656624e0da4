package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

// MockAuditService is a mock implementation of AuditService
type MockAuditService struct {
	QueryFunc   func(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error)
	SummaryFunc func(ctx context.Context) (*dto.EventLogSummary, error)
}

func (m *MockAuditService) Record(ctx context.Context, actor service.Actor, eventType, entityType string, entityID uuid.UUID, details map[string]interface{}) {
}

func (m *MockAuditService) Query(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query)
	}
	return &dto.EventLogPage{}, nil
}

func (m *MockAuditService) Summary(ctx context.Context) (*dto.EventLogSummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx)
	}
	return &dto.EventLogSummary{}, nil
}

func setupEventLogRouter(mockService *MockAuditService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewEventLogHandler(mockService)

	router.GET("/event-log", handler.QueryEventLog)
	router.GET("/event-log/summary", handler.GetEventLogSummary)
	return router
}

func TestEventLogHandler_QueryEventLog(t *testing.T) {
	userID := uuid.New()

	t.Run("forwards filters into the query", func(t *testing.T) {
		var captured dto.EventLogQuery
		mockService := &MockAuditService{
			QueryFunc: func(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error) {
				captured = query
				return &dto.EventLogPage{Page: query.Page, Limit: query.Limit}, nil
			},
		}
		router := setupEventLogRouter(mockService)

		url := "/event-log?page=3&limit=25&userId=" + userID.String() + "&entityType=task&eventType=task.created"
		req := httptest.NewRequest("GET", url, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if captured.Page != 3 || captured.Limit != 25 {
			t.Errorf("expected page=3 limit=25, got page=%d limit=%d", captured.Page, captured.Limit)
		}
		if captured.UserID == nil || *captured.UserID != userID {
			t.Errorf("expected user filter %v, got %v", userID, captured.UserID)
		}
		if captured.EntityType == nil || *captured.EntityType != "task" {
			t.Errorf("expected entityType filter %q, got %v", "task", captured.EntityType)
		}
		if captured.EventType == nil || *captured.EventType != "task.created" {
			t.Errorf("expected eventType filter %q, got %v", "task.created", captured.EventType)
		}
	})

	t.Run("omitted filters stay unset", func(t *testing.T) {
		var captured dto.EventLogQuery
		mockService := &MockAuditService{
			QueryFunc: func(ctx context.Context, query dto.EventLogQuery) (*dto.EventLogPage, error) {
				captured = query
				return &dto.EventLogPage{}, nil
			},
		}
		router := setupEventLogRouter(mockService)

		req := httptest.NewRequest("GET", "/event-log", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if captured.UserID != nil || captured.EntityType != nil || captured.EventType != nil {
			t.Errorf("expected no filters, got %+v", captured)
		}
	})

	invalidQueries := []struct {
		name string
		url  string
	}{
		{"non-numeric page", "/event-log?page=abc"},
		{"non-numeric limit", "/event-log?limit=ten"},
		{"malformed user ID", "/event-log?userId=not-a-uuid"},
	}
	for _, tt := range invalidQueries {
		t.Run(tt.name+" is rejected", func(t *testing.T) {
			router := setupEventLogRouter(&MockAuditService{})

			req := httptest.NewRequest("GET", tt.url, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
			var body response.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}
			if body.Error.Code != response.ErrCodeValidation {
				t.Errorf("expected error code %q, got %q", response.ErrCodeValidation, body.Error.Code)
			}
		})
	}
}

func TestEventLogHandler_GetEventLogSummary(t *testing.T) {
	mockService := &MockAuditService{
		SummaryFunc: func(ctx context.Context) (*dto.EventLogSummary, error) {
			return &dto.EventLogSummary{Task: 12, Board: 3}, nil
		},
	}
	router := setupEventLogRouter(mockService)

	req := httptest.NewRequest("GET", "/event-log/summary", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var body struct {
		Success bool                `json:"success"`
		Data    dto.EventLogSummary `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !body.Success {
		t.Error("expected success envelope")
	}
	if body.Data.Task != 12 || body.Data.Board != 3 {
		t.Errorf("unexpected summary %+v", body.Data)
	}
}
