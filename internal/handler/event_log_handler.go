package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type EventLogHandler struct {
	auditService service.AuditService
}

func NewEventLogHandler(auditService service.AuditService) *EventLogHandler {
	return &EventLogHandler{
		auditService: auditService,
	}
}

// QueryEventLog godoc
// @Summary      Query the event log
// @Description  Returns a page of audit trail entries, newest first
// @Tags         event-log
// @Produce      json
// @Param        page query int false "Page number (1-based)"
// @Param        limit query int false "Page size"
// @Param        userId query string false "Filter by acting user ID (UUID)"
// @Param        entityType query string false "Filter by entity type" Enums(task, board, category, customField, user, system)
// @Param        eventType query string false "Filter by event type"
// @Success      200 {object} response.SuccessResponse{data=dto.EventLogPage} "Event log page"
// @Failure      400 {object} response.ErrorResponse "Invalid query"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /event-log [get]
func (h *EventLogHandler) QueryEventLog(c *gin.Context) {
	query := dto.EventLogQuery{}

	if page := c.Query("page"); page != "" {
		p, err := strconv.Atoi(page)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid page number")
			return
		}
		query.Page = p
	}
	if limit := c.Query("limit"); limit != "" {
		l, err := strconv.Atoi(limit)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid limit")
			return
		}
		query.Limit = l
	}
	if userIDStr := c.Query("userId"); userIDStr != "" {
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid user ID")
			return
		}
		query.UserID = &userID
	}
	if entityType := c.Query("entityType"); entityType != "" {
		query.EntityType = &entityType
	}
	if eventType := c.Query("eventType"); eventType != "" {
		query.EventType = &eventType
	}

	page, err := h.auditService.Query(c.Request.Context(), query)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, page)
}

// GetEventLogSummary godoc
// @Summary      Summarize the event log
// @Description  Returns aggregate event counts per entity type
// @Tags         event-log
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=dto.EventLogSummary} "Event log summary"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /event-log/summary [get]
func (h *EventLogHandler) GetEventLogSummary(c *gin.Context) {
	summary, err := h.auditService.Summary(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, summary)
}
