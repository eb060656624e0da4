package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type CustomFieldHandler struct {
	customFieldService service.CustomFieldService
}

func NewCustomFieldHandler(customFieldService service.CustomFieldService) *CustomFieldHandler {
	return &CustomFieldHandler{
		customFieldService: customFieldService,
	}
}

// CreateCustomField godoc
// @Summary      Create a custom field
// @Description  Creates a board-scoped custom field; names are unique per board
// @Tags         custom-fields
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCustomFieldRequest true "Custom field creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.CustomFieldResponse} "Custom field created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      409 {object} response.ErrorResponse "Field name already in use"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /custom-fields [post]
func (h *CustomFieldHandler) CreateCustomField(c *gin.Context) {
	var req dto.CreateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	field, err := h.customFieldService.CreateCustomField(c.Request.Context(), actorFromContext(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, field)
}

// GetCustomFieldsByBoard godoc
// @Summary      List custom fields of a board
// @Description  Returns the custom fields of a board in creation order
// @Tags         custom-fields
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CustomFieldResponse} "Custom field list"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /boards/{boardId}/custom-fields [get]
func (h *CustomFieldHandler) GetCustomFieldsByBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	fields, err := h.customFieldService.GetCustomFieldsByBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, fields)
}

// UpdateCustomField godoc
// @Summary      Update a custom field
// @Description  Applies a partial update; renaming does not rewrite stored task data
// @Tags         custom-fields
// @Accept       json
// @Produce      json
// @Param        fieldId path string true "Custom field ID (UUID)"
// @Param        request body dto.UpdateCustomFieldRequest true "Custom field update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CustomFieldResponse} "Custom field updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Custom field not found"
// @Failure      409 {object} response.ErrorResponse "Field name already in use"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /custom-fields/{fieldId} [patch]
func (h *CustomFieldHandler) UpdateCustomField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid custom field ID")
		return
	}

	var req dto.UpdateCustomFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	field, err := h.customFieldService.UpdateCustomField(c.Request.Context(), actorFromContext(c), fieldID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, field)
}

// DeleteCustomField godoc
// @Summary      Delete a custom field
// @Description  Removes a field definition; task data stored under its name is kept
// @Tags         custom-fields
// @Produce      json
// @Param        fieldId path string true "Custom field ID (UUID)"
// @Success      204 "Custom field deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid custom field ID"
// @Failure      404 {object} response.ErrorResponse "Custom field not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /custom-fields/{fieldId} [delete]
func (h *CustomFieldHandler) DeleteCustomField(c *gin.Context) {
	fieldID, err := uuid.Parse(c.Param("fieldId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid custom field ID")
		return
	}

	if err := h.customFieldService.DeleteCustomField(c.Request.Context(), actorFromContext(c), fieldID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
