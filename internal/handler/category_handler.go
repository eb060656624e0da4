package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// CreateCategory godoc
// @Summary      Create a category
// @Description  Appends a category to the end of its board
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateCategoryRequest true "Category creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.CategoryResponse} "Category created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), actorFromContext(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, category)
}

// GetCategoriesByBoard godoc
// @Summary      List categories of a board
// @Description  Returns the categories of a board sorted by display order
// @Tags         categories
// @Produce      json
// @Param        boardId path string true "Board ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=[]dto.CategoryResponse} "Category list"
// @Failure      400 {object} response.ErrorResponse "Invalid board ID"
// @Failure      404 {object} response.ErrorResponse "Board not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /boards/{boardId}/categories [get]
func (h *CategoryHandler) GetCategoriesByBoard(c *gin.Context) {
	boardID, err := uuid.Parse(c.Param("boardId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid board ID")
		return
	}

	categories, err := h.categoryService.GetCategoriesByBoard(c.Request.Context(), boardID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, categories)
}

// UpdateCategory godoc
// @Summary      Update a category
// @Description  Applies a partial update to a category, including reordering
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        request body dto.UpdateCategoryRequest true "Category update request"
// @Success      200 {object} response.SuccessResponse{data=dto.CategoryResponse} "Category updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories/{categoryId} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	var req dto.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(c.Request.Context(), actorFromContext(c), categoryID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, category)
}

// DeleteCategory godoc
// @Summary      Delete a category
// @Description  Deletes a category; fails with a conflict while it still holds active tasks
// @Tags         categories
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Success      204 "Category deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid category ID"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      409 {object} response.ErrorResponse "Category still contains active tasks"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories/{categoryId} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), actorFromContext(c), categoryID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
