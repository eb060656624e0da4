package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask godoc
// @Summary      Create a task
// @Description  Creates a task at the end of its category
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateTaskRequest true "Task creation request"
// @Success      201 {object} response.SuccessResponse{data=dto.TaskResponse} "Task created"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), actorFromContext(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusCreated, task)
}

// GetTask godoc
// @Summary      Get a task
// @Description  Returns a single task with stale custom data filtered out
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task"
// @Failure      400 {object} response.ErrorResponse "Invalid task ID"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tasks/{taskId} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// GetTasksByCategory godoc
// @Summary      List tasks of a category
// @Description  Returns the ordered task list of a category
// @Tags         tasks
// @Produce      json
// @Param        categoryId path string true "Category ID (UUID)"
// @Param        includeArchived query bool false "Include archived tasks"
// @Success      200 {object} response.SuccessResponse{data=[]dto.TaskResponse} "Task list"
// @Failure      400 {object} response.ErrorResponse "Invalid category ID"
// @Failure      404 {object} response.ErrorResponse "Category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /categories/{categoryId}/tasks [get]
func (h *TaskHandler) GetTasksByCategory(c *gin.Context) {
	categoryID, err := uuid.Parse(c.Param("categoryId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid category ID")
		return
	}

	includeArchived := c.Query("includeArchived") == "true"

	tasks, err := h.taskService.GetTasksByCategory(c.Request.Context(), categoryID, includeArchived)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, tasks)
}

// UpdateTask godoc
// @Summary      Update a task
// @Description  Applies a partial update; custom data is merged over the stored mapping
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.UpdateTaskRequest true "Task update request"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tasks/{taskId} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), actorFromContext(c), taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// ArchiveTask godoc
// @Summary      Archive a task
// @Description  Marks a task as archived
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task archived"
// @Failure      400 {object} response.ErrorResponse "Invalid task ID"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tasks/{taskId}/archive [post]
func (h *TaskHandler) ArchiveTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	task, err := h.taskService.ArchiveTask(c.Request.Context(), actorFromContext(c), taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// RestoreTask godoc
// @Summary      Restore a task
// @Description  Brings an archived task back to its category
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task restored"
// @Failure      400 {object} response.ErrorResponse "Invalid task ID"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tasks/{taskId}/restore [post]
func (h *TaskHandler) RestoreTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	task, err := h.taskService.RestoreTask(c.Request.Context(), actorFromContext(c), taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary      Delete a task
// @Description  Hard deletes a task; the owning category ID is returned in the X-Category-Id header
// @Tags         tasks
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Success      204 "Task deleted"
// @Failure      400 {object} response.ErrorResponse "Invalid task ID"
// @Failure      404 {object} response.ErrorResponse "Task not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tasks/{taskId} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	categoryID, err := h.taskService.DeleteTask(c.Request.Context(), actorFromContext(c), taskID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.Header("X-Category-Id", categoryID.String())
	c.Status(http.StatusNoContent)
}

// MoveTask godoc
// @Summary      Move a task
// @Description  Relocates a task to a position inside a target category
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        taskId path string true "Task ID (UUID)"
// @Param        request body dto.MoveTaskRequest true "Task move request"
// @Success      200 {object} response.SuccessResponse{data=dto.TaskResponse} "Task moved"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      404 {object} response.ErrorResponse "Task or category not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /tasks/{taskId}/move [post]
func (h *TaskHandler) MoveTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("taskId"))
	if err != nil {
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "Invalid task ID")
		return
	}

	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	task, err := h.taskService.MoveTask(c.Request.Context(), actorFromContext(c), taskID, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, task)
}
