package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-api/internal/dto"
	"taskboard-api/internal/response"
	"taskboard-api/internal/service"
)

type SettingHandler struct {
	settingService service.SettingService
}

func NewSettingHandler(settingService service.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// GetSettings godoc
// @Summary      List system settings
// @Description  Returns all system settings ordered by key
// @Tags         settings
// @Produce      json
// @Success      200 {object} response.SuccessResponse{data=[]dto.SettingResponse} "Setting list"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /settings [get]
func (h *SettingHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingService.GetSettings(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, settings)
}

// GetSetting godoc
// @Summary      Get a system setting
// @Description  Returns a single setting by key
// @Tags         settings
// @Produce      json
// @Param        key path string true "Setting key"
// @Success      200 {object} response.SuccessResponse{data=dto.SettingResponse} "Setting"
// @Failure      404 {object} response.ErrorResponse "Setting not found"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /settings/{key} [get]
func (h *SettingHandler) GetSetting(c *gin.Context) {
	key := c.Param("key")

	setting, err := h.settingService.GetSetting(c.Request.Context(), key)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, setting)
}

// UpdateSetting godoc
// @Summary      Update a system setting
// @Description  Upserts a setting value by key
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        key path string true "Setting key"
// @Param        request body dto.UpdateSettingRequest true "Setting update request"
// @Success      200 {object} response.SuccessResponse{data=dto.SettingResponse} "Setting updated"
// @Failure      400 {object} response.ErrorResponse "Invalid request"
// @Failure      500 {object} response.ErrorResponse "Server error"
// @Security     BearerAuth
// @Router       /settings/{key} [put]
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	key := c.Param("key")

	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleBindingError(c, err)
		return
	}

	setting, err := h.settingService.UpdateSetting(c.Request.Context(), actorFromContext(c), key, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	response.SendSuccess(c, http.StatusOK, setting)
}
