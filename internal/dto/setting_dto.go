package dto

import "time"

// SettingResponse represents a system setting
type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateSettingRequest represents the request to set a system setting value
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}
