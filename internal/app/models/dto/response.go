package dto

import (
	"time"

	"github.com/yigit/studentrecords/internal/app/models"
)

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success    bool            `json:"success" example:"true"`
	Message    string          `json:"message,omitempty" example:"College added."`
	Category   models.Category `json:"category,omitempty" example:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationInfo `json:"pagination,omitempty"`
	Error      *ErrorDetail    `json:"error,omitempty"`
	Timestamp  time.Time       `json:"timestamp" example:"2025-04-23T12:01:05.123Z"`
}

// PaginationInfo represents pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// NewSuccessResponse builds a successful envelope with a success-category message.
func NewSuccessResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Category:  categoryFor(message, models.CategorySuccess),
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewInfoResponse builds a successful envelope whose message is informational,
// e.g. an empty search result.
func NewInfoResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Message:   message,
		Category:  models.CategoryInfo,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// NewListResponse builds a successful envelope for a page of results.
func NewListResponse(data interface{}, pagination *PaginationInfo) APIResponse {
	return APIResponse{
		Success:    true,
		Data:       data,
		Pagination: pagination,
		Timestamp:  time.Now(),
	}
}

func categoryFor(message string, c models.Category) models.Category {
	if message == "" {
		return ""
	}
	return c
}
