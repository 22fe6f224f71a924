package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
)

// --- Central Error Handling ---

// errorMapping ties an error category to its HTTP status, error code and fallback message
type errorMapping struct {
	target   error
	status   int
	code     dto.ErrorCode
	fallback string
}

var errorMappings = []errorMapping{
	{apperrors.ErrValidationFailed, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"},
	{apperrors.ErrBadRequest, http.StatusBadRequest, dto.ErrorCodeResourceInvalid, "Bad request"},
	{apperrors.ErrUniquenessConflict, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"},
	{apperrors.ErrResourceNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"},
	{apperrors.ErrUpload, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, "Photo upload failed."},
	{apperrors.ErrStorage, http.StatusInternalServerError, dto.ErrorCodeDatabaseError, "Internal server error"},
}

// HandleAPIError maps err to a status code and writes an error-category envelope.
// The message is the user-facing message carried by err when there is one.
func HandleAPIError(c *gin.Context, err error) {
	_ = c.Error(err)

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			c.JSON(m.status, dto.NewErrorResponse(dto.NewErrorDetail(m.code, apperrors.MessageOf(err, m.fallback))))
			return
		}
	}

	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").WithSeverity(dto.ErrorSeverityCritical),
	))
}

// StatusOf returns the HTTP status HandleAPIError would use for err
func StatusOf(err error) int {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status
		}
	}
	return http.StatusInternalServerError
}
