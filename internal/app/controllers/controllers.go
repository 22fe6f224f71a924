package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studentrecords/internal/app/models/dto"
)

// parseIDParam reads a positive integer path parameter. On failure it writes a 400
// response and returns false.
func parseIDParam(ctx *gin.Context, entity string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+entity+" ID")
		errorDetail = errorDetail.WithField("id").WithDetails(strings.ToUpper(entity[:1]) + entity[1:] + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// searchQuery returns the trimmed ?query= value
func searchQuery(ctx *gin.Context) string {
	return strings.TrimSpace(ctx.Query("query"))
}
