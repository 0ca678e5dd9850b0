package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// pathID parses a positive int64 path parameter, writing a 400 on failure
func pathID(ctx *gin.Context, name, label string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID").
			WithField(name).
			WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// queryID parses an optional positive int64 query parameter
func queryID(ctx *gin.Context, name string) (*int64, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, name+" must be a positive number").WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return nil, false
	}
	return &id, true
}

// queryTime parses an optional RFC 3339 timestamp or YYYY-MM-DD date (midnight in loc)
func queryTime(ctx *gin.Context, name string, loc *time.Location) (*time.Time, bool) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := helpers.ParseDate(raw, loc); err == nil {
		return &t, true
	}
	errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, name+" must be an RFC 3339 timestamp or a YYYY-MM-DD date").WithField(name)
	ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
	return nil, false
}
