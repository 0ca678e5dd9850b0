package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/auth"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/gin-gonic/gin"
)

// HandleAPIError handles common API errors and returns appropriate responses
func HandleAPIError(c *gin.Context, err error) {
	var conflict *apperrors.ScheduleConflictError
	var custom *apperrors.CustomError

	switch {
	case errors.As(err, &conflict):
		detail := dto.NewErrorDetail(dto.ErrorCodeConflict, conflict.Error()).WithDetails(gin.H{
			"dimension": conflict.Dimension,
			"start":     conflict.Start.Format(time.RFC3339),
			"end":       conflict.End.Format(time.RFC3339),
			"classId":   conflict.ConflictingClassID,
		})
		c.JSON(http.StatusConflict, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		code := dto.ErrorCodeValidationFailed
		if errors.Is(err, apperrors.ErrBadRequest) {
			code = dto.ErrorCodeBadRequest
		}
		detail := dto.NewErrorDetail(code, err.Error())
		if errors.As(err, &custom) {
			if field, ok := custom.Details["field"].(string); ok {
				detail = detail.WithField(field)
			}
		}
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))

	case errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, err.Error())))

	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeConflict, err.Error())))

	case errors.Is(err, auth.ErrExpiredToken):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")))

	case errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")))

	default:
		logger.Ctx(c.Request.Context()).Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Unhandled API error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	}
}
