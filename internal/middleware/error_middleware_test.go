package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveError(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	HandleAPIError(c, err)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w.Code, resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  dto.ErrorCode
		wantFld  string
	}{
		{"validation with field", apperrors.NewValidationError("endDate", "endDate must not be before startDate"), http.StatusBadRequest, dto.ErrorCodeValidationFailed, "endDate"},
		{"bad request", apperrors.NewBadRequestError("file", "file is not a readable .xlsx workbook"), http.StatusBadRequest, dto.ErrorCodeBadRequest, "file"},
		{"wrapped not found", fmt.Errorf("load: %w", apperrors.ErrClassNotFound), http.StatusNotFound, dto.ErrorCodeResourceNotFound, ""},
		{"forbidden", apperrors.NewForbiddenError("you are not assigned to this subject"), http.StatusForbidden, dto.ErrorCodeForbidden, ""},
		{"generic conflict", fmt.Errorf("lock: %w", apperrors.ErrConflict), http.StatusConflict, dto.ErrorCodeConflict, ""},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, ""},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, dto.ErrorCodeInternalServer, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, resp := serveError(t, tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantErr, resp.Error.Code)
			assert.Equal(t, tt.wantFld, resp.Error.Field)
		})
	}
}

func TestHandleAPIError_ScheduleConflict(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	err := fmt.Errorf("commit: %w", &apperrors.ScheduleConflictError{
		Dimension:          apperrors.ConflictTeacher,
		Start:              time.Date(2025, time.January, 6, 9, 0, 0, 0, ist),
		End:                time.Date(2025, time.January, 6, 10, 0, 0, 0, ist),
		ConflictingClassID: 42,
	})

	code, resp := serveError(t, err)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, dto.ErrorCodeConflict, resp.Error.Code)
	assert.Equal(t, "teacher is already booked for the slot starting Mon, 06 Jan 2025 09:00 IST", resp.Error.Message)

	details, ok := resp.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "teacher", details["dimension"])
	assert.Equal(t, "2025-01-06T09:00:00+05:30", details["start"])
	assert.Equal(t, "2025-01-06T10:00:00+05:30", details["end"])
	assert.EqualValues(t, 42, details["classId"])
}
