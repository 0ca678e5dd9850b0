package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	authz "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/auth"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/services"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/middleware"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxCurriculumBytes = 5 << 20
)

// CPRController handles curriculum progress operations
type CPRController struct {
	cprService   *services.CPRService
	authzService *authz.AuthorizationService
}

// NewCPRController creates a new CPRController
func NewCPRController(cprService *services.CPRService, authzService *authz.AuthorizationService) *CPRController {
	return &CPRController{
		cprService:   cprService,
		authzService: authzService,
	}
}

// authorizeSubject parses :subjectId and checks the caller may manage it
func (c *CPRController) authorizeSubject(ctx *gin.Context) (int64, bool) {
	subjectID, ok := pathID(ctx, "subjectId", "Subject")
	if !ok {
		return 0, false
	}
	principal, _ := middleware.PrincipalFromContext(ctx)
	if err := c.authzService.ValidateSubjectAccess(ctx, principal, subjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	return subjectID, true
}

// UpdateSubTopicStatus marks a sub-topic as started or finished
// @Summary Update sub-topic status
// @Description Moves a sub-topic to IN_PROGRESS or COMPLETED and records the actual dates.
// @Description IN_PROGRESS sets the actual start once; COMPLETED also sets the actual end to now.
// @Tags cpr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sub-topic ID" Format(int64) minimum(1)
// @Param request body dto.UpdateSubTopicStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.CPRSubTopic} "Sub-topic updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid status"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Sub-topic not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cpr/sub-topics/{id}/status [patch]
func (c *CPRController) UpdateSubTopicStatus(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Sub-topic")
	if !ok {
		return
	}

	var req dto.UpdateSubTopicStatusRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	principal, _ := middleware.PrincipalFromContext(ctx)
	if err := c.authzService.ValidateSubTopicAccess(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	subTopic, err := c.cprService.SetStatus(ctx, id, models.SubTopicStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subTopic, "Sub-topic status updated"))
}

// ReplaceCurriculum uploads a curriculum as JSON
// @Summary Replace a subject's curriculum
// @Description Deletes the subject's modules, topics and sub-topics and recreates them from the request.
// @Description Classes tagged with removed sub-topics are untagged and planned dates are recalculated.
// @Tags cpr
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param request body dto.ReplaceCurriculumRequest true "Curriculum tree"
// @Success 200 {object} dto.APIResponse{data=[]models.CPRModule} "Curriculum replaced"
// @Failure 400 {object} dto.ErrorResponse "Invalid curriculum"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cpr/subjects/{subjectId}/curriculum [put]
func (c *CPRController) ReplaceCurriculum(ctx *gin.Context) {
	subjectID, ok := c.authorizeSubject(ctx)
	if !ok {
		return
	}

	var req dto.ReplaceCurriculumRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	tree, err := c.cprService.ReplaceCurriculum(ctx, subjectID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tree, "Curriculum replaced"))
}

// UploadCurriculum uploads a curriculum as an .xlsx workbook
// @Summary Upload a curriculum workbook
// @Description Replaces the subject's curriculum with the first sheet of an .xlsx file.
// @Description Required columns: Module, Topic, Sub Topic, Lecture Count.
// @Tags cpr
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Param file formData file true "Curriculum workbook (.xlsx)"
// @Success 200 {object} dto.APIResponse{data=[]models.CPRModule} "Curriculum replaced"
// @Failure 400 {object} dto.ErrorResponse "Invalid workbook"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /cpr/subjects/{subjectId}/curriculum/upload [post]
func (c *CPRController) UploadCurriculum(ctx *gin.Context) {
	subjectID, ok := c.authorizeSubject(ctx)
	if !ok {
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("file", "a multipart file field named file is required"))
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".xlsx") {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", "only .xlsx files are accepted"))
		return
	}
	if fileHeader.Size > maxCurriculumBytes {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", fmt.Sprintf("file is larger than %d bytes", maxCurriculumBytes)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, fmt.Errorf("failed to open upload: %w", err))
		return
	}
	defer file.Close()

	tree, err := c.cprService.ImportCurriculum(ctx, subjectID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tree, "Curriculum imported"))
}

// GetProgress returns the curriculum progress of a subject
// @Summary Get curriculum progress
// @Description Returns the curriculum tree with planned and actual dates and a summary
// @Tags cpr
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.ProgressReport} "Progress report"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /cpr/subjects/{subjectId}/progress [get]
func (c *CPRController) GetProgress(ctx *gin.Context) {
	subjectID, ok := c.authorizeSubject(ctx)
	if !ok {
		return
	}

	report, err := c.cprService.Progress(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report, "Progress report generated"))
}

// ExportProgress downloads the progress report as a workbook
// @Summary Export curriculum progress
// @Tags cpr
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {file} file "Progress workbook"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /cpr/subjects/{subjectId}/progress/export [get]
func (c *CPRController) ExportProgress(ctx *gin.Context) {
	subjectID, ok := c.authorizeSubject(ctx)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := c.cprService.ExportProgress(ctx, subjectID, &buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filename := fmt.Sprintf("cpr-progress-%d-%s.xlsx", subjectID, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Recalculate rederives planned dates on demand
// @Summary Recalculate planned dates
// @Description Rederives planned sub-topic dates from the subject's timetable. Admin only.
// @Tags cpr
// @Produce json
// @Security BearerAuth
// @Param subjectId path int true "Subject ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=map[string]int} "Number of changed sub-topics"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Admin only"
// @Failure 404 {object} dto.ErrorResponse "Subject not found"
// @Router /cpr/subjects/{subjectId}/recalculate [post]
func (c *CPRController) Recalculate(ctx *gin.Context) {
	subjectID, ok := c.authorizeSubject(ctx)
	if !ok {
		return
	}

	changed, err := c.cprService.Recalculate(ctx, subjectID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"changed": changed}, "Planned dates recalculated"))
}
