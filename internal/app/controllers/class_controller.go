package controllers

import (
	"net/http"
	"time"

	authz "github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/auth"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/services"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/middleware"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
)

// ClassController handles timetable operations
type ClassController struct {
	scheduleService *services.ScheduleService
	authzService    *authz.AuthorizationService
	loc             *time.Location
}

// NewClassController creates a new ClassController
func NewClassController(scheduleService *services.ScheduleService, authzService *authz.AuthorizationService, loc *time.Location) *ClassController {
	return &ClassController{
		scheduleService: scheduleService,
		authzService:    authzService,
		loc:             loc,
	}
}

// ScheduleClasses expands a weekly template into class instances
// @Summary Schedule recurring classes
// @Description Expands a weekly template over an inclusive date range and books every future slot.
// @Description The whole batch is rejected when any slot collides with an existing booking of the teacher or room.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ScheduleClassesRequest true "Recurrence template"
// @Success 201 {object} dto.APIResponse{data=[]models.Class} "Classes scheduled"
// @Success 200 {object} dto.APIResponse{data=[]models.Class} "No future slots in range"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Subject or room not found"
// @Failure 409 {object} dto.ErrorResponse "Room or teacher already booked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /class/schedule [post]
func (c *ClassController) ScheduleClasses(ctx *gin.Context) {
	var req dto.ScheduleClassesRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}
	if err := c.scheduleService.CheckTemplate(&req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	principal, _ := middleware.PrincipalFromContext(ctx)
	if err := c.authzService.ValidateSubjectAccess(ctx, principal, req.SubjectID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	classes, err := c.scheduleService.ScheduleClasses(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusCreated
	if len(classes) == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, dto.NewAPIResponse(classes, "Classes scheduled"))
}

// UpdateClass applies a partial update to one class
// @Summary Update a class
// @Description Changes the time, room, lecture number or sub-topic tag of a class.
// @Description A new time or room is checked against every other booking of the teacher and room.
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Param request body dto.UpdateClassRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class updated"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 409 {object} dto.ErrorResponse "Room or teacher already booked"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /class/{id} [patch]
func (c *ClassController) UpdateClass(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Class")
	if !ok {
		return
	}

	var req dto.UpdateClassRequest
	if !middleware.BindAndValidate(ctx, &req) {
		return
	}

	principal, _ := middleware.PrincipalFromContext(ctx)
	if err := c.authzService.ValidateClassAccess(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class, err := c.scheduleService.UpdateClass(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class, "Class updated"))
}

// DeleteClass removes a class
// @Summary Delete a class
// @Description Removes a class and rederives the planned CPR dates of its subject
// @Tags classes
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 204 "Class deleted"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /class/{id} [delete]
func (c *ClassController) DeleteClass(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Class")
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFromContext(ctx)
	if err := c.authzService.ValidateClassAccess(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.scheduleService.DeleteClass(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetClass retrieves a class by ID
// @Summary Get class details
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Class ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Class} "Class retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid class ID format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not assigned to the subject"
// @Failure 404 {object} dto.ErrorResponse "Class not found"
// @Router /classes/{id} [get]
func (c *ClassController) GetClass(ctx *gin.Context) {
	id, ok := pathID(ctx, "id", "Class")
	if !ok {
		return
	}

	principal, _ := middleware.PrincipalFromContext(ctx)
	if err := c.authzService.ValidateClassAccess(ctx, principal, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	class, err := c.scheduleService.GetClass(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(class, "Class retrieved"))
}

// ListClasses lists classes with filters
// @Summary List classes
// @Description Lists classes ordered by start time. Teachers only see their own classes.
// @Tags classes
// @Produce json
// @Security BearerAuth
// @Param subjectId query int false "Subject ID"
// @Param teacherId query int false "Teacher ID"
// @Param roomId query int false "Room ID"
// @Param from query string false "Earliest start (RFC 3339 or YYYY-MM-DD)"
// @Param to query string false "Start before (RFC 3339 or YYYY-MM-DD)"
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(50)
// @Success 200 {object} dto.APIResponse{data=dto.ClassListResponse} "Classes retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Router /classes [get]
func (c *ClassController) ListClasses(ctx *gin.Context) {
	var (
		q  dto.ClassListQuery
		ok bool
	)
	if q.SubjectID, ok = queryID(ctx, "subjectId"); !ok {
		return
	}
	if q.TeacherID, ok = queryID(ctx, "teacherId"); !ok {
		return
	}
	if q.RoomID, ok = queryID(ctx, "roomId"); !ok {
		return
	}
	if q.From, ok = queryTime(ctx, "from", c.loc); !ok {
		return
	}
	if q.To, ok = queryTime(ctx, "to", c.loc); !ok {
		return
	}
	q.Page, q.Size = helpers.ParsePaginationParams(ctx)

	principal, _ := middleware.PrincipalFromContext(ctx)
	if principal.Role == models.RoleTeacher {
		q.TeacherID = helpers.Int64Ptr(principal.UserID)
	}

	classes, pagination, err := c.scheduleService.ListClasses(ctx, q)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ClassListResponse{
		Classes:    classes,
		Pagination: pagination,
	}, "Classes retrieved"))
}
