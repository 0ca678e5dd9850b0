package dto

import (
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
)

// RecurrenceItemRequest is one weekly slot of a schedule template
type RecurrenceItemRequest struct {
	DayOfWeek     string `json:"dayOfWeek" validate:"required,weekday" example:"MONDAY"`
	StartTime     string `json:"startTime" validate:"required,clock" example:"09:00"`
	EndTime       string `json:"endTime" validate:"required,clock" example:"10:30"`
	LectureNumber int    `json:"lectureNumber" validate:"required,gte=1" example:"1"`
}

// ScheduleClassesRequest expands a weekly template over an inclusive date range
type ScheduleClassesRequest struct {
	SubjectID int64                   `json:"subjectId" validate:"required,gt=0" example:"12"`
	RoomID    *int64                  `json:"roomId,omitempty" validate:"omitempty,gt=0" example:"3"`
	StartDate string                  `json:"startDate" validate:"required,date" example:"2025-01-06"`
	EndDate   string                  `json:"endDate" validate:"required,date" example:"2025-03-28"`
	Items     []RecurrenceItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateClassRequest is a partial update of one class.
// ClearRoom and ClearSubTopic unset the reference; they win over RoomID and SubTopicID.
type UpdateClassRequest struct {
	LectureNumber *int       `json:"lectureNumber,omitempty" validate:"omitempty,gte=1" example:"4"`
	StartAt       *time.Time `json:"startAt,omitempty" example:"2025-01-06T09:00:00+05:30"`
	EndAt         *time.Time `json:"endAt,omitempty" example:"2025-01-06T10:30:00+05:30"`
	RoomID        *int64     `json:"roomId,omitempty" validate:"omitempty,gt=0" example:"3"`
	ClearRoom     bool       `json:"clearRoom,omitempty"`
	SubTopicID    *int64     `json:"subTopicId,omitempty" validate:"omitempty,gt=0"`
	ClearSubTopic bool       `json:"clearSubTopic,omitempty"`
}

// ChangesSchedule reports whether the update touches the booking window or the room
func (r *UpdateClassRequest) ChangesSchedule() bool {
	return r.StartAt != nil || r.EndAt != nil || r.RoomID != nil || r.ClearRoom
}

// ChangesSequence reports whether the update can reorder the subject's class slots.
// Planned dates follow slot starts only.
func (r *UpdateClassRequest) ChangesSequence() bool {
	return r.StartAt != nil
}

// ClassListQuery filters GET /classes
type ClassListQuery struct {
	SubjectID *int64
	TeacherID *int64
	RoomID    *int64
	From      *time.Time
	To        *time.Time
	Page      int
	Size      int
}

// ClassListResponse is one page of classes
type ClassListResponse struct {
	Classes    []*models.Class `json:"classes"`
	Pagination PaginationInfo  `json:"pagination"`
}
