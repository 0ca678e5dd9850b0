package dto

import (
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
)

// UpdateSubTopicStatusRequest moves a sub-topic to IN_PROGRESS or COMPLETED
type UpdateSubTopicStatusRequest struct {
	Status string `json:"status" validate:"required,subtopic_status" example:"IN_PROGRESS" enums:"IN_PROGRESS,COMPLETED"`
}

// CurriculumSubTopicRequest is a leaf of an uploaded curriculum.
// A zero Order means "position in the list".
type CurriculumSubTopicRequest struct {
	Name         string `json:"name" validate:"required,max=255" example:"Binary search"`
	Order        int    `json:"order,omitempty" validate:"omitempty,gte=1" example:"1"`
	LectureCount int    `json:"lectureCount" validate:"required,gte=1" example:"2"`
}

// CurriculumTopicRequest groups sub-topics
type CurriculumTopicRequest struct {
	Name      string                      `json:"name" validate:"required,max=255" example:"Searching"`
	Order     int                         `json:"order,omitempty" validate:"omitempty,gte=1" example:"1"`
	SubTopics []CurriculumSubTopicRequest `json:"subTopics" validate:"required,min=1,dive"`
}

// CurriculumModuleRequest groups topics
type CurriculumModuleRequest struct {
	Name   string                   `json:"name" validate:"required,max=255" example:"Algorithms"`
	Order  int                      `json:"order,omitempty" validate:"omitempty,gte=1" example:"1"`
	Topics []CurriculumTopicRequest `json:"topics" validate:"required,min=1,dive"`
}

// ReplaceCurriculumRequest replaces a subject's whole curriculum
type ReplaceCurriculumRequest struct {
	Modules []CurriculumModuleRequest `json:"modules" validate:"required,min=1,dive"`
}

// ProgressSummary aggregates sub-topic progress for a subject
type ProgressSummary struct {
	TotalSubTopics    int `json:"totalSubTopics" example:"24"`
	Pending           int `json:"pending" example:"12"`
	InProgress        int `json:"inProgress" example:"2"`
	Completed         int `json:"completed" example:"10"`
	BehindSchedule    int `json:"behindSchedule" example:"1"`
	LecturesRequired  int `json:"lecturesRequired" example:"40"`
	LecturesScheduled int `json:"lecturesScheduled" example:"36"`
}

// ProgressReport is the CPR view of a subject
type ProgressReport struct {
	SubjectID   int64               `json:"subjectId" example:"12"`
	GeneratedAt time.Time           `json:"generatedAt"`
	Summary     ProgressSummary     `json:"summary"`
	Modules     []*models.CPRModule `json:"modules"`
}
