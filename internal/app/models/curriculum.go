package models

import "time"

// SubTopicStatus is the CPR progress state of a sub-topic
type SubTopicStatus string

const (
	SubTopicPending    SubTopicStatus = "PENDING"
	SubTopicInProgress SubTopicStatus = "IN_PROGRESS"
	SubTopicCompleted  SubTopicStatus = "COMPLETED"
)

// CPRModule is the top level of a subject's curriculum
type CPRModule struct {
	ID        int64       `json:"id" db:"id"`
	SubjectID int64       `json:"subjectId" db:"subject_id"`
	Name      string      `json:"name" db:"name"`
	Order     int         `json:"order" db:"sort_order"`
	Topics    []*CPRTopic `json:"topics,omitempty"`
}

// CPRTopic groups sub-topics inside a module
type CPRTopic struct {
	ID        int64          `json:"id" db:"id"`
	ModuleID  int64          `json:"moduleId" db:"module_id"`
	Name      string         `json:"name" db:"name"`
	Order     int            `json:"order" db:"sort_order"`
	SubTopics []*CPRSubTopic `json:"subTopics,omitempty"`
}

// CPRSubTopic is the unit of curriculum progress. It consumes LectureCount lecture slots.
type CPRSubTopic struct {
	ID               int64          `json:"id" db:"id"`
	TopicID          int64          `json:"topicId" db:"topic_id"`
	Name             string         `json:"name" db:"name"`
	Order            int            `json:"order" db:"sort_order"`
	LectureCount     int            `json:"lectureCount" db:"lecture_count"`
	Status           SubTopicStatus `json:"status" db:"status"`
	PlannedStartDate *time.Time     `json:"plannedStartDate,omitempty" db:"planned_start_date"`
	PlannedEndDate   *time.Time     `json:"plannedEndDate,omitempty" db:"planned_end_date"`
	ActualStartDate  *time.Time     `json:"actualStartDate,omitempty" db:"actual_start_date"`
	ActualEndDate    *time.Time     `json:"actualEndDate,omitempty" db:"actual_end_date"`
}

// SequencedSubTopic is a sub-topic placed in the subject's linear curriculum order
// (module order, then topic order, then sub-topic order).
type SequencedSubTopic struct {
	CPRSubTopic
	SubjectID   int64 `json:"subjectId"`
	ModuleOrder int   `json:"moduleOrder"`
	TopicOrder  int   `json:"topicOrder"`
}

// PlannedDates is the recalculated planned window of one sub-topic
type PlannedDates struct {
	SubTopicID int64
	Start      *time.Time
	End        *time.Time
}
