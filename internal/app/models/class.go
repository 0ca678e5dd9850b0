package models

import "time"

// Class is a single scheduled lecture of a subject
type Class struct {
	ID              int64     `json:"id" db:"id"`
	SubjectID       int64     `json:"subjectId" db:"subject_id"`
	DivisionID      int64     `json:"divisionId" db:"division_id"`
	TeacherID       int64     `json:"teacherId" db:"teacher_id"`
	RoomID          *int64    `json:"roomId,omitempty" db:"room_id"`
	StartAt         time.Time `json:"startAt" db:"start_at"`
	EndAt           time.Time `json:"endAt" db:"end_at"`
	LectureNumber   int       `json:"lectureNumber" db:"lecture_number"`
	CalendarEventID *string   `json:"calendarEventId,omitempty" db:"calendar_event_id"`
	SubTopicID      *int64    `json:"subTopicId,omitempty" db:"sub_topic_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// Overlaps reports whether the half-open intervals [start, end) of c and [start, end) intersect.
// Abutting intervals do not overlap.
func (c *Class) Overlaps(start, end time.Time) bool {
	return c.StartAt.Before(end) && c.EndAt.After(start)
}

// SameRoom reports whether c is booked in roomID. A nil roomID never matches.
func (c *Class) SameRoom(roomID *int64) bool {
	return roomID != nil && c.RoomID != nil && *c.RoomID == *roomID
}
