package models

// Subject is taught by one teacher to one division and owns a CPR curriculum
type Subject struct {
	ID         int64  `json:"id" db:"id"`
	Name       string `json:"name" db:"name"`
	Code       string `json:"code" db:"code"`
	TeacherID  int64  `json:"teacherId" db:"teacher_id"`
	DivisionID int64  `json:"divisionId" db:"division_id"`
}
