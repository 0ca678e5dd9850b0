package models

// Teacher is the instructor a subject (and therefore its classes) is assigned to
type Teacher struct {
	ID    int64  `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
