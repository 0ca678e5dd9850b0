package models

// Room is a bookable classroom inside a center
type Room struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	CenterID int64  `json:"centerId" db:"center_id"`
}
