package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTemplate(t *testing.T, req *dto.ScheduleClassesRequest, loc *time.Location) RecurrenceTemplate {
	t.Helper()
	tpl, err := ParseTemplate(req, loc)
	require.NoError(t, err)
	return tpl
}

func TestExpand(t *testing.T) {
	req := &dto.ScheduleClassesRequest{
		SubjectID: 1,
		StartDate: "2025-01-06",
		EndDate:   "2025-01-19",
		Items: []dto.RecurrenceItemRequest{
			item("WEDNESDAY", "11:00", "12:00", 2),
			item("monday", "09:00", "10:00", 1),
		},
	}
	tpl := mustTemplate(t, req, time.UTC)

	tests := []struct {
		name   string
		now    time.Time
		starts []time.Time
	}{
		{
			name:   "all slots in the future",
			now:    day(-30),
			starts: []time.Time{at(day(0), 9, 0), at(day(2), 11, 0), at(day(7), 9, 0), at(day(9), 11, 0)},
		},
		{
			name:   "past slots are dropped",
			now:    at(day(2), 10, 30),
			starts: []time.Time{at(day(2), 11, 0), at(day(7), 9, 0), at(day(9), 11, 0)},
		},
		{
			name:   "slot starting exactly now is kept",
			now:    at(day(9), 11, 0),
			starts: []time.Time{at(day(9), 11, 0)},
		},
		{
			name: "everything in the past",
			now:  day(30),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Expand(tpl, tt.now)
			require.Len(t, got, len(tt.starts))
			for i, c := range got {
				assert.True(t, tt.starts[i].Equal(c.Start), "slot %d starts %s, want %s", i, c.Start, tt.starts[i])
				assert.Equal(t, time.Hour, c.End.Sub(c.Start))
			}
		})
	}
}

func TestExpand_CountMatchesDaysTimesItems(t *testing.T) {
	// Four full weeks with three items on distinct days.
	req := &dto.ScheduleClassesRequest{
		StartDate: "2025-01-06",
		EndDate:   "2025-02-02",
		Items: []dto.RecurrenceItemRequest{
			item("MONDAY", "09:00", "10:00", 1),
			item("TUESDAY", "09:00", "10:00", 2),
			item("FRIDAY", "14:00", "15:30", 3),
		},
	}
	got := Expand(mustTemplate(t, req, time.UTC), day(-1))
	assert.Len(t, got, 12)

	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].Start.Before(got[i-1].Start), "candidates must be in generation order")
	}
	assert.Equal(t, 3, got[2].LectureNumber)
}

func TestExpand_UsesScheduleLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+30*60)
	req := &dto.ScheduleClassesRequest{
		StartDate: "2025-01-06",
		EndDate:   "2025-01-06",
		Items:     []dto.RecurrenceItemRequest{item("MONDAY", "09:00", "10:00", 1)},
	}
	got := Expand(mustTemplate(t, req, ist), day(-1))
	require.Len(t, got, 1)
	assert.Equal(t, time.Date(2025, time.January, 6, 3, 30, 0, 0, time.UTC), got[0].Start.UTC())
}

func TestParseTemplate_Errors(t *testing.T) {
	valid := func() *dto.ScheduleClassesRequest {
		return &dto.ScheduleClassesRequest{
			StartDate: "2025-01-06",
			EndDate:   "2025-01-10",
			Items:     []dto.RecurrenceItemRequest{item("MONDAY", "09:00", "10:00", 1)},
		}
	}

	tests := []struct {
		name   string
		mutate func(r *dto.ScheduleClassesRequest)
		field  string
	}{
		{"bad start date", func(r *dto.ScheduleClassesRequest) { r.StartDate = "06/01/2025" }, "startDate"},
		{"end before start", func(r *dto.ScheduleClassesRequest) { r.EndDate = "2025-01-05" }, "endDate"},
		{"no items", func(r *dto.ScheduleClassesRequest) { r.Items = nil }, "items"},
		{"unknown day", func(r *dto.ScheduleClassesRequest) { r.Items[0].DayOfWeek = "FUNDAY" }, "items[0].dayOfWeek"},
		{"bad clock", func(r *dto.ScheduleClassesRequest) { r.Items[0].StartTime = "9am" }, "items[0].startTime"},
		{"end not after start", func(r *dto.ScheduleClassesRequest) { r.Items[0].EndTime = "09:00" }, "items[0].endTime"},
		{"lecture number zero", func(r *dto.ScheduleClassesRequest) { r.Items[0].LectureNumber = 0 }, "items[0].lectureNumber"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)

			_, err := ParseTemplate(req, time.UTC)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)

			var ce *apperrors.CustomError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.field, ce.Details["field"])
		})
	}

	t.Run("single day range is valid", func(t *testing.T) {
		req := valid()
		req.EndDate = req.StartDate
		_, err := ParseTemplate(req, time.UTC)
		assert.NoError(t, err)
	})
}

func booking(id, teacherID int64, roomID *int64, start, end time.Time) *models.Class {
	return &models.Class{ID: id, TeacherID: teacherID, RoomID: roomID, StartAt: start, EndAt: end}
}

func TestValidate(t *testing.T) {
	const teacher, otherTeacher = int64(1), int64(2)
	room := helpers.Int64Ptr(10)
	otherRoom := helpers.Int64Ptr(11)
	d := day(0)

	slot := func(h int) Candidate {
		return Candidate{Start: at(d, h, 0), End: at(d, h+1, 0), LectureNumber: 1}
	}

	tests := []struct {
		name       string
		candidates []Candidate
		roomID     *int64
		existing   []*models.Class
		wantDim    apperrors.ConflictDimension
		wantStart  time.Time
		wantClass  int64
	}{
		{
			name:       "no bookings",
			candidates: []Candidate{slot(9), slot(10)},
			roomID:     room,
		},
		{
			name:       "abutting booking does not overlap",
			candidates: []Candidate{slot(10)},
			roomID:     room,
			existing:   []*models.Class{booking(7, teacher, room, at(d, 9, 0), at(d, 10, 0)), booking(8, teacher, room, at(d, 11, 0), at(d, 12, 0))},
		},
		{
			name:       "room overlap with another teacher",
			candidates: []Candidate{slot(9)},
			roomID:     room,
			existing:   []*models.Class{booking(7, otherTeacher, room, at(d, 9, 30), at(d, 10, 30))},
			wantDim:    apperrors.ConflictRoom,
			wantStart:  at(d, 9, 0),
			wantClass:  7,
		},
		{
			name:       "room is ignored when none is requested",
			candidates: []Candidate{slot(9)},
			existing:   []*models.Class{booking(7, otherTeacher, room, at(d, 9, 0), at(d, 10, 0))},
		},
		{
			name:       "teacher overlap in another room",
			candidates: []Candidate{slot(9)},
			roomID:     room,
			existing:   []*models.Class{booking(7, teacher, otherRoom, at(d, 8, 30), at(d, 9, 30))},
			wantDim:    apperrors.ConflictTeacher,
			wantStart:  at(d, 9, 0),
			wantClass:  7,
		},
		{
			name:       "teacher checked without a room",
			candidates: []Candidate{slot(9)},
			existing:   []*models.Class{booking(7, teacher, nil, at(d, 9, 0), at(d, 10, 0))},
			wantDim:    apperrors.ConflictTeacher,
			wantStart:  at(d, 9, 0),
			wantClass:  7,
		},
		{
			name:       "same room and teacher reports room",
			candidates: []Candidate{slot(9)},
			roomID:     room,
			existing:   []*models.Class{booking(7, teacher, room, at(d, 9, 0), at(d, 10, 0))},
			wantDim:    apperrors.ConflictRoom,
			wantStart:  at(d, 9, 0),
			wantClass:  7,
		},
		{
			name:       "first conflicting candidate in generation order wins",
			candidates: []Candidate{slot(8), slot(12), slot(9)},
			roomID:     room,
			existing: []*models.Class{
				booking(7, otherTeacher, room, at(d, 9, 0), at(d, 10, 0)),
				booking(8, teacher, otherRoom, at(d, 12, 0), at(d, 13, 0)),
			},
			wantDim:   apperrors.ConflictTeacher,
			wantStart: at(d, 12, 0),
			wantClass: 8,
		},
		{
			name:       "overlap inside the batch",
			candidates: []Candidate{slot(9), {Start: at(d, 9, 30), End: at(d, 10, 30)}},
			roomID:     room,
			wantDim:    apperrors.ConflictRoom,
			wantStart:  at(d, 9, 30),
		},
		{
			name:       "overlap inside the batch without a room",
			candidates: []Candidate{slot(9), slot(9)},
			wantDim:    apperrors.ConflictTeacher,
			wantStart:  at(d, 9, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.candidates, teacher, tt.roomID, tt.existing)
			if tt.wantDim == "" {
				assert.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, apperrors.ErrConflict)
			var conflict *apperrors.ScheduleConflictError
			require.True(t, errors.As(err, &conflict))
			assert.Equal(t, tt.wantDim, conflict.Dimension)
			assert.True(t, tt.wantStart.Equal(conflict.Start))
			assert.Equal(t, tt.wantClass, conflict.ConflictingClassID)
			assert.Contains(t, err.Error(), tt.wantStart.Format("15:04"))
		})
	}
}

func TestWindow(t *testing.T) {
	from, to := Window([]Candidate{
		{Start: at(day(1), 9, 0), End: at(day(1), 10, 0)},
		{Start: at(day(0), 14, 0), End: at(day(0), 15, 0)},
		{Start: at(day(3), 8, 0), End: at(day(3), 12, 0)},
	})
	assert.True(t, at(day(0), 14, 0).Equal(from))
	assert.True(t, at(day(3), 12, 0).Equal(to))
}
