package services

import (
	"fmt"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
)

// RecurrenceItem is one weekly slot of a template
type RecurrenceItem struct {
	Day           models.Weekday
	Start         helpers.Clock
	End           helpers.Clock
	LectureNumber int
}

// RecurrenceTemplate is a weekly pattern repeated over an inclusive date range
type RecurrenceTemplate struct {
	From  time.Time
	To    time.Time
	Items []RecurrenceItem
}

// Candidate is a concrete slot produced by Expand
type Candidate struct {
	Start         time.Time
	End           time.Time
	LectureNumber int
}

// ParseTemplate validates a schedule request and converts it into a template in loc.
// Errors point at the offending request field.
func ParseTemplate(req *dto.ScheduleClassesRequest, loc *time.Location) (RecurrenceTemplate, error) {
	from, err := helpers.ParseDate(req.StartDate, loc)
	if err != nil {
		return RecurrenceTemplate{}, apperrors.NewValidationError("startDate", err.Error())
	}
	to, err := helpers.ParseDate(req.EndDate, loc)
	if err != nil {
		return RecurrenceTemplate{}, apperrors.NewValidationError("endDate", err.Error())
	}
	if to.Before(from) {
		return RecurrenceTemplate{}, apperrors.NewValidationError("endDate", "endDate must not be before startDate")
	}
	if len(req.Items) == 0 {
		return RecurrenceTemplate{}, apperrors.NewValidationError("items", "at least one recurrence item is required")
	}

	tpl := RecurrenceTemplate{From: from, To: to, Items: make([]RecurrenceItem, 0, len(req.Items))}
	for i, it := range req.Items {
		field := func(name string) string { return fmt.Sprintf("items[%d].%s", i, name) }

		day, ok := models.ParseWeekday(it.DayOfWeek)
		if !ok {
			return RecurrenceTemplate{}, apperrors.NewValidationError(field("dayOfWeek"), fmt.Sprintf("unknown day %q", it.DayOfWeek))
		}
		start, err := helpers.ParseClock(it.StartTime)
		if err != nil {
			return RecurrenceTemplate{}, apperrors.NewValidationError(field("startTime"), err.Error())
		}
		end, err := helpers.ParseClock(it.EndTime)
		if err != nil {
			return RecurrenceTemplate{}, apperrors.NewValidationError(field("endTime"), err.Error())
		}
		if end.Minutes() <= start.Minutes() {
			return RecurrenceTemplate{}, apperrors.NewValidationError(field("endTime"), "endTime must be after startTime")
		}
		if it.LectureNumber < 1 {
			return RecurrenceTemplate{}, apperrors.NewValidationError(field("lectureNumber"), "lectureNumber must be at least 1")
		}

		tpl.Items = append(tpl.Items, RecurrenceItem{Day: day, Start: start, End: end, LectureNumber: it.LectureNumber})
	}
	return tpl, nil
}

// Expand produces one candidate per matching (day, item) pair, day by day and in item
// order within a day. Slots starting before now are dropped.
func Expand(tpl RecurrenceTemplate, now time.Time) []Candidate {
	var out []Candidate
	helpers.EachDay(tpl.From, tpl.To, func(day time.Time) {
		for _, it := range tpl.Items {
			if it.Day.TimeWeekday() != day.Weekday() {
				continue
			}
			start := it.Start.On(day)
			if start.Before(now) {
				continue
			}
			out = append(out, Candidate{Start: start, End: it.End.On(day), LectureNumber: it.LectureNumber})
		}
	})
	return out
}

// Window returns the smallest interval covering every candidate
func Window(candidates []Candidate) (from, to time.Time) {
	for i, c := range candidates {
		if i == 0 || c.Start.Before(from) {
			from = c.Start
		}
		if i == 0 || c.End.After(to) {
			to = c.End
		}
	}
	return from, to
}

// Validate checks candidates in order against existing bookings and against the
// candidates already accepted before them. The first collision is returned.
// Room collisions are only considered when roomID is set; teacher collisions always.
func Validate(candidates []Candidate, teacherID int64, roomID *int64, existing []*models.Class) error {
	accepted := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		for _, b := range existing {
			if !b.Overlaps(c.Start, c.End) {
				continue
			}
			if b.SameRoom(roomID) {
				return &apperrors.ScheduleConflictError{Dimension: apperrors.ConflictRoom, Start: c.Start, End: c.End, ConflictingClassID: b.ID}
			}
			if b.TeacherID == teacherID {
				return &apperrors.ScheduleConflictError{Dimension: apperrors.ConflictTeacher, Start: c.Start, End: c.End, ConflictingClassID: b.ID}
			}
		}
		for _, a := range accepted {
			if a.Start.Before(c.End) && a.End.After(c.Start) {
				// Same batch means same teacher and room.
				dim := apperrors.ConflictTeacher
				if roomID != nil {
					dim = apperrors.ConflictRoom
				}
				return &apperrors.ScheduleConflictError{Dimension: dim, Start: c.Start, End: c.End}
			}
		}
		accepted = append(accepted, c)
	}
	return nil
}
