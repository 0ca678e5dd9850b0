package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/metrics"
)

// PlanSequence maps lecture slots onto the curriculum. Each sub-topic consumes
// LectureCount consecutive slots. A fully covered sub-topic spans [first slot, last slot];
// a partially covered one gets only a start; an uncovered one gets neither.
func PlanSequence(slots []time.Time, seq []models.SequencedSubTopic) []models.PlannedDates {
	planned := make([]models.PlannedDates, 0, len(seq))
	pos := 0
	for _, st := range seq {
		n := st.LectureCount
		if n < 1 {
			n = 1
		}

		pd := models.PlannedDates{SubTopicID: st.ID}
		if pos < len(slots) {
			pd.Start = helpers.TimePtr(slots[pos])
			if last := pos + n - 1; last < len(slots) {
				pd.End = helpers.TimePtr(slots[last])
			}
		}
		planned = append(planned, pd)
		pos += n
	}
	return planned
}

// changedPlans keeps only the rows whose planned window differs from what is stored
func changedPlans(seq []models.SequencedSubTopic, planned []models.PlannedDates) []models.PlannedDates {
	var changed []models.PlannedDates
	for i, pd := range planned {
		st := seq[i]
		if helpers.EqualTimePtr(st.PlannedStartDate, pd.Start) && helpers.EqualTimePtr(st.PlannedEndDate, pd.End) {
			continue
		}
		changed = append(changed, pd)
	}
	return changed
}

// ProgressRecalculator rederives planned sub-topic dates from a subject's timetable.
// It only ever writes planned dates, so running it twice is the same as running it once.
type ProgressRecalculator struct{}

// NewProgressRecalculator creates a recalculator
func NewProgressRecalculator() *ProgressRecalculator {
	return &ProgressRecalculator{}
}

// Recalculate runs on the given repositories, which are usually bound to the caller's
// transaction. It returns the number of sub-topics whose planned dates changed.
func (r *ProgressRecalculator) Recalculate(ctx context.Context, repos *repositories.Repositories, subjectID int64) (int, error) {
	classes, err := repos.Classes.ListBySubject(ctx, subjectID)
	if err != nil {
		metrics.Recalculations.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("failed to load classes for recalculation: %w", err)
	}
	if len(classes) == 0 {
		metrics.Recalculations.WithLabelValues("noop").Inc()
		return 0, nil
	}

	seq, err := repos.Curriculum.ListSequenced(ctx, subjectID)
	if err != nil {
		metrics.Recalculations.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("failed to load curriculum for recalculation: %w", err)
	}
	if len(seq) == 0 {
		metrics.Recalculations.WithLabelValues("noop").Inc()
		return 0, nil
	}

	slots := make([]time.Time, len(classes))
	for i, c := range classes {
		slots[i] = c.StartAt
	}

	changed := changedPlans(seq, PlanSequence(slots, seq))
	if err := repos.Curriculum.UpdatePlannedDates(ctx, changed); err != nil {
		metrics.Recalculations.WithLabelValues("error").Inc()
		return 0, fmt.Errorf("failed to store planned dates: %w", err)
	}

	metrics.Recalculations.WithLabelValues("ok").Inc()
	logger.Ctx(ctx).Debug().
		Int64("subjectID", subjectID).
		Int("slots", len(slots)).
		Int("subTopics", len(seq)).
		Int("changed", len(changed)).
		Msg("Recalculated CPR planned dates")
	return len(changed), nil
}
