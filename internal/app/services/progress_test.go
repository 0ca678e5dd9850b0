package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories/memory"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seqOf(counts ...int) []models.SequencedSubTopic {
	seq := make([]models.SequencedSubTopic, len(counts))
	for i, n := range counts {
		seq[i] = models.SequencedSubTopic{CPRSubTopic: models.CPRSubTopic{ID: int64(i + 1), LectureCount: n}}
	}
	return seq
}

func slotsOn(days ...int) []time.Time {
	out := make([]time.Time, len(days))
	for i, d := range days {
		out[i] = at(day(d), 9, 0)
	}
	return out
}

func assertPlan(t *testing.T, pd models.PlannedDates, start, end *time.Time) {
	t.Helper()
	assert.True(t, helpers.EqualTimePtr(start, pd.Start), "sub-topic %d start = %v, want %v", pd.SubTopicID, pd.Start, start)
	assert.True(t, helpers.EqualTimePtr(end, pd.End), "sub-topic %d end = %v, want %v", pd.SubTopicID, pd.End, end)
}

func TestPlanSequence(t *testing.T) {
	slots := slotsOn(0, 1, 2, 3)
	s := func(i int) *time.Time { return helpers.TimePtr(slots[i]) }

	tests := []struct {
		name   string
		counts []int
		slots  []time.Time
		want   [][2]*time.Time
	}{
		{
			name:   "partial coverage of the last sub-topic",
			counts: []int{2, 1, 3},
			slots:  slots,
			want:   [][2]*time.Time{{s(0), s(1)}, {s(2), s(2)}, {s(3), nil}},
		},
		{
			name:   "exact coverage",
			counts: []int{1, 3},
			slots:  slots,
			want:   [][2]*time.Time{{s(0), s(0)}, {s(1), s(3)}},
		},
		{
			name:   "sub-topics beyond the timetable stay unplanned",
			counts: []int{4, 1, 2},
			slots:  slots,
			want:   [][2]*time.Time{{s(0), s(3)}, {nil, nil}, {nil, nil}},
		},
		{
			name:   "more slots than lectures",
			counts: []int{1},
			slots:  slots,
			want:   [][2]*time.Time{{s(0), s(0)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PlanSequence(tt.slots, seqOf(tt.counts...))
			require.Len(t, got, len(tt.want))
			for i, w := range tt.want {
				assert.Equal(t, int64(i+1), got[i].SubTopicID)
				assertPlan(t, got[i], w[0], w[1])
			}
		})
	}
}

func TestChangedPlans(t *testing.T) {
	seq := seqOf(1, 1)
	seq[0].PlannedStartDate = helpers.TimePtr(at(day(0), 9, 0))
	seq[0].PlannedEndDate = helpers.TimePtr(at(day(0), 9, 0))

	changed := changedPlans(seq, PlanSequence(slotsOn(0, 1), seq))
	require.Len(t, changed, 1)
	assert.Equal(t, int64(2), changed[0].SubTopicID)
}

func insertClasses(t *testing.T, f *fixture, starts ...time.Time) []*models.Class {
	t.Helper()
	classes := make([]*models.Class, len(starts))
	for i, s := range starts {
		classes[i] = &models.Class{
			SubjectID:     f.subject.ID,
			DivisionID:    f.subject.DivisionID,
			TeacherID:     f.teacher.ID,
			StartAt:       s,
			EndAt:         s.Add(time.Hour),
			LectureNumber: i + 1,
		}
	}
	require.NoError(t, f.db.Repositories().Classes.CreateBatch(f.ctx, classes))
	return classes
}

func TestProgressRecalculator_Recalculate(t *testing.T) {
	t.Run("assigns planned dates and is idempotent", func(t *testing.T) {
		f := newFixture(t)
		f.curriculum(t, 2, 1, 3)
		slots := slotsOn(0, 1, 2, 3)
		insertClasses(t, f, slots...)

		recalc := NewProgressRecalculator()
		changed, err := recalc.Recalculate(f.ctx, f.db.Repositories(), f.subject.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, changed)

		seq := f.sequence(t)
		assertPlan(t, models.PlannedDates{SubTopicID: seq[0].ID, Start: seq[0].PlannedStartDate, End: seq[0].PlannedEndDate}, &slots[0], &slots[1])
		assertPlan(t, models.PlannedDates{SubTopicID: seq[1].ID, Start: seq[1].PlannedStartDate, End: seq[1].PlannedEndDate}, &slots[2], &slots[2])
		assertPlan(t, models.PlannedDates{SubTopicID: seq[2].ID, Start: seq[2].PlannedStartDate, End: seq[2].PlannedEndDate}, &slots[3], nil)

		changed, err = recalc.Recalculate(f.ctx, f.db.Repositories(), f.subject.ID)
		require.NoError(t, err)
		assert.Zero(t, changed)
		assert.Equal(t, seq, f.sequence(t))
	})

	t.Run("earlier class shifts the whole sequence", func(t *testing.T) {
		f := newFixture(t)
		f.curriculum(t, 1, 1, 1)
		insertClasses(t, f, slotsOn(2, 3, 4)...)

		recalc := NewProgressRecalculator()
		_, err := recalc.Recalculate(f.ctx, f.db.Repositories(), f.subject.ID)
		require.NoError(t, err)

		insertClasses(t, f, at(day(0), 9, 0))
		changed, err := recalc.Recalculate(f.ctx, f.db.Repositories(), f.subject.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, changed)

		seq := f.sequence(t)
		want := slotsOn(0, 2, 3)
		for i, st := range seq {
			assert.True(t, want[i].Equal(*st.PlannedStartDate), "sub-topic %d", i)
			assert.True(t, want[i].Equal(*st.PlannedEndDate), "sub-topic %d", i)
		}
	})

	t.Run("no classes keeps prior dates", func(t *testing.T) {
		f := newFixture(t)
		f.curriculum(t, 1)
		prior := helpers.TimePtr(at(day(5), 9, 0))
		seq := f.sequence(t)
		require.NoError(t, f.db.Repositories().Curriculum.UpdatePlannedDates(f.ctx, []models.PlannedDates{
			{SubTopicID: seq[0].ID, Start: prior, End: prior},
		}))

		changed, err := NewProgressRecalculator().Recalculate(f.ctx, f.db.Repositories(), f.subject.ID)
		require.NoError(t, err)
		assert.Zero(t, changed)
		assert.True(t, prior.Equal(*f.sequence(t)[0].PlannedStartDate))
	})

	t.Run("no curriculum is a no-op", func(t *testing.T) {
		f := newFixture(t)
		insertClasses(t, f, slotsOn(0)...)

		changed, err := NewProgressRecalculator().Recalculate(f.ctx, f.db.Repositories(), f.subject.ID)
		require.NoError(t, err)
		assert.Zero(t, changed)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		f := newFixture(t)
		f.curriculum(t, 1)
		insertClasses(t, f, slotsOn(0)...)
		f.db.FailOn(memory.OpUpdatePlannedDates, errors.New("disk full"))

		_, err := NewProgressRecalculator().Recalculate(f.ctx, f.db.Repositories(), f.subject.ID)
		assert.ErrorContains(t, err, "disk full")
	})
}
