package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories/memory"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/calendar"
	"github.com/stretchr/testify/require"
)

// Monday 6 January 2025
var baseDay = time.Date(2025, time.January, 6, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time { return baseDay.AddDate(0, 0, n) }

func at(d time.Time, hour, minute int) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
}

type fakeCalendar struct {
	mu      sync.Mutex
	next    int
	failOn  func(ev calendar.Event) bool
	created []calendar.Event
	updated []string
	deleted []string
}

func (f *fakeCalendar) CreateEvent(_ context.Context, ev calendar.Event) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOn != nil && f.failOn(ev) {
		return "", errors.New("calendar unavailable")
	}
	f.next++
	f.created = append(f.created, ev)
	return fmt.Sprintf("evt-%d", f.next), nil
}

func (f *fakeCalendar) UpdateEvent(_ context.Context, id string, _ calendar.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updated = append(f.updated, id)
	return nil
}

func (f *fakeCalendar) DeleteEvent(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]any
	sets int
}

func newMapCache() *mapCache { return &mapCache{data: make(map[string]any)} }

func (c *mapCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	if !ok {
		return false, nil
	}
	*(dest.(*dto.ProgressReport)) = *(v.(*dto.ProgressReport))
	return true, nil
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

type fixture struct {
	ctx     context.Context
	db      *memory.DB
	svc     *Services
	cal     *fakeCalendar
	cache   *mapCache
	now     time.Time
	teacher models.Teacher
	room    models.Room
	subject models.Subject
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:   context.Background(),
		db:    memory.New(),
		cal:   &fakeCalendar{},
		cache: newMapCache(),
		now:   time.Date(2025, time.January, 1, 8, 0, 0, 0, time.UTC),
	}
	f.teacher = f.db.AddTeacher(models.Teacher{Name: "Asha Rao", Email: "asha@example.com"})
	f.room = f.db.AddRoom(models.Room{Name: "Lab 1", CenterID: 1})
	f.subject = f.db.AddSubject(models.Subject{Name: "Data Structures", Code: "DS101", TeacherID: f.teacher.ID, DivisionID: 9})

	f.svc = NewServices(Dependencies{
		Repos:           f.db.Repositories(),
		Tx:              f.db,
		Calendar:        f.cal,
		Cache:           f.cache,
		ProgressTTL:     time.Minute,
		Location:        time.UTC,
		SyncConcurrency: 2,
	})
	clock := func() time.Time { return f.now }
	f.svc.Schedule.WithClock(clock)
	f.svc.CPR.WithClock(clock)
	return f
}

// curriculum installs sub-topics with the given lecture counts, one topic per module
func (f *fixture) curriculum(t *testing.T, counts ...int) []models.SequencedSubTopic {
	t.Helper()

	req := &dto.ReplaceCurriculumRequest{}
	for i, n := range counts {
		req.Modules = append(req.Modules, dto.CurriculumModuleRequest{
			Name: fmt.Sprintf("Module %d", i+1),
			Topics: []dto.CurriculumTopicRequest{{
				Name:      fmt.Sprintf("Topic %d", i+1),
				SubTopics: []dto.CurriculumSubTopicRequest{{Name: fmt.Sprintf("Sub-topic %d", i+1), LectureCount: n}},
			}},
		})
	}
	_, err := f.svc.CPR.ReplaceCurriculum(f.ctx, f.subject.ID, req)
	require.NoError(t, err)
	return f.sequence(t)
}

func (f *fixture) sequence(t *testing.T) []models.SequencedSubTopic {
	t.Helper()
	seq, err := f.db.Repositories().Curriculum.ListSequenced(f.ctx, f.subject.ID)
	require.NoError(t, err)
	return seq
}

func (f *fixture) classes(t *testing.T) []*models.Class {
	t.Helper()
	classes, err := f.db.Repositories().Classes.ListBySubject(f.ctx, f.subject.ID)
	require.NoError(t, err)
	return classes
}

// weekly builds a schedule request over the inclusive range [from, to]
func (f *fixture) weekly(roomID *int64, from, to time.Time, items ...dto.RecurrenceItemRequest) *dto.ScheduleClassesRequest {
	return &dto.ScheduleClassesRequest{
		SubjectID: f.subject.ID,
		RoomID:    roomID,
		StartDate: from.Format("2006-01-02"),
		EndDate:   to.Format("2006-01-02"),
		Items:     items,
	}
}

func item(dayName, start, end string, lecture int) dto.RecurrenceItemRequest {
	return dto.RecurrenceItemRequest{DayOfWeek: dayName, StartTime: start, EndTime: end, LectureNumber: lecture}
}
