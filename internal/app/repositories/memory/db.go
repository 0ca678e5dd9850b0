// Package memory is an in-process implementation of the repositories used by tests and
// local tooling. Transactions are serialized and rolled back by restoring a snapshot.
package memory

import (
	"context"
	"sync"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
)

// Operation names accepted by FailOn
const (
	OpCreateClasses      = "classes.create"
	OpUpdateClass        = "classes.update"
	OpDeleteClass        = "classes.delete"
	OpSetCalendarEventID = "classes.set_calendar_event_id"
	OpListSequenced      = "curriculum.list_sequenced"
	OpUpdatePlannedDates = "curriculum.update_planned_dates"
	OpUpdateProgress     = "curriculum.update_progress"
	OpReplaceCurriculum  = "curriculum.replace"
)

type tables struct {
	nextID    int64
	classes   map[int64]models.Class
	modules   map[int64]models.CPRModule
	topics    map[int64]models.CPRTopic
	subTopics map[int64]models.CPRSubTopic
	subjects  map[int64]models.Subject
	rooms     map[int64]models.Room
	teachers  map[int64]models.Teacher
}

func (t *tables) clone() tables {
	c := tables{
		nextID:    t.nextID,
		classes:   make(map[int64]models.Class, len(t.classes)),
		modules:   make(map[int64]models.CPRModule, len(t.modules)),
		topics:    make(map[int64]models.CPRTopic, len(t.topics)),
		subTopics: make(map[int64]models.CPRSubTopic, len(t.subTopics)),
		subjects:  make(map[int64]models.Subject, len(t.subjects)),
		rooms:     make(map[int64]models.Room, len(t.rooms)),
		teachers:  make(map[int64]models.Teacher, len(t.teachers)),
	}
	for k, v := range t.classes {
		c.classes[k] = v
	}
	for k, v := range t.modules {
		c.modules[k] = v
	}
	for k, v := range t.topics {
		c.topics[k] = v
	}
	for k, v := range t.subTopics {
		c.subTopics[k] = v
	}
	for k, v := range t.subjects {
		c.subjects[k] = v
	}
	for k, v := range t.rooms {
		c.rooms[k] = v
	}
	for k, v := range t.teachers {
		c.teachers[k] = v
	}
	return c
}

// DB holds every table behind one mutex
type DB struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	t    tables

	failMu   sync.Mutex
	failures map[string]error
	txCount  int
}

// New creates an empty database
func New() *DB {
	db := &DB{failures: make(map[string]error)}
	db.t = (&tables{}).clone()
	return db
}

func (db *DB) id() int64 {
	db.t.nextID++
	return db.t.nextID
}

// FailOn makes the next call of op return err. Pass a nil err to clear it.
func (db *DB) FailOn(op string, err error) {
	db.failMu.Lock()
	defer db.failMu.Unlock()
	if err == nil {
		delete(db.failures, op)
		return
	}
	db.failures[op] = err
}

func (db *DB) failure(op string) error {
	db.failMu.Lock()
	defer db.failMu.Unlock()
	err := db.failures[op]
	delete(db.failures, op)
	return err
}

// Repositories returns repositories bound directly to the database
func (db *DB) Repositories() *repositories.Repositories {
	return &repositories.Repositories{
		Classes:    &classRepository{db: db},
		Curriculum: &curriculumRepository{db: db},
		Subjects:   &subjectRepository{db: db},
		Rooms:      &roomRepository{db: db},
		Teachers:   &teacherRepository{db: db},
		Locks:      nopLocker{},
	}
}

// WithTx runs fn with exclusive access and restores the previous state when it fails
func (db *DB) WithTx(ctx context.Context, fn repositories.TxFn) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()

	db.mu.RLock()
	snapshot := db.t.clone()
	db.mu.RUnlock()

	restore := func() {
		db.mu.Lock()
		db.t = snapshot
		db.mu.Unlock()
	}

	defer func() {
		if r := recover(); r != nil {
			restore()
			panic(r)
		}
	}()

	if err := fn(ctx, db.Repositories()); err != nil {
		restore()
		return err
	}

	db.mu.Lock()
	db.txCount++
	db.mu.Unlock()
	return nil
}

// Commits returns the number of committed transactions
func (db *DB) Commits() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.txCount
}

// AddTeacher inserts a teacher and returns it with its id
func (db *DB) AddTeacher(t models.Teacher) models.Teacher {
	db.mu.Lock()
	defer db.mu.Unlock()
	if t.ID == 0 {
		t.ID = db.id()
	}
	db.t.teachers[t.ID] = t
	return t
}

// AddRoom inserts a room and returns it with its id
func (db *DB) AddRoom(r models.Room) models.Room {
	db.mu.Lock()
	defer db.mu.Unlock()
	if r.ID == 0 {
		r.ID = db.id()
	}
	db.t.rooms[r.ID] = r
	return r
}

// AddSubject inserts a subject and returns it with its id
func (db *DB) AddSubject(s models.Subject) models.Subject {
	db.mu.Lock()
	defer db.mu.Unlock()
	if s.ID == 0 {
		s.ID = db.id()
	}
	db.t.subjects[s.ID] = s
	return s
}

type nopLocker struct{}

func (nopLocker) LockTeacher(context.Context, int64) error { return nil }
func (nopLocker) LockRoom(context.Context, int64) error { return nil }

var _ repositories.TxManager = (*DB)(nil)
