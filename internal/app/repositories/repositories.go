package repositories

import (
	"context"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so the same
// repository code runs inside or outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// OverlapQuery selects bookings that may collide with a window
type OverlapQuery struct {
	TeacherID int64
	// RoomID widens the match to bookings of the room. Nil means teacher only.
	RoomID *int64
	From   time.Time
	To     time.Time
	// ExcludeID skips one class, used when a class is re-validated against the rest.
	ExcludeID int64
}

// ClassFilter filters class listings
type ClassFilter struct {
	SubjectID *int64
	TeacherID *int64
	RoomID    *int64
	From      *time.Time
	To        *time.Time
	Offset    uint64
	Limit     int
}

// ClassRepository persists class instances
type ClassRepository interface {
	// CreateBatch inserts all classes and fills in their ids and timestamps.
	CreateBatch(ctx context.Context, classes []*models.Class) error
	GetByID(ctx context.Context, id int64) (*models.Class, error)
	Update(ctx context.Context, class *models.Class) error
	Delete(ctx context.Context, id int64) error
	// ListOverlapping returns bookings of the teacher or the room intersecting [From, To),
	// ordered by start time.
	ListOverlapping(ctx context.Context, q OverlapQuery) ([]*models.Class, error)
	// ListBySubject returns the subject's classes ordered by start time then id.
	ListBySubject(ctx context.Context, subjectID int64) ([]*models.Class, error)
	List(ctx context.Context, f ClassFilter) ([]*models.Class, int64, error)
	SetCalendarEventID(ctx context.Context, id int64, eventID *string) error
	// ClearSubTopicRefs unsets sub_topic_id on every class of the subject.
	ClearSubTopicRefs(ctx context.Context, subjectID int64) error
}

// CurriculumRepository persists the CPR hierarchy
type CurriculumRepository interface {
	// ListSequenced returns the subject's sub-topics in curriculum order.
	ListSequenced(ctx context.Context, subjectID int64) ([]models.SequencedSubTopic, error)
	UpdatePlannedDates(ctx context.Context, dates []models.PlannedDates) error
	GetSubTopic(ctx context.Context, id int64) (*models.CPRSubTopic, error)
	GetSubTopicSubjectID(ctx context.Context, id int64) (int64, error)
	// UpdateSubTopicProgress writes status and actual dates.
	UpdateSubTopicProgress(ctx context.Context, subTopic *models.CPRSubTopic) error
	// ReplaceCurriculum deletes the subject's modules (cascading) and inserts the given tree.
	ReplaceCurriculum(ctx context.Context, subjectID int64, modules []*models.CPRModule) error
	GetTree(ctx context.Context, subjectID int64) ([]*models.CPRModule, error)
}

// SubjectRepository reads subjects
type SubjectRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// RoomRepository reads rooms
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Room, error)
}

// TeacherRepository reads teachers
type TeacherRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
}

// Locker serializes bookings of one teacher or room for the rest of the transaction
type Locker interface {
	LockTeacher(ctx context.Context, teacherID int64) error
	LockRoom(ctx context.Context, roomID int64) error
}

// Repositories holds all the repository instances bound to one Querier
type Repositories struct {
	Classes    ClassRepository
	Curriculum CurriculumRepository
	Subjects   SubjectRepository
	Rooms      RoomRepository
	Teachers   TeacherRepository
	Locks      Locker
}

// NewRepositories initializes all repositories over q
func NewRepositories(q Querier) *Repositories {
	return &Repositories{
		Classes:    NewClassRepository(q),
		Curriculum: NewCurriculumRepository(q),
		Subjects:   NewSubjectRepository(q),
		Rooms:      NewRoomRepository(q),
		Teachers:   NewTeacherRepository(q),
		Locks:      NewAdvisoryLocker(q),
	}
}

// TxFn runs with repositories bound to one transaction
type TxFn func(ctx context.Context, repos *Repositories) error

// TxManager runs a unit of work atomically. Any error from fn rolls everything back.
type TxManager interface {
	WithTx(ctx context.Context, fn TxFn) error
}
