package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/dberrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/jackc/pgx/v5"
)

// Exclusion constraints backing the in-transaction overlap check
const (
	constraintTeacherOverlap = "classes_teacher_no_overlap"
	constraintRoomOverlap    = "classes_room_no_overlap"
)

var classColumns = []string{
	"id", "subject_id", "division_id", "teacher_id", "room_id", "start_at", "end_at",
	"lecture_number", "calendar_event_id", "sub_topic_id", "created_at", "updated_at",
}

// PgClassRepository handles database operations for classes
type PgClassRepository struct {
	db Querier
}

// NewClassRepository creates a new class repository
func NewClassRepository(db Querier) *PgClassRepository {
	return &PgClassRepository{db: db}
}

func (r *PgClassRepository) selectClasses() squirrel.SelectBuilder {
	return squirrel.Select(classColumns...).From("classes").PlaceholderFormat(squirrel.Dollar)
}

func scanClass(row pgx.Row) (*models.Class, error) {
	var c models.Class
	err := row.Scan(
		&c.ID, &c.SubjectID, &c.DivisionID, &c.TeacherID, &c.RoomID, &c.StartAt, &c.EndAt,
		&c.LectureNumber, &c.CalendarEventID, &c.SubTopicID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PgClassRepository) queryClasses(ctx context.Context, b squirrel.SelectBuilder) ([]*models.Class, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building class query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying classes: %w", err)
	}
	defer rows.Close()

	var classes []*models.Class
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning class: %w", err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating classes: %w", err)
	}
	return classes, nil
}

// mapWriteError turns constraint violations into domain errors
func mapWriteError(err error, c *models.Class) error {
	if name, ok := dberrors.IsExclusionViolation(err); ok {
		dim := apperrors.ConflictTeacher
		if name == constraintRoomOverlap {
			dim = apperrors.ConflictRoom
		}
		return &apperrors.ScheduleConflictError{Dimension: dim, Start: c.StartAt, End: c.EndAt}
	}
	if name, ok := dberrors.IsForeignKeyViolation(err); ok {
		switch name {
		case "classes_room_id_fkey":
			return apperrors.ErrRoomNotFound
		case "classes_sub_topic_id_fkey":
			return apperrors.ErrSubTopicNotFound
		case "classes_subject_id_fkey":
			return apperrors.ErrSubjectNotFound
		}
	}
	return err
}

// CreateBatch inserts classes in one statement
func (r *PgClassRepository) CreateBatch(ctx context.Context, classes []*models.Class) error {
	if len(classes) == 0 {
		return nil
	}

	b := squirrel.Insert("classes").
		Columns("subject_id", "division_id", "teacher_id", "room_id", "start_at", "end_at",
			"lecture_number", "calendar_event_id", "sub_topic_id").
		Suffix("RETURNING id, created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar)
	for _, c := range classes {
		b = b.Values(c.SubjectID, c.DivisionID, c.TeacherID, c.RoomID, c.StartAt, c.EndAt,
			c.LectureNumber, c.CalendarEventID, c.SubTopicID)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("error building class insert: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		if mapped := mapWriteError(err, classes[0]); mapped != err {
			return mapped
		}
		return fmt.Errorf("error inserting classes: %w", err)
	}
	defer rows.Close()

	// RETURNING preserves VALUES order for a single multi-row insert.
	i := 0
	for rows.Next() {
		if i >= len(classes) {
			return fmt.Errorf("error inserting classes: more rows returned than inserted")
		}
		if err := rows.Scan(&classes[i].ID, &classes[i].CreatedAt, &classes[i].UpdatedAt); err != nil {
			return fmt.Errorf("error scanning inserted class: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		// The failing row is not reported by the driver; the first candidate stands in.
		if mapped := mapWriteError(err, classes[0]); mapped != err {
			return mapped
		}
		return fmt.Errorf("error inserting classes: %w", err)
	}
	if i != len(classes) {
		return fmt.Errorf("error inserting classes: %d of %d rows returned", i, len(classes))
	}
	return nil
}

// GetByID retrieves a class by ID
func (r *PgClassRepository) GetByID(ctx context.Context, id int64) (*models.Class, error) {
	sqlStr, args, err := r.selectClasses().Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building class query: %w", err)
	}

	c, err := scanClass(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrClassNotFound
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	return c, nil
}

// Update writes every mutable column of the class
func (r *PgClassRepository) Update(ctx context.Context, c *models.Class) error {
	sqlStr, args, err := squirrel.Update("classes").
		Set("room_id", c.RoomID).
		Set("start_at", c.StartAt).
		Set("end_at", c.EndAt).
		Set("lecture_number", c.LectureNumber).
		Set("calendar_event_id", c.CalendarEventID).
		Set("sub_topic_id", c.SubTopicID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": c.ID}).
		Suffix("RETURNING updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building class update: %w", err)
	}

	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(&c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrClassNotFound
		}
		if mapped := mapWriteError(err, c); mapped != err {
			return mapped
		}
		return fmt.Errorf("error updating class: %w", err)
	}
	return nil
}

// Delete removes a class
func (r *PgClassRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM classes WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("error deleting class: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// ListOverlapping loads every booking of the teacher or room that intersects the window
func (r *PgClassRepository) ListOverlapping(ctx context.Context, q OverlapQuery) ([]*models.Class, error) {
	owner := squirrel.Or{squirrel.Eq{"teacher_id": q.TeacherID}}
	if q.RoomID != nil {
		owner = append(owner, squirrel.Eq{"room_id": *q.RoomID})
	}

	b := r.selectClasses().
		Where(owner).
		Where(squirrel.Lt{"start_at": q.To}).
		Where(squirrel.Gt{"end_at": q.From}).
		OrderBy("start_at", "id")
	if q.ExcludeID != 0 {
		b = b.Where(squirrel.NotEq{"id": q.ExcludeID})
	}

	return r.queryClasses(ctx, b)
}

// ListBySubject returns the subject's lecture slots in chronological order
func (r *PgClassRepository) ListBySubject(ctx context.Context, subjectID int64) ([]*models.Class, error) {
	return r.queryClasses(ctx, r.selectClasses().
		Where(squirrel.Eq{"subject_id": subjectID}).
		OrderBy("start_at", "id"))
}

func applyClassFilter(b squirrel.SelectBuilder, f ClassFilter) squirrel.SelectBuilder {
	if f.SubjectID != nil {
		b = b.Where(squirrel.Eq{"subject_id": *f.SubjectID})
	}
	if f.TeacherID != nil {
		b = b.Where(squirrel.Eq{"teacher_id": *f.TeacherID})
	}
	if f.RoomID != nil {
		b = b.Where(squirrel.Eq{"room_id": *f.RoomID})
	}
	if f.From != nil {
		b = b.Where(squirrel.GtOrEq{"start_at": *f.From})
	}
	if f.To != nil {
		b = b.Where(squirrel.Lt{"start_at": *f.To})
	}
	return b
}

// List returns one page of classes and the total count for the filter
func (r *PgClassRepository) List(ctx context.Context, f ClassFilter) ([]*models.Class, int64, error) {
	countSQL, countArgs, err := applyClassFilter(
		squirrel.Select("COUNT(*)").From("classes").PlaceholderFormat(squirrel.Dollar), f).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building class count: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting classes: %w", err)
	}
	if total == 0 {
		return []*models.Class{}, 0, nil
	}

	b := applyClassFilter(r.selectClasses(), f).OrderBy("start_at", "id").Offset(f.Offset)
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	classes, err := r.queryClasses(ctx, b)
	if err != nil {
		return nil, 0, err
	}
	return classes, total, nil
}

// SetCalendarEventID stores the external calendar event of a class
func (r *PgClassRepository) SetCalendarEventID(ctx context.Context, id int64, eventID *string) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE classes SET calendar_event_id = $1, updated_at = NOW() WHERE id = $2", eventID, id)
	if err != nil {
		return fmt.Errorf("error setting calendar event id: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrClassNotFound
	}
	return nil
}

// ClearSubTopicRefs detaches the subject's classes from curriculum sub-topics
func (r *PgClassRepository) ClearSubTopicRefs(ctx context.Context, subjectID int64) error {
	tag, err := r.db.Exec(ctx,
		"UPDATE classes SET sub_topic_id = NULL, updated_at = NOW() WHERE subject_id = $1 AND sub_topic_id IS NOT NULL",
		subjectID)
	if err != nil {
		return fmt.Errorf("error clearing sub-topic references: %w", err)
	}
	logger.Debug().Int64("subjectID", subjectID).Int64("rows", tag.RowsAffected()).Msg("Cleared class sub-topic references")
	return nil
}
