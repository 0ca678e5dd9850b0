package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/dberrors"
	"github.com/jackc/pgx/v5"
)

var subTopicColumns = []string{
	"st.id", "st.topic_id", "st.name", "st.sort_order", "st.lecture_count", "st.status",
	"st.planned_start_date", "st.planned_end_date", "st.actual_start_date", "st.actual_end_date",
}

// PgCurriculumRepository handles database operations for the CPR hierarchy
type PgCurriculumRepository struct {
	db Querier
}

// NewCurriculumRepository creates a new curriculum repository
func NewCurriculumRepository(db Querier) *PgCurriculumRepository {
	return &PgCurriculumRepository{db: db}
}

func subTopicDest(st *models.CPRSubTopic) []any {
	return []any{
		&st.ID, &st.TopicID, &st.Name, &st.Order, &st.LectureCount, &st.Status,
		&st.PlannedStartDate, &st.PlannedEndDate, &st.ActualStartDate, &st.ActualEndDate,
	}
}

// ListSequenced flattens module -> topic -> sub-topic into one ordered slice
func (r *PgCurriculumRepository) ListSequenced(ctx context.Context, subjectID int64) ([]models.SequencedSubTopic, error) {
	cols := append(append([]string{}, subTopicColumns...), "m.subject_id", "m.sort_order", "t.sort_order")
	sqlStr, args, err := squirrel.Select(cols...).
		From("cpr_sub_topics st").
		Join("cpr_topics t ON st.topic_id = t.id").
		Join("cpr_modules m ON t.module_id = m.id").
		Where(squirrel.Eq{"m.subject_id": subjectID}).
		OrderBy("m.sort_order", "t.sort_order", "st.sort_order", "st.id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building curriculum query: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying curriculum: %w", err)
	}
	defer rows.Close()

	var seq []models.SequencedSubTopic
	for rows.Next() {
		var s models.SequencedSubTopic
		dest := append(subTopicDest(&s.CPRSubTopic), &s.SubjectID, &s.ModuleOrder, &s.TopicOrder)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("error scanning sub-topic: %w", err)
		}
		seq = append(seq, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating curriculum: %w", err)
	}
	return seq, nil
}

// UpdatePlannedDates writes all planned windows in a single statement
func (r *PgCurriculumRepository) UpdatePlannedDates(ctx context.Context, dates []models.PlannedDates) error {
	if len(dates) == 0 {
		return nil
	}

	ids := make([]int64, len(dates))
	starts := make([]*time.Time, len(dates))
	ends := make([]*time.Time, len(dates))
	for i, d := range dates {
		ids[i], starts[i], ends[i] = d.SubTopicID, d.Start, d.End
	}

	_, err := r.db.Exec(ctx, `
		UPDATE cpr_sub_topics st
		SET planned_start_date = v.start_date,
			planned_end_date = v.end_date,
			updated_at = NOW()
		FROM unnest($1::bigint[], $2::timestamptz[], $3::timestamptz[]) AS v(id, start_date, end_date)
		WHERE st.id = v.id
	`, ids, starts, ends)
	if err != nil {
		return fmt.Errorf("error updating planned dates: %w", err)
	}
	return nil
}

// GetSubTopic retrieves a sub-topic by ID
func (r *PgCurriculumRepository) GetSubTopic(ctx context.Context, id int64) (*models.CPRSubTopic, error) {
	sqlStr, args, err := squirrel.Select(subTopicColumns...).
		From("cpr_sub_topics st").
		Where(squirrel.Eq{"st.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building sub-topic query: %w", err)
	}

	var st models.CPRSubTopic
	if err := r.db.QueryRow(ctx, sqlStr, args...).Scan(subTopicDest(&st)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubTopicNotFound
		}
		return nil, fmt.Errorf("error retrieving sub-topic: %w", err)
	}
	return &st, nil
}

// GetSubTopicSubjectID resolves the subject that owns a sub-topic
func (r *PgCurriculumRepository) GetSubTopicSubjectID(ctx context.Context, id int64) (int64, error) {
	var subjectID int64
	err := r.db.QueryRow(ctx, `
		SELECT m.subject_id
		FROM cpr_sub_topics st
		JOIN cpr_topics t ON st.topic_id = t.id
		JOIN cpr_modules m ON t.module_id = m.id
		WHERE st.id = $1
	`, id).Scan(&subjectID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrSubTopicNotFound
		}
		return 0, fmt.Errorf("error resolving sub-topic subject: %w", err)
	}
	return subjectID, nil
}

// UpdateSubTopicProgress writes status and actual dates
func (r *PgCurriculumRepository) UpdateSubTopicProgress(ctx context.Context, st *models.CPRSubTopic) error {
	sqlStr, args, err := squirrel.Update("cpr_sub_topics").
		Set("status", st.Status).
		Set("actual_start_date", st.ActualStartDate).
		Set("actual_end_date", st.ActualEndDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": st.ID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("error building sub-topic update: %w", err)
	}

	tag, err := r.db.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error updating sub-topic: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubTopicNotFound
	}
	return nil
}

// ReplaceCurriculum deletes the subject's modules and inserts the new tree, filling in ids
func (r *PgCurriculumRepository) ReplaceCurriculum(ctx context.Context, subjectID int64, modules []*models.CPRModule) error {
	if _, err := r.db.Exec(ctx, "DELETE FROM cpr_modules WHERE subject_id = $1", subjectID); err != nil {
		return fmt.Errorf("error deleting curriculum: %w", err)
	}

	for _, m := range modules {
		m.SubjectID = subjectID
		err := r.db.QueryRow(ctx,
			`INSERT INTO cpr_modules (subject_id, name, sort_order) VALUES ($1, $2, $3) RETURNING id`,
			subjectID, m.Name, m.Order).Scan(&m.ID)
		if err != nil {
			if dberrors.IsDuplicateConstraintError(err, "cpr_modules_subject_id_sort_order_key") {
				return apperrors.ErrInvalidCurriculum
			}
			return fmt.Errorf("error inserting module: %w", err)
		}

		for _, t := range m.Topics {
			t.ModuleID = m.ID
			err := r.db.QueryRow(ctx,
				`INSERT INTO cpr_topics (module_id, name, sort_order) VALUES ($1, $2, $3) RETURNING id`,
				m.ID, t.Name, t.Order).Scan(&t.ID)
			if err != nil {
				return fmt.Errorf("error inserting topic: %w", err)
			}
			if err := r.insertSubTopics(ctx, t); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *PgCurriculumRepository) insertSubTopics(ctx context.Context, t *models.CPRTopic) error {
	if len(t.SubTopics) == 0 {
		return nil
	}

	b := squirrel.Insert("cpr_sub_topics").
		Columns("topic_id", "name", "sort_order", "lecture_count", "status").
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)
	for _, st := range t.SubTopics {
		st.TopicID = t.ID
		if st.Status == "" {
			st.Status = models.SubTopicPending
		}
		b = b.Values(t.ID, st.Name, st.Order, st.LectureCount, st.Status)
	}

	sqlStr, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("error building sub-topic insert: %w", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("error inserting sub-topics: %w", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if err := rows.Scan(&t.SubTopics[i].ID); err != nil {
			return fmt.Errorf("error scanning sub-topic id: %w", err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error inserting sub-topics: %w", err)
	}
	return nil
}

// GetTree loads the subject's curriculum as nested modules, topics and sub-topics
func (r *PgCurriculumRepository) GetTree(ctx context.Context, subjectID int64) ([]*models.CPRModule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.id, m.subject_id, m.name, m.sort_order, t.id, t.module_id, t.name, t.sort_order
		FROM cpr_modules m
		JOIN cpr_topics t ON t.module_id = m.id
		WHERE m.subject_id = $1
		ORDER BY m.sort_order, t.sort_order, t.id
	`, subjectID)
	if err != nil {
		return nil, fmt.Errorf("error querying curriculum tree: %w", err)
	}
	defer rows.Close()

	var modules []*models.CPRModule
	topics := make(map[int64]*models.CPRTopic)
	for rows.Next() {
		var m models.CPRModule
		var t models.CPRTopic
		if err := rows.Scan(&m.ID, &m.SubjectID, &m.Name, &m.Order, &t.ID, &t.ModuleID, &t.Name, &t.Order); err != nil {
			return nil, fmt.Errorf("error scanning curriculum tree: %w", err)
		}
		if len(modules) == 0 || modules[len(modules)-1].ID != m.ID {
			modules = append(modules, &m)
		}
		last := modules[len(modules)-1]
		last.Topics = append(last.Topics, &t)
		topics[t.ID] = &t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating curriculum tree: %w", err)
	}

	seq, err := r.ListSequenced(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	for i := range seq {
		st := seq[i].CPRSubTopic
		if t, ok := topics[st.TopicID]; ok {
			t.SubTopics = append(t.SubTopics, &st)
		}
	}
	return modules, nil
}
