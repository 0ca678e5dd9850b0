package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/jackc/pgx/v5"
)

// PgSubjectRepository handles database operations for subjects
type PgSubjectRepository struct {
	db Querier
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db Querier) *PgSubjectRepository {
	return &PgSubjectRepository{db: db}
}

// GetByID retrieves a subject by ID
func (r *PgSubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, code, teacher_id, division_id
		FROM subjects
		WHERE id = $1
	`

	var s models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(&s.ID, &s.Name, &s.Code, &s.TeacherID, &s.DivisionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return &s, nil
}

// PgRoomRepository handles database operations for rooms
type PgRoomRepository struct {
	db Querier
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db Querier) *PgRoomRepository {
	return &PgRoomRepository{db: db}
}

// GetByID retrieves a room by ID
func (r *PgRoomRepository) GetByID(ctx context.Context, id int64) (*models.Room, error) {
	query := `
		SELECT id, name, center_id
		FROM rooms
		WHERE id = $1
	`

	var room models.Room
	err := r.db.QueryRow(ctx, query, id).Scan(&room.ID, &room.Name, &room.CenterID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRoomNotFound
		}
		return nil, fmt.Errorf("error retrieving room: %w", err)
	}
	return &room, nil
}

// PgTeacherRepository handles database operations for teachers
type PgTeacherRepository struct {
	db Querier
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db Querier) *PgTeacherRepository {
	return &PgTeacherRepository{db: db}
}

// GetByID retrieves a teacher by ID
func (r *PgTeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	query := `
		SELECT id, name, email
		FROM teachers
		WHERE id = $1
	`

	var t models.Teacher
	err := r.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}
	return &t, nil
}
