package memory

import (
	"context"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
)

type subjectRepository struct {
	db *DB
}

func (r *subjectRepository) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.t.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return &s, nil
}

type roomRepository struct {
	db *DB
}

func (r *roomRepository) GetByID(_ context.Context, id int64) (*models.Room, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	room, ok := r.db.t.rooms[id]
	if !ok {
		return nil, apperrors.ErrRoomNotFound
	}
	return &room, nil
}

type teacherRepository struct {
	db *DB
}

func (r *teacherRepository) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	t, ok := r.db.t.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return &t, nil
}
