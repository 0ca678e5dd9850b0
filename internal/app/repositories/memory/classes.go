package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
)

type classRepository struct {
	db *DB
}

func (r *classRepository) sorted(keep func(c *models.Class) bool) []*models.Class {
	classes := make([]*models.Class, 0)
	for _, c := range r.db.t.classes {
		c := c
		if keep(&c) {
			classes = append(classes, &c)
		}
	}
	sort.Slice(classes, func(i, j int) bool {
		if !classes[i].StartAt.Equal(classes[j].StartAt) {
			return classes[i].StartAt.Before(classes[j].StartAt)
		}
		return classes[i].ID < classes[j].ID
	})
	return classes
}

func (r *classRepository) CreateBatch(_ context.Context, classes []*models.Class) error {
	if err := r.db.failure(OpCreateClasses); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	now := time.Now()
	for _, c := range classes {
		c.ID = r.db.id()
		c.CreatedAt, c.UpdatedAt = now, now
		r.db.t.classes[c.ID] = *c
	}
	return nil
}

func (r *classRepository) GetByID(_ context.Context, id int64) (*models.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	c, ok := r.db.t.classes[id]
	if !ok {
		return nil, apperrors.ErrClassNotFound
	}
	return &c, nil
}

func (r *classRepository) Update(_ context.Context, class *models.Class) error {
	if err := r.db.failure(OpUpdateClass); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.classes[class.ID]; !ok {
		return apperrors.ErrClassNotFound
	}
	class.UpdatedAt = time.Now()
	r.db.t.classes[class.ID] = *class
	return nil
}

func (r *classRepository) Delete(_ context.Context, id int64) error {
	if err := r.db.failure(OpDeleteClass); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.t.classes[id]; !ok {
		return apperrors.ErrClassNotFound
	}
	delete(r.db.t.classes, id)
	return nil
}

func (r *classRepository) ListOverlapping(_ context.Context, q repositories.OverlapQuery) ([]*models.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.sorted(func(c *models.Class) bool {
		if c.ID == q.ExcludeID {
			return false
		}
		if c.TeacherID != q.TeacherID && !c.SameRoom(q.RoomID) {
			return false
		}
		return c.Overlaps(q.From, q.To)
	}), nil
}

func (r *classRepository) ListBySubject(_ context.Context, subjectID int64) ([]*models.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	return r.sorted(func(c *models.Class) bool { return c.SubjectID == subjectID }), nil
}

func (r *classRepository) List(_ context.Context, f repositories.ClassFilter) ([]*models.Class, int64, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	all := r.sorted(func(c *models.Class) bool {
		switch {
		case f.SubjectID != nil && c.SubjectID != *f.SubjectID:
			return false
		case f.TeacherID != nil && c.TeacherID != *f.TeacherID:
			return false
		case f.RoomID != nil && !c.SameRoom(f.RoomID):
			return false
		case f.From != nil && c.StartAt.Before(*f.From):
			return false
		case f.To != nil && !c.StartAt.Before(*f.To):
			return false
		}
		return true
	})

	total := int64(len(all))
	start := int(f.Offset)
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	return all[start:end], total, nil
}

func (r *classRepository) SetCalendarEventID(_ context.Context, id int64, eventID *string) error {
	if err := r.db.failure(OpSetCalendarEventID); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	c, ok := r.db.t.classes[id]
	if !ok {
		return apperrors.ErrClassNotFound
	}
	c.CalendarEventID = eventID
	r.db.t.classes[id] = c
	return nil
}

func (r *classRepository) ClearSubTopicRefs(_ context.Context, subjectID int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	for id, c := range r.db.t.classes {
		if c.SubjectID == subjectID && c.SubTopicID != nil {
			c.SubTopicID = nil
			r.db.t.classes[id] = c
		}
	}
	return nil
}
