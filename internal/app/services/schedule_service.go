package services

import (
	"context"
	"errors"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/metrics"
)

// ScheduleService creates, moves and removes class instances. Every mutation runs the
// conflict check and the CPR recalculation in one transaction.
type ScheduleService struct {
	repos    *repositories.Repositories
	tx       repositories.TxManager
	recalc   *ProgressRecalculator
	calendar *CalendarSync
	progress *ProgressCache
	loc      *time.Location
	now      func() time.Time
}

// NewScheduleService creates a new schedule service. Classes are expanded in loc.
func NewScheduleService(
	repos *repositories.Repositories,
	tx repositories.TxManager,
	recalc *ProgressRecalculator,
	calendarSync *CalendarSync,
	progress *ProgressCache,
	loc *time.Location,
) *ScheduleService {
	return &ScheduleService{
		repos:    repos,
		tx:       tx,
		recalc:   recalc,
		calendar: calendarSync,
		progress: progress,
		loc:      loc,
		now:      time.Now,
	}
}

// WithClock replaces the source of "now", used by tests
func (s *ScheduleService) WithClock(now func() time.Time) *ScheduleService {
	s.now = now
	return s
}

func countConflict(err error) {
	var conflict *apperrors.ScheduleConflictError
	if errors.As(err, &conflict) {
		metrics.ScheduleConflicts.WithLabelValues(string(conflict.Dimension)).Inc()
	}
}

func (s *ScheduleService) lockBookings(ctx context.Context, repos *repositories.Repositories, teacherID int64, roomID *int64) error {
	// Always teacher before room so two writers cannot deadlock.
	if err := repos.Locks.LockTeacher(ctx, teacherID); err != nil {
		return err
	}
	if roomID != nil {
		return repos.Locks.LockRoom(ctx, *roomID)
	}
	return nil
}

// ScheduleClasses expands a weekly template and books every resulting slot.
// An empty expansion is a success with no classes.
func (s *ScheduleService) ScheduleClasses(ctx context.Context, req *dto.ScheduleClassesRequest) ([]*models.Class, error) {
	tpl, err := ParseTemplate(req, s.loc)
	if err != nil {
		return nil, err
	}

	subject, err := s.repos.Subjects.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}
	var room *models.Room
	if req.RoomID != nil {
		if room, err = s.repos.Rooms.GetByID(ctx, *req.RoomID); err != nil {
			return nil, err
		}
	}

	candidates := Expand(tpl, s.now())
	if len(candidates) == 0 {
		logger.Ctx(ctx).Debug().Int64("subjectID", subject.ID).Msg("Schedule template produced no future slots")
		return []*models.Class{}, nil
	}

	classes := make([]*models.Class, len(candidates))
	for i, c := range candidates {
		classes[i] = &models.Class{
			SubjectID:     subject.ID,
			DivisionID:    subject.DivisionID,
			TeacherID:     subject.TeacherID,
			RoomID:        req.RoomID,
			StartAt:       c.Start,
			EndAt:         c.End,
			LectureNumber: c.LectureNumber,
		}
	}

	err = s.tx.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := s.lockBookings(ctx, repos, subject.TeacherID, req.RoomID); err != nil {
			return err
		}

		from, to := Window(candidates)
		existing, err := repos.Classes.ListOverlapping(ctx, repositories.OverlapQuery{
			TeacherID: subject.TeacherID,
			RoomID:    req.RoomID,
			From:      from,
			To:        to,
		})
		if err != nil {
			return err
		}
		if err := Validate(candidates, subject.TeacherID, req.RoomID, existing); err != nil {
			return err
		}

		if err := repos.Classes.CreateBatch(ctx, classes); err != nil {
			return err
		}
		_, err = s.recalc.Recalculate(ctx, repos, subject.ID)
		return err
	})
	if err != nil {
		countConflict(err)
		return nil, err
	}

	metrics.ClassesScheduled.Add(float64(len(classes)))
	logger.Ctx(ctx).Info().Int64("subjectID", subject.ID).Int("classes", len(classes)).Msg("Scheduled classes")

	s.progress.Invalidate(ctx, subject.ID)
	s.calendar.Created(ctx, subject, room, classes)
	return classes, nil
}

// CheckTemplate rejects a malformed template without touching storage
func (s *ScheduleService) CheckTemplate(req *dto.ScheduleClassesRequest) error {
	_, err := ParseTemplate(req, s.loc)
	return err
}

// UpdateClass applies a partial update. A change of time or room is re-validated against
// every other booking of the teacher and room.
func (s *ScheduleService) UpdateClass(ctx context.Context, id int64, req *dto.UpdateClassRequest) (*models.Class, error) {
	if req.StartAt != nil && req.EndAt != nil && !req.EndAt.After(*req.StartAt) {
		return nil, apperrors.NewValidationError("endAt", "endAt must be after startAt")
	}

	var (
		updated *models.Class
		subject *models.Subject
		room    *models.Room
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		class, err := repos.Classes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if subject, err = repos.Subjects.GetByID(ctx, class.SubjectID); err != nil {
			return err
		}

		if req.StartAt != nil {
			class.StartAt = req.StartAt.In(s.loc)
		}
		if req.EndAt != nil {
			class.EndAt = req.EndAt.In(s.loc)
		}
		if !class.EndAt.After(class.StartAt) {
			return apperrors.NewValidationError("endAt", "endAt must be after startAt")
		}
		if req.LectureNumber != nil {
			class.LectureNumber = *req.LectureNumber
		}

		switch {
		case req.ClearRoom:
			class.RoomID = nil
		case req.RoomID != nil:
			class.RoomID = helpers.Int64Ptr(*req.RoomID)
		}
		if class.RoomID != nil {
			if room, err = repos.Rooms.GetByID(ctx, *class.RoomID); err != nil {
				return err
			}
		}

		switch {
		case req.ClearSubTopic:
			class.SubTopicID = nil
		case req.SubTopicID != nil:
			owner, err := repos.Curriculum.GetSubTopicSubjectID(ctx, *req.SubTopicID)
			if err != nil {
				return err
			}
			if owner != class.SubjectID {
				return apperrors.NewValidationError("subTopicId", "sub-topic belongs to a different subject")
			}
			class.SubTopicID = helpers.Int64Ptr(*req.SubTopicID)
		}

		if req.ChangesSchedule() {
			if err := s.lockBookings(ctx, repos, class.TeacherID, class.RoomID); err != nil {
				return err
			}
			existing, err := repos.Classes.ListOverlapping(ctx, repositories.OverlapQuery{
				TeacherID: class.TeacherID,
				RoomID:    class.RoomID,
				From:      class.StartAt,
				To:        class.EndAt,
				ExcludeID: class.ID,
			})
			if err != nil {
				return err
			}
			candidate := []Candidate{{Start: class.StartAt, End: class.EndAt, LectureNumber: class.LectureNumber}}
			if err := Validate(candidate, class.TeacherID, class.RoomID, existing); err != nil {
				return err
			}
		}

		if err := repos.Classes.Update(ctx, class); err != nil {
			return err
		}
		if req.ChangesSequence() {
			if _, err := s.recalc.Recalculate(ctx, repos, class.SubjectID); err != nil {
				return err
			}
		}
		updated = class
		return nil
	})
	if err != nil {
		countConflict(err)
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("classID", id).Int64("subjectID", updated.SubjectID).Msg("Updated class")

	s.progress.Invalidate(ctx, updated.SubjectID)
	if req.ChangesSchedule() || req.LectureNumber != nil {
		s.calendar.Updated(ctx, subject, room, updated)
	}
	return updated, nil
}

// DeleteClass removes a class unconditionally and rederives planned dates
func (s *ScheduleService) DeleteClass(ctx context.Context, id int64) error {
	var deleted *models.Class
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		class, err := repos.Classes.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Classes.Delete(ctx, id); err != nil {
			return err
		}
		if _, err := s.recalc.Recalculate(ctx, repos, class.SubjectID); err != nil {
			return err
		}
		deleted = class
		return nil
	})
	if err != nil {
		return err
	}

	logger.Ctx(ctx).Info().Int64("classID", id).Int64("subjectID", deleted.SubjectID).Msg("Deleted class")

	s.progress.Invalidate(ctx, deleted.SubjectID)
	s.calendar.Deleted(ctx, deleted)
	return nil
}

// GetClass retrieves a class by ID
func (s *ScheduleService) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	return s.repos.Classes.GetByID(ctx, id)
}

// ListClasses returns one page of classes matching the query
func (s *ScheduleService) ListClasses(ctx context.Context, q dto.ClassListQuery) ([]*models.Class, dto.PaginationInfo, error) {
	if q.From != nil && q.To != nil && !q.To.After(*q.From) {
		return nil, dto.PaginationInfo{}, apperrors.NewValidationError("to", "to must be after from")
	}

	offset, limit := helpers.CalculateOffsetLimit(q.Page, q.Size)
	classes, total, err := s.repos.Classes.List(ctx, repositories.ClassFilter{
		SubjectID: q.SubjectID,
		TeacherID: q.TeacherID,
		RoomID:    q.RoomID,
		From:      q.From,
		To:        q.To,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		logger.Ctx(ctx).Error().Err(err).Msg("Error listing classes")
		return nil, dto.PaginationInfo{}, err
	}
	return classes, helpers.NewPaginationInfo(total, q.Page, limit), nil
}
