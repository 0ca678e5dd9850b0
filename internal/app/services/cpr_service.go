package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/helpers"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/spreadsheet"
)

// CPRService tracks curriculum progress of subjects
type CPRService struct {
	repos    *repositories.Repositories
	tx       repositories.TxManager
	recalc   *ProgressRecalculator
	progress *ProgressCache
	now      func() time.Time
}

// NewCPRService creates a new CPR service
func NewCPRService(repos *repositories.Repositories, tx repositories.TxManager, recalc *ProgressRecalculator, progress *ProgressCache) *CPRService {
	return &CPRService{
		repos:    repos,
		tx:       tx,
		recalc:   recalc,
		progress: progress,
		now:      time.Now,
	}
}

// WithClock replaces the source of "now", used by tests
func (s *CPRService) WithClock(now func() time.Time) *CPRService {
	s.now = now
	return s
}

// ApplyStatus records a status change on st at now. Transitions are not guarded by the
// previous status; only the actual dates follow the rules below.
//   - IN_PROGRESS sets the actual start when it is unset.
//   - COMPLETED sets the actual start when it is unset and always moves the actual end.
func ApplyStatus(st *models.CPRSubTopic, status models.SubTopicStatus, now time.Time) error {
	switch status {
	case models.SubTopicInProgress:
		if st.ActualStartDate == nil {
			st.ActualStartDate = helpers.TimePtr(now)
		}
	case models.SubTopicCompleted:
		if st.ActualStartDate == nil {
			st.ActualStartDate = helpers.TimePtr(now)
		}
		st.ActualEndDate = helpers.TimePtr(now)
	default:
		return apperrors.NewValidationError("status", apperrors.ErrInvalidStatus.Error())
	}
	st.Status = status
	return nil
}

// SetStatus moves a sub-topic to IN_PROGRESS or COMPLETED. Repeating a call is allowed.
func (s *CPRService) SetStatus(ctx context.Context, subTopicID int64, status models.SubTopicStatus) (*models.CPRSubTopic, error) {
	if status != models.SubTopicInProgress && status != models.SubTopicCompleted {
		return nil, apperrors.NewValidationError("status", apperrors.ErrInvalidStatus.Error())
	}

	var (
		updated   *models.CPRSubTopic
		subjectID int64
	)
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		st, err := repos.Curriculum.GetSubTopic(ctx, subTopicID)
		if err != nil {
			return err
		}
		if err := ApplyStatus(st, status, s.now()); err != nil {
			return err
		}
		if err := repos.Curriculum.UpdateSubTopicProgress(ctx, st); err != nil {
			return err
		}
		if subjectID, err = repos.Curriculum.GetSubTopicSubjectID(ctx, subTopicID); err != nil {
			return err
		}
		updated = st
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("subTopicID", subTopicID).Str("status", string(status)).Msg("Updated sub-topic status")
	s.progress.Invalidate(ctx, subjectID)
	return updated, nil
}

// BuildCurriculum converts an upload request into a tree. Missing orders default to the
// list position; explicit orders must be strictly increasing within their parent.
func BuildCurriculum(req *dto.ReplaceCurriculumRequest) ([]*models.CPRModule, error) {
	if len(req.Modules) == 0 {
		return nil, apperrors.NewValidationError("modules", "at least one module is required")
	}

	order := func(explicit, position int) int {
		if explicit > 0 {
			return explicit
		}
		return position + 1
	}
	increasing := func(field string, prev, cur int) error {
		if cur <= prev {
			return apperrors.NewValidationError(field, fmt.Sprintf("order %d must be greater than the previous order %d", cur, prev))
		}
		return nil
	}

	modules := make([]*models.CPRModule, 0, len(req.Modules))
	for mi, mr := range req.Modules {
		m := &models.CPRModule{Name: mr.Name, Order: order(mr.Order, mi)}
		if mi > 0 {
			if err := increasing(fmt.Sprintf("modules[%d].order", mi), modules[mi-1].Order, m.Order); err != nil {
				return nil, err
			}
		}
		if len(mr.Topics) == 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("modules[%d].topics", mi), "at least one topic is required")
		}

		for ti, tr := range mr.Topics {
			t := &models.CPRTopic{Name: tr.Name, Order: order(tr.Order, ti)}
			if ti > 0 {
				if err := increasing(fmt.Sprintf("modules[%d].topics[%d].order", mi, ti), m.Topics[ti-1].Order, t.Order); err != nil {
					return nil, err
				}
			}
			if len(tr.SubTopics) == 0 {
				return nil, apperrors.NewValidationError(fmt.Sprintf("modules[%d].topics[%d].subTopics", mi, ti), "at least one sub-topic is required")
			}

			for si, sr := range tr.SubTopics {
				field := fmt.Sprintf("modules[%d].topics[%d].subTopics[%d]", mi, ti, si)
				if sr.LectureCount < 1 {
					return nil, apperrors.NewValidationError(field+".lectureCount", "lectureCount must be at least 1")
				}
				st := &models.CPRSubTopic{
					Name:         sr.Name,
					Order:        order(sr.Order, si),
					LectureCount: sr.LectureCount,
					Status:       models.SubTopicPending,
				}
				if si > 0 {
					if err := increasing(field+".order", t.SubTopics[si-1].Order, st.Order); err != nil {
						return nil, err
					}
				}
				t.SubTopics = append(t.SubTopics, st)
			}
			m.Topics = append(m.Topics, t)
		}
		modules = append(modules, m)
	}
	return modules, nil
}

// ReplaceCurriculum swaps the subject's curriculum for the one in req
func (s *CPRService) ReplaceCurriculum(ctx context.Context, subjectID int64, req *dto.ReplaceCurriculumRequest) ([]*models.CPRModule, error) {
	modules, err := BuildCurriculum(req)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, subjectID, modules)
}

// ImportCurriculum swaps the subject's curriculum for the one in an .xlsx workbook
func (s *CPRService) ImportCurriculum(ctx context.Context, subjectID int64, r io.Reader) ([]*models.CPRModule, error) {
	modules, err := spreadsheet.ParseCurriculum(r)
	if err != nil {
		return nil, err
	}
	return s.replace(ctx, subjectID, modules)
}

// replace detaches classes from the old sub-topics, recreates the hierarchy and
// rederives planned dates, all in one transaction
func (s *CPRService) replace(ctx context.Context, subjectID int64, modules []*models.CPRModule) ([]*models.CPRModule, error) {
	if _, err := s.repos.Subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	var tree []*models.CPRModule
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		if err := repos.Classes.ClearSubTopicRefs(ctx, subjectID); err != nil {
			return err
		}
		if err := repos.Curriculum.ReplaceCurriculum(ctx, subjectID, modules); err != nil {
			return err
		}
		if _, err := s.recalc.Recalculate(ctx, repos, subjectID); err != nil {
			return err
		}
		var err error
		tree, err = repos.Curriculum.GetTree(ctx, subjectID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Ctx(ctx).Info().Int64("subjectID", subjectID).Int("modules", len(modules)).Msg("Replaced curriculum")
	s.progress.Invalidate(ctx, subjectID)
	return tree, nil
}

// Tree returns the subject's curriculum without the progress summary
func (s *CPRService) Tree(ctx context.Context, subjectID int64) ([]*models.CPRModule, error) {
	return s.repos.Curriculum.GetTree(ctx, subjectID)
}

// Recalculate rederives the subject's planned dates on demand
func (s *CPRService) Recalculate(ctx context.Context, subjectID int64) (int, error) {
	if _, err := s.repos.Subjects.GetByID(ctx, subjectID); err != nil {
		return 0, err
	}

	var changed int
	err := s.tx.WithTx(ctx, func(ctx context.Context, repos *repositories.Repositories) error {
		var err error
		changed, err = s.recalc.Recalculate(ctx, repos, subjectID)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.progress.Invalidate(ctx, subjectID)
	return changed, nil
}

// Progress returns the curriculum tree of a subject with a summary. The cache only
// saves the reads; the summary is always taken against the current time.
func (s *CPRService) Progress(ctx context.Context, subjectID int64) (*dto.ProgressReport, error) {
	if report, ok := s.progress.Get(ctx, subjectID); ok {
		now := s.now()
		report.GeneratedAt = now
		report.Summary = Summarize(report.Modules, report.Summary.LecturesScheduled, now)
		return report, nil
	}

	if _, err := s.repos.Subjects.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	tree, err := s.repos.Curriculum.GetTree(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	classes, err := s.repos.Classes.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	report := &dto.ProgressReport{
		SubjectID:   subjectID,
		GeneratedAt: now,
		Summary:     Summarize(tree, len(classes), now),
		Modules:     tree,
	}
	if report.Modules == nil {
		report.Modules = []*models.CPRModule{}
	}

	s.progress.Put(ctx, report)
	return report, nil
}

// ExportProgress writes the progress report as an .xlsx workbook
func (s *CPRService) ExportProgress(ctx context.Context, subjectID int64, w io.Writer) error {
	report, err := s.Progress(ctx, subjectID)
	if err != nil {
		return err
	}
	return spreadsheet.WriteProgressReport(w, report)
}

// Summarize counts sub-topics by status. A sub-topic is behind schedule when its
// planned end has passed and it is not completed.
func Summarize(tree []*models.CPRModule, scheduled int, now time.Time) dto.ProgressSummary {
	sum := dto.ProgressSummary{LecturesScheduled: scheduled}
	for _, m := range tree {
		for _, t := range m.Topics {
			for _, st := range t.SubTopics {
				sum.TotalSubTopics++
				sum.LecturesRequired += st.LectureCount
				switch st.Status {
				case models.SubTopicCompleted:
					sum.Completed++
				case models.SubTopicInProgress:
					sum.InProgress++
				default:
					sum.Pending++
				}
				if st.Status != models.SubTopicCompleted && st.PlannedEndDate != nil && st.PlannedEndDate.Before(now) {
					sum.BehindSchedule++
				}
			}
		}
	}
	return sum
}
