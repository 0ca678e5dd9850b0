package auth

import (
	"context"
	"fmt"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/logger"
)

// Principal is the authenticated caller. For teachers UserID is the teacher id.
type Principal struct {
	UserID int64
	Email  string
	Role   models.RoleType
}

// IsAdmin reports whether the caller is an administrator
func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

// AuthorizationService answers "may this caller touch this subject"
type AuthorizationService struct {
	repos *repositories.Repositories
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(repos *repositories.Repositories) *AuthorizationService {
	return &AuthorizationService{repos: repos}
}

// CanManageSubject is true for admins and for the teacher the subject is assigned to
func (s *AuthorizationService) CanManageSubject(ctx context.Context, p Principal, subjectID int64) (bool, error) {
	if p.IsAdmin() {
		return true, nil
	}
	if p.Role != models.RoleTeacher {
		return false, nil
	}

	subject, err := s.repos.Subjects.GetByID(ctx, subjectID)
	if err != nil {
		return false, err
	}
	return subject.TeacherID == p.UserID, nil
}

// ValidateSubjectAccess returns a forbidden error unless CanManageSubject holds
func (s *AuthorizationService) ValidateSubjectAccess(ctx context.Context, p Principal, subjectID int64) error {
	ok, err := s.CanManageSubject(ctx, p, subjectID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrResourceNotFound) {
			return err
		}
		logger.Ctx(ctx).Error().Err(err).Int64("subjectID", subjectID).Int64("userID", p.UserID).Msg("Unexpected error during subject access check")
		return fmt.Errorf("failed to check subject access: %w", err)
	}
	if !ok {
		return apperrors.NewForbiddenError("you are not assigned to this subject")
	}
	return nil
}

// ValidateClassAccess checks access to the subject that owns the class
func (s *AuthorizationService) ValidateClassAccess(ctx context.Context, p Principal, classID int64) error {
	if p.IsAdmin() {
		return nil
	}
	class, err := s.repos.Classes.GetByID(ctx, classID)
	if err != nil {
		return err
	}
	return s.ValidateSubjectAccess(ctx, p, class.SubjectID)
}

// ValidateSubTopicAccess checks access to the subject that owns the sub-topic
func (s *AuthorizationService) ValidateSubTopicAccess(ctx context.Context, p Principal, subTopicID int64) error {
	if p.IsAdmin() {
		return nil
	}
	subjectID, err := s.repos.Curriculum.GetSubTopicSubjectID(ctx, subTopicID)
	if err != nil {
		return err
	}
	return s.ValidateSubjectAccess(ctx, p, subjectID)
}
