package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/services"
	"github.com/rs/zerolog"
)

// Default development roster
const (
	defaultTeacherEmail = "ada.lovelace@pwioi.club"
	defaultSubjectCode  = "DSA101"
	defaultDivisionID   = 1
	defaultCenterID     = 1
)

// DefaultCurriculum is loaded for the seeded subject when it has none yet
func DefaultCurriculum() *dto.ReplaceCurriculumRequest {
	return &dto.ReplaceCurriculumRequest{
		Modules: []dto.CurriculumModuleRequest{
			{
				Name: "Foundations",
				Topics: []dto.CurriculumTopicRequest{
					{Name: "Complexity", SubTopics: []dto.CurriculumSubTopicRequest{
						{Name: "Big-O notation", LectureCount: 1},
						{Name: "Amortized analysis", LectureCount: 2},
					}},
					{Name: "Arrays", SubTopics: []dto.CurriculumSubTopicRequest{
						{Name: "Two pointers", LectureCount: 2},
						{Name: "Prefix sums", LectureCount: 1},
					}},
				},
			},
			{
				Name: "Searching and sorting",
				Topics: []dto.CurriculumTopicRequest{
					{Name: "Searching", SubTopics: []dto.CurriculumSubTopicRequest{
						{Name: "Binary search", LectureCount: 2},
					}},
					{Name: "Sorting", SubTopics: []dto.CurriculumSubTopicRequest{
						{Name: "Merge sort", LectureCount: 2},
						{Name: "Quick sort", LectureCount: 2},
					}},
				},
			},
		},
	}
}

// upsertReturningID runs an INSERT ... ON CONFLICT that always yields the row id
func upsertReturningID(ctx context.Context, q repositories.Querier, b squirrel.InsertBuilder) (int64, error) {
	sqlStr, args, err := b.PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build seed query: %w", err)
	}
	var id int64
	if err := q.QueryRow(ctx, sqlStr, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// CreateDefaultData inserts a teacher, a room and a subject with a curriculum if they don't exist.
// Running it again leaves existing rows and curricula alone.
func CreateDefaultData(ctx context.Context, q repositories.Querier, svc *services.Services, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (teacher, room, subject, curriculum)...")
	var finalErr error // To collect potential errors without stopping the process

	teacherID, err := upsertReturningID(ctx, q, squirrel.Insert("teachers").
		Columns("name", "email").
		Values("Ada Lovelace", defaultTeacherEmail).
		Suffix("ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name RETURNING id"))
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default teacher")
		return fmt.Errorf("seed teacher: %w", err)
	}

	roomID, err := upsertReturningID(ctx, q, squirrel.Insert("rooms").
		Columns("name", "center_id").
		Values("Lab 1", defaultCenterID).
		Suffix("ON CONFLICT (center_id, name) DO UPDATE SET name = EXCLUDED.name RETURNING id"))
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default room")
		finalErr = errors.Join(finalErr, fmt.Errorf("seed room: %w", err))
	}

	subjectID, err := upsertReturningID(ctx, q, squirrel.Insert("subjects").
		Columns("name", "code", "teacher_id", "division_id").
		Values("Data Structures and Algorithms", defaultSubjectCode, teacherID, defaultDivisionID).
		Suffix("ON CONFLICT (division_id, code) DO UPDATE SET name = EXCLUDED.name RETURNING id"))
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default subject")
		return errors.Join(finalErr, fmt.Errorf("seed subject: %w", err))
	}

	tree, err := svc.CPR.Tree(ctx, subjectID)
	if err != nil {
		lgr.Error().Err(err).Int64("subjectID", subjectID).Msg("Error reading seeded curriculum")
		return errors.Join(finalErr, err)
	}
	if len(tree) == 0 {
		if _, err := svc.CPR.ReplaceCurriculum(ctx, subjectID, DefaultCurriculum()); err != nil {
			lgr.Error().Err(err).Int64("subjectID", subjectID).Msg("Error creating default curriculum")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().
		Int64("teacherID", teacherID).
		Int64("roomID", roomID).
		Int64("subjectID", subjectID).
		Msg("Default data check/creation completed.")
	return finalErr
}
