package main

import (
	"bytes"
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/repositories/memory"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/services"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/config"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/db"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "admin-test-secret"

// setup replaces every external collaborator and restores them when the test ends
func setup(t *testing.T, mdb *memory.DB) {
	t.Helper()

	oldLoad, oldConnect, oldMigrate, oldServices := loadConfigFunc, connectFunc, migrateFunc, servicesFunc
	t.Cleanup(func() {
		loadConfigFunc, connectFunc, migrateFunc, servicesFunc = oldLoad, oldConnect, oldMigrate, oldServices
	})

	loadConfigFunc = func(string) (*config.Config, zerolog.Logger, error) {
		cfg := &config.Config{}
		cfg.JWT.Secret = testSecret
		cfg.JWT.AccessTokenExpiration = "2h"
		cfg.JWT.Issuer = "test"
		return cfg, zerolog.Nop(), nil
	}
	connectFunc = func(context.Context, *config.Config, zerolog.Logger) (*db.PostgresDB, error) {
		return &db.PostgresDB{}, nil
	}
	servicesFunc = func(context.Context, *config.Config, *db.PostgresDB, zerolog.Logger) (*services.Services, func(), error) {
		svc := services.NewServices(services.Dependencies{
			Repos:    mdb.Repositories(),
			Tx:       mdb,
			Location: time.UTC,
		})
		return svc, func() {}, nil
	}
}

func execute(args ...string) (string, error) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func Test_commandLine_token(t *testing.T) {
	setup(t, memory.New())

	tests := []struct {
		name       string
		args       []string
		wantErrStr string
		wantRole   models.RoleType
	}{
		{name: "admin", args: []string{"token", "--user", "1", "--email", "ops@pwioi.club"}, wantRole: models.RoleAdmin},
		{name: "teacher lower case", args: []string{"token", "--user", "7", "--email", "t@pwioi.club", "--role", "teacher"}, wantRole: models.RoleTeacher},
		{name: "unknown role", args: []string{"token", "--user", "7", "--email", "t@pwioi.club", "--role", "STUDENT"}, wantErrStr: "--role must be"},
		{name: "missing email", args: []string{"token", "--user", "7"}, wantErrStr: "email"},
		{name: "bad user", args: []string{"token", "--user", "0", "--email", "t@pwioi.club"}, wantErrStr: "--user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(tt.args...)
			if tt.wantErrStr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrStr)
				return
			}
			require.NoError(t, err)

			token := strings.SplitN(out, "\n", 2)[0]
			claims, err := auth.NewJWTService(auth.JWTConfig{SecretKey: testSecret}).ValidateAndExtractClaims(token)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, claims.Role)
			assert.Equal(t, "test", claims.Issuer)
			assert.Contains(t, out, "expires ")
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	setup(t, memory.New())

	var calls int
	migrateFunc = func(_ context.Context, cfg *config.Config, database *db.PostgresDB, _ zerolog.Logger) error {
		calls++
		require.NotNil(t, cfg)
		require.NotNil(t, database)
		return nil
	}
	_, err := execute("migrate")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	boom := errors.New("dirty database")
	migrateFunc = func(context.Context, *config.Config, *db.PostgresDB, zerolog.Logger) error { return boom }
	_, err = execute("migrate")
	assert.ErrorIs(t, err, boom)
}

func Test_commandLine_recalculate(t *testing.T) {
	mdb := memory.New()
	setup(t, mdb)

	teacher := mdb.AddTeacher(models.Teacher{Name: "Grace", Email: "grace@pwioi.club"})
	subject := mdb.AddSubject(models.Subject{Name: "DSA", Code: "DSA101", TeacherID: teacher.ID, DivisionID: 1})

	svc := services.NewServices(services.Dependencies{Repos: mdb.Repositories(), Tx: mdb, Location: time.UTC})
	_, err := svc.CPR.ReplaceCurriculum(context.Background(), subject.ID, &dto.ReplaceCurriculumRequest{
		Modules: []dto.CurriculumModuleRequest{{
			Name: "Basics",
			Topics: []dto.CurriculumTopicRequest{{
				Name:      "Arrays",
				SubTopics: []dto.CurriculumSubTopicRequest{{Name: "Two pointers", LectureCount: 1}},
			}},
		}},
	})
	require.NoError(t, err)

	// Classes written behind the service's back leave planned dates stale
	start := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	require.NoError(t, mdb.Repositories().Classes.CreateBatch(context.Background(), []*models.Class{{
		SubjectID: subject.ID, DivisionID: 1, TeacherID: teacher.ID,
		StartAt: start, EndAt: start.Add(time.Hour), LectureNumber: 1,
	}}))

	id := strconv.FormatInt(subject.ID, 10)
	out, err := execute("recalculate", "--subject", id)
	require.NoError(t, err)
	assert.Contains(t, out, "1 sub-topics changed")

	out, err = execute("recalculate", "--subject", id)
	require.NoError(t, err)
	assert.Contains(t, out, "0 sub-topics changed")

	_, err = execute("recalculate", "--subject", "999")
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)

	_, err = execute("recalculate", "--subject", "0")
	assert.ErrorIs(t, err, errNoSubject)
}
