package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func TestParseCurriculum(t *testing.T) {
	buf := workbook(t,
		[]any{"lecture count", "MODULE", " Sub  Topic ", "Topic"},
		[]any{2, "Networking", "OSI layers", "Models"},
		[]any{1, "Networking", "TCP/IP", "Models"},
		[]any{},
		[]any{3, "Security", "TLS", "Crypto"},
		[]any{1, "Networking", "Subnetting", "Addressing"},
	)

	modules, err := ParseCurriculum(buf)
	require.NoError(t, err)
	require.Len(t, modules, 2)

	net := modules[0]
	assert.Equal(t, "Networking", net.Name)
	assert.Equal(t, 1, net.Order)
	require.Len(t, net.Topics, 2)
	assert.Equal(t, "Models", net.Topics[0].Name)
	assert.Equal(t, "Addressing", net.Topics[1].Name)
	assert.Equal(t, 2, net.Topics[1].Order)

	subs := net.Topics[0].SubTopics
	require.Len(t, subs, 2)
	assert.Equal(t, "OSI layers", subs[0].Name)
	assert.Equal(t, 2, subs[0].LectureCount)
	assert.Equal(t, 2, subs[1].Order)
	assert.Equal(t, models.SubTopicPending, subs[1].Status)

	assert.Equal(t, "Security", modules[1].Name)
	assert.Equal(t, 3, modules[1].Topics[0].SubTopics[0].LectureCount)
}

func TestParseCurriculum_Invalid(t *testing.T) {
	tests := []struct {
		name string
		buf  *bytes.Buffer
		kind error
		msg  string
	}{
		{"not a workbook", bytes.NewBufferString("module,topic"), apperrors.ErrBadRequest, "readable"},
		{"missing column", workbook(t, []any{"Module", "Topic", "Sub Topic"}, []any{"A", "B", "C"}), apperrors.ErrValidationFailed, "Lecture Count"},
		{"header only", workbook(t, []any{"Module", "Topic", "Sub Topic", "Lecture Count"}), apperrors.ErrValidationFailed, "header row"},
		{"zero lectures", workbook(t, []any{"Module", "Topic", "Sub Topic", "Lecture Count"}, []any{"A", "B", "C", 0}), apperrors.ErrValidationFailed, "row 2"},
		{"missing topic", workbook(t, []any{"Module", "Topic", "Sub Topic", "Lecture Count"}, []any{"A", "", "C", 1}), apperrors.ErrValidationFailed, "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCurriculum(tt.buf)
			require.ErrorIs(t, err, tt.kind)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestWriteProgressReport_RoundTrip(t *testing.T) {
	planned := time.Date(2025, time.January, 6, 9, 0, 0, 0, time.UTC)
	report := &dto.ProgressReport{
		SubjectID: 1,
		Modules: []*models.CPRModule{{
			Name: "Networking",
			Topics: []*models.CPRTopic{{
				Name: "Models",
				SubTopics: []*models.CPRSubTopic{
					{Name: "OSI layers", LectureCount: 2, Status: models.SubTopicCompleted, PlannedStartDate: &planned},
					{Name: "TCP/IP", LectureCount: 1, Status: models.SubTopicPending},
				},
			}},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteProgressReport(&buf, report))

	raw := bytes.NewReader(buf.Bytes())
	f, err := excelize.OpenReader(raw)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Progress"}, f.GetSheetList())
	status, err := f.GetCellValue("Progress", "E2")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", status)
	start, err := f.GetCellValue("Progress", "F2")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-06", start)

	// An export can be uploaded again as a curriculum.
	modules, err := ParseCurriculum(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, modules, 1)
	assert.Len(t, modules[0].Topics[0].SubTopics, 2)
}
