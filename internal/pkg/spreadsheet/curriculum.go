// Package spreadsheet reads and writes CPR curricula as .xlsx workbooks.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/app/models/dto"
	"github.com/Rohitsah12/pwioi-club-backend-sub001/internal/pkg/apperrors"
	"github.com/xuri/excelize/v2"
)

// Column headers of a curriculum sheet, matched case-insensitively
const (
	HeaderModule       = "Module"
	HeaderTopic        = "Topic"
	HeaderSubTopic     = "Sub Topic"
	HeaderLectureCount = "Lecture Count"
)

var requiredHeaders = []string{HeaderModule, HeaderTopic, HeaderSubTopic, HeaderLectureCount}

func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// ParseCurriculum reads the first sheet of an .xlsx workbook. Rows are grouped by module
// and topic name in order of first appearance; orders are assigned 1..n.
func ParseCurriculum(r io.Reader) ([]*models.CPRModule, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError("file", "file is not a readable .xlsx workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewValidationError("file", "workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, apperrors.NewValidationError("file", "sheet needs a header row and at least one sub-topic")
	}

	cols := make(map[string]int)
	for i, h := range rows[0] {
		cols[normalize(h)] = i
	}
	for _, h := range requiredHeaders {
		if _, ok := cols[normalize(h)]; !ok {
			return nil, apperrors.NewValidationError("file", fmt.Sprintf("missing column %q", h))
		}
	}

	cell := func(row []string, header string) string {
		i := cols[normalize(header)]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var modules []*models.CPRModule
	moduleByName := make(map[string]*models.CPRModule)
	topicByName := make(map[*models.CPRModule]map[string]*models.CPRTopic)

	for n, row := range rows[1:] {
		line := n + 2
		moduleName, topicName, subTopicName := cell(row, HeaderModule), cell(row, HeaderTopic), cell(row, HeaderSubTopic)
		countStr := cell(row, HeaderLectureCount)
		if moduleName == "" && topicName == "" && subTopicName == "" && countStr == "" {
			continue
		}
		if moduleName == "" || topicName == "" || subTopicName == "" {
			return nil, apperrors.NewValidationError("file", fmt.Sprintf("row %d: module, topic and sub topic are required", line))
		}
		count, err := strconv.Atoi(countStr)
		if err != nil || count < 1 {
			return nil, apperrors.NewValidationError("file", fmt.Sprintf("row %d: lecture count must be a positive integer", line))
		}

		m, ok := moduleByName[moduleName]
		if !ok {
			m = &models.CPRModule{Name: moduleName, Order: len(modules) + 1}
			moduleByName[moduleName] = m
			topicByName[m] = make(map[string]*models.CPRTopic)
			modules = append(modules, m)
		}
		t, ok := topicByName[m][topicName]
		if !ok {
			t = &models.CPRTopic{Name: topicName, Order: len(m.Topics) + 1}
			topicByName[m][topicName] = t
			m.Topics = append(m.Topics, t)
		}
		t.SubTopics = append(t.SubTopics, &models.CPRSubTopic{
			Name:         subTopicName,
			Order:        len(t.SubTopics) + 1,
			LectureCount: count,
			Status:       models.SubTopicPending,
		})
	}

	if len(modules) == 0 {
		return nil, apperrors.NewValidationError("file", "sheet contains no sub-topics")
	}
	return modules, nil
}

// WriteProgressReport renders a progress report as a single sheet workbook
func WriteProgressReport(w io.Writer, report *dto.ProgressReport) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Progress"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{HeaderModule, HeaderTopic, HeaderSubTopic, HeaderLectureCount, "Status",
		"Planned Start", "Planned End", "Actual Start", "Actual End"}
	for i, h := range headers {
		c, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, c, h); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	for _, m := range report.Modules {
		for _, t := range m.Topics {
			for _, st := range t.SubTopics {
				values := []any{m.Name, t.Name, st.Name, st.LectureCount, string(st.Status),
					formatDate(st.PlannedStartDate), formatDate(st.PlannedEndDate),
					formatDate(st.ActualStartDate), formatDate(st.ActualEndDate)}
				for i, v := range values {
					c, _ := excelize.CoordinatesToCellName(i+1, row)
					if err := f.SetCellValue(sheet, c, v); err != nil {
						return fmt.Errorf("failed to write row %d: %w", row, err)
					}
				}
				row++
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
