package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Ranked Candidates"
)

type RequirementInfo struct {
	Title           string
	ExperienceLevel string
	Location        string
	Skills          []string
	OpenPositions   int
}

type CandidateRow struct {
	Rank            int
	Fullname        string
	Headline        string
	Location        string
	ExperienceLevel string
	Availability    string
	Score           int
	MatchedSkills   []string
	Reason          string
	Source          string
}

// CandidatesWorkbook renders ranked candidates for a requirement as an XLSX document.
func CandidatesWorkbook(req RequirementInfo, rows []CandidateRow, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, headerStyle, req, rows, generatedAt); err != nil {
		return nil, fmt.Errorf("summary sheet: %w", err)
	}
	if err := writeCandidates(f, headerStyle, rows); err != nil {
		return nil, fmt.Errorf("candidates sheet: %w", err)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, headerStyle int, req RequirementInfo, rows []CandidateRow, generatedAt time.Time) error {
	_ = f.SetColWidth(summarySheet, "A", "A", 22)
	_ = f.SetColWidth(summarySheet, "B", "B", 50)

	if err := f.SetCellValue(summarySheet, "A1", "Candidate Match Report"); err != nil {
		return err
	}
	if err := f.SetCellStyle(summarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	if err := f.MergeCell(summarySheet, "A1", "B1"); err != nil {
		return err
	}

	avg := 0.0
	for _, r := range rows {
		avg += float64(r.Score)
	}
	if len(rows) > 0 {
		avg /= float64(len(rows))
	}

	lines := [][2]any{
		{"Requirement", req.Title},
		{"Experience level", req.ExperienceLevel},
		{"Location", req.Location},
		{"Skills", strings.Join(req.Skills, ", ")},
		{"Open positions", req.OpenPositions},
		{"Candidates", len(rows)},
		{"Average score", fmt.Sprintf("%.1f", avg)},
		{"Generated", generatedAt.UTC().Format(time.RFC3339)},
	}
	for i, l := range lines {
		row := i + 3
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), l[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), l[1]); err != nil {
			return err
		}
	}
	return nil
}

var candidateHeaders = []string{
	"Rank", "Name", "Headline", "Location", "Experience", "Availability", "Score", "Matched skills", "Reason", "Source",
}

func writeCandidates(f *excelize.File, headerStyle int, rows []CandidateRow) error {
	for i, h := range candidateHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(candidatesSheet, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(candidateHeaders), 1)
	if err := f.SetCellStyle(candidatesSheet, "A1", last, headerStyle); err != nil {
		return err
	}
	_ = f.SetColWidth(candidatesSheet, "B", "C", 28)
	_ = f.SetColWidth(candidatesSheet, "H", "I", 40)

	for i, r := range rows {
		values := []any{
			r.Rank, r.Fullname, r.Headline, r.Location, r.ExperienceLevel, r.Availability,
			r.Score, strings.Join(r.MatchedSkills, ", "), r.Reason, r.Source,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(candidatesSheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
