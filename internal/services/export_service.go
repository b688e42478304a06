package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"
)

// ExportService renders class preference rankings as an Excel workbook
// for homeroom teachers and admins.
type ExportService interface {
	ExportClassPreferences(ctx context.Context, teacherID uint) (*bytes.Buffer, error)
}

type exportService struct {
	preferences PreferenceService
	logger      *slog.Logger
}

func NewExportService(preferences PreferenceService, logger *slog.Logger) ExportService {
	return &exportService{
		preferences: preferences,
		logger:      logger,
	}
}

func (s *exportService) ExportClassPreferences(ctx context.Context, teacherID uint) (*bytes.Buffer, error) {
	grouped, err := s.preferences.ReviewClass(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Preferences"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Student", "Rank", "Company", "Submitted At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	row := 2
	for _, student := range grouped {
		if len(student.Choices) == 0 {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), student.StudentName)
			row++
			continue
		}
		for _, choice := range student.Choices {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", row), student.StudentName)
			f.SetCellValue(sheet, fmt.Sprintf("B%d", row), choice.Order)
			f.SetCellValue(sheet, fmt.Sprintf("C%d", row), choice.CompanyName)
			if choice.SubmittedAt != nil {
				f.SetCellValue(sheet, fmt.Sprintf("D%d", row), choice.SubmittedAt.Format("2006-01-02 15:04:05"))
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("class preferences exported", "teacher_id", teacherID, "rows", row-2)
	return buf, nil
}
