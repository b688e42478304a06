package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type SubmitPreferencesRequest struct {
	// CompanyIDs in rank order, first entry is the top choice. Up to
	// MaxPreferences entries; an empty list clears the submission.
	CompanyIDs []uint `json:"company_ids"`
}

// StudentPreferences groups one student's ranked list for review views.
type StudentPreferences struct {
	StudentID   uint                `json:"student_id"`
	StudentName string              `json:"student_name"`
	Choices     []*PreferenceChoice `json:"choices"`
}

type PreferenceChoice struct {
	Order       int        `json:"order"`
	CompanyName string     `json:"company"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

type PreferenceService interface {
	Submit(ctx context.Context, studentID uint, req *SubmitPreferencesRequest) error
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Preference, error)

	// ReviewClass returns the ranked lists of every student in the
	// teacher's homeroom class. ErrNotHomeroom if they have none.
	ReviewClass(ctx context.Context, teacherID uint) ([]*StudentPreferences, error)
}

type preferenceService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewPreferenceService(repo repositories.Repository, logger *slog.Logger) PreferenceService {
	return &preferenceService{
		repo:   repo,
		logger: logger,
	}
}

func (s *preferenceService) Submit(ctx context.Context, studentID uint, req *SubmitPreferencesRequest) error {
	if studentID == 0 {
		return ErrNotAuthenticated
	}
	if len(req.CompanyIDs) > models.MaxPreferences {
		return ErrTooManyPreferences
	}

	// Only approved companies are rankable.
	approved, err := s.repo.Company().ListByStatus(ctx, models.CompanyApproved)
	if err != nil {
		return fmt.Errorf("approved companies lookup: %w", err)
	}
	approvedIDs := make(map[uint]bool, len(approved))
	for _, c := range approved {
		approvedIDs[c.ID] = true
	}

	now := time.Now()
	prefs := make([]*models.Preference, 0, len(req.CompanyIDs))
	for i, companyID := range req.CompanyIDs {
		if !approvedIDs[companyID] {
			return ErrCompanyNotApproved
		}
		prefs = append(prefs, &models.Preference{
			StudentID:   studentID,
			Order:       i + 1,
			CompanyID:   companyID,
			SubmittedAt: now,
		})
	}

	if err := s.repo.Preference().Replace(ctx, studentID, prefs); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}

	s.logger.Info("preferences submitted", "student_id", studentID, "count", len(prefs))
	return nil
}

func (s *preferenceService) ListByStudent(ctx context.Context, studentID uint) ([]*models.Preference, error) {
	return s.repo.Preference().ListByStudent(ctx, studentID)
}

func (s *preferenceService) ReviewClass(ctx context.Context, teacherID uint) ([]*StudentPreferences, error) {
	classID, err := s.repo.Class().HomeroomClassID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotHomeroom
		}
		return nil, fmt.Errorf("homeroom class lookup: %w", err)
	}

	rows, err := s.repo.Preference().ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}

	// Group flat rows per student, keeping the store's name ordering.
	var grouped []*StudentPreferences
	index := make(map[uint]*StudentPreferences)
	for _, row := range rows {
		entry, ok := index[row.StudentID]
		if !ok {
			entry = &StudentPreferences{
				StudentID:   row.StudentID,
				StudentName: row.StudentName,
			}
			index[row.StudentID] = entry
			grouped = append(grouped, entry)
		}
		if row.Order > 0 && row.CompanyName != "" {
			entry.Choices = append(entry.Choices, &PreferenceChoice{
				Order:       row.Order,
				CompanyName: row.CompanyName,
				SubmittedAt: row.SubmittedAt,
			})
		}
	}
	return grouped, nil
}
