package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"github.com/nfu-im/internship-service/internal/storage"
	"gorm.io/gorm"
)

type ReviewResumeRequest struct {
	ResumeID uint    `json:"resume_id" validate:"required"`
	Status   string  `json:"status" validate:"required,oneof=approved rejected"`
	Comment  *string `json:"comment"`
}

// ResumeDownload pairs the stored body with the name it was uploaded
// under, for the download response.
type ResumeDownload struct {
	Body             io.ReadCloser
	OriginalFilename string
}

type ResumeService interface {
	Upload(ctx context.Context, userID uint, originalFilename string, body io.Reader) (*models.Resume, error)
	Download(ctx context.Context, resumeID uint) (*ResumeDownload, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Resume, error)

	// ListClassResumes returns resumes of the homeroom class of the
	// given teacher. Fails with ErrNotHomeroom for non-homeroom staff.
	ListClassResumes(ctx context.Context, teacherID uint) ([]*models.Resume, error)

	Review(ctx context.Context, req *ReviewResumeRequest) (*models.Resume, error)
	UpdateNote(ctx context.Context, resumeID uint, note string) error
	Delete(ctx context.Context, resumeID uint) error
}

type resumeService struct {
	repo     repositories.Repository
	files    storage.FileStore
	notifier NotificationEventService
	logger   *slog.Logger
}

func NewResumeService(repo repositories.Repository, files storage.FileStore, notifier NotificationEventService, logger *slog.Logger) ResumeService {
	return &resumeService{
		repo:     repo,
		files:    files,
		notifier: notifier,
		logger:   logger,
	}
}

func (s *resumeService) Upload(ctx context.Context, userID uint, originalFilename string, body io.Reader) (*models.Resume, error) {
	if userID == 0 {
		return nil, ErrNotAuthenticated
	}
	if originalFilename == "" {
		return nil, ErrValidationFailed
	}

	path := fmt.Sprintf("resumes/%d/%d_%s", userID, time.Now().UnixNano(), originalFilename)
	size, err := s.files.Save(path, body)
	if err != nil {
		return nil, fmt.Errorf("save resume file: %w", err)
	}

	resume := &models.Resume{
		UserID:           userID,
		OriginalFilename: originalFilename,
		Filepath:         path,
		Filesize:         size,
	}
	if err := s.repo.Resume().Create(ctx, resume); err != nil {
		// Do not keep an orphan file when the row insert fails.
		if rmErr := s.files.Remove(path); rmErr != nil {
			s.logger.Warn("failed to remove orphan resume file", "path", path, "error", rmErr)
		}
		return nil, fmt.Errorf("create resume: %w", err)
	}

	s.logger.Info("resume uploaded", "resume_id", resume.ID, "user_id", userID, "size", size)
	return resume, nil
}

func (s *resumeService) Download(ctx context.Context, resumeID uint) (*ResumeDownload, error) {
	resume, err := s.getResume(ctx, resumeID)
	if err != nil {
		return nil, err
	}

	body, err := s.files.Open(resume.Filepath)
	if err != nil {
		s.logger.Error("resume file missing", "resume_id", resumeID, "path", resume.Filepath)
		return nil, ErrResumeNotFound
	}
	return &ResumeDownload{Body: body, OriginalFilename: resume.OriginalFilename}, nil
}

func (s *resumeService) ListByUser(ctx context.Context, userID uint) ([]*models.Resume, error) {
	return s.repo.Resume().ListByUser(ctx, userID)
}

func (s *resumeService) ListClassResumes(ctx context.Context, teacherID uint) ([]*models.Resume, error) {
	classID, err := s.repo.Class().HomeroomClassID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotHomeroom
		}
		return nil, fmt.Errorf("homeroom class lookup: %w", err)
	}
	return s.repo.Resume().ListByClass(ctx, classID)
}

func (s *resumeService) Review(ctx context.Context, req *ReviewResumeRequest) (*models.Resume, error) {
	resume, err := s.getResume(ctx, req.ResumeID)
	if err != nil {
		return nil, err
	}

	status := models.ResumeStatus(req.Status)
	if status != models.ResumeApproved && status != models.ResumeRejected {
		return nil, ErrValidationFailed
	}

	if err := s.repo.Resume().UpdateReview(ctx, resume.ID, status, req.Comment); err != nil {
		return nil, fmt.Errorf("update resume review: %w", err)
	}
	resume.Status = status
	if req.Comment != nil {
		resume.Comment = *req.Comment
	}

	if err := s.notifier.NotifyResumeReviewed(ctx, resume); err != nil {
		s.logger.Warn("resume reviewed but notification failed",
			"resume_id", resume.ID, "error", err)
	}

	s.logger.Info("resume reviewed", "resume_id", resume.ID, "status", status)
	return resume, nil
}

func (s *resumeService) UpdateNote(ctx context.Context, resumeID uint, note string) error {
	if _, err := s.getResume(ctx, resumeID); err != nil {
		return err
	}
	return s.repo.Resume().UpdateNote(ctx, resumeID, note)
}

func (s *resumeService) Delete(ctx context.Context, resumeID uint) error {
	resume, err := s.getResume(ctx, resumeID)
	if err != nil {
		return err
	}

	if err := s.repo.Resume().Delete(ctx, resumeID); err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if err := s.files.Remove(resume.Filepath); err != nil {
		s.logger.Warn("resume row deleted but file removal failed",
			"resume_id", resumeID, "path", resume.Filepath, "error", err)
	}

	s.logger.Info("resume deleted", "resume_id", resumeID)
	return nil
}

func (s *resumeService) getResume(ctx context.Context, resumeID uint) (*models.Resume, error) {
	resume, err := s.repo.Resume().GetByID(ctx, resumeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrResumeNotFound
		}
		return nil, fmt.Errorf("resume lookup: %w", err)
	}
	return resume, nil
}
