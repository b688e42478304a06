package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nfu-im/internship-service/internal/events"
	"github.com/nfu-im/internship-service/internal/models"
)

// NotificationEventService pushes review outcomes onto the event bus so
// the notification pipeline can fan them out without blocking requests.
type NotificationEventService interface {
	NotifyResumeReviewed(ctx context.Context, resume *models.Resume) error
	NotifyCompanyReviewed(ctx context.Context, company *models.Company) error
	NotifyStudentRegistered(ctx context.Context, user *models.User) error
}

type notificationEventService struct {
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewNotificationEventService(eventPublisher events.EventPublisher, logger *slog.Logger) NotificationEventService {
	return &notificationEventService{
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationEventService) NotifyResumeReviewed(ctx context.Context, resume *models.Resume) error {
	s.logger.Info("publishing resume reviewed event",
		"resume_id", resume.ID, "student_id", resume.UserID, "status", resume.Status)

	event := events.NewResumeReviewedEvent(resume.ID, resume.UserID, resume.Status, resume.Comment)
	if err := s.eventPublisher.PublishNotificationEvent(ctx, event); err != nil {
		return fmt.Errorf("publish resume reviewed event: %w", err)
	}
	return nil
}

func (s *notificationEventService) NotifyCompanyReviewed(ctx context.Context, company *models.Company) error {
	s.logger.Info("publishing company reviewed event",
		"company_id", company.ID, "status", company.Status)

	event := events.NewCompanyReviewedEvent(company.ID, company.CompanyName, company.Status, company.UploadedBy)
	if err := s.eventPublisher.PublishNotificationEvent(ctx, event); err != nil {
		return fmt.Errorf("publish company reviewed event: %w", err)
	}
	return nil
}

func (s *notificationEventService) NotifyStudentRegistered(ctx context.Context, user *models.User) error {
	event := events.NewStudentRegisteredEvent(user.ID, user.Username)
	if err := s.eventPublisher.PublishNotificationEvent(ctx, event); err != nil {
		return fmt.Errorf("publish student registered event: %w", err)
	}
	return nil
}
