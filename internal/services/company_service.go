package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"github.com/nfu-im/internship-service/internal/validator"
	"gorm.io/gorm"
)

type SubmitCompanyRequest struct {
	CompanyName   string `json:"company_name" validate:"required"`
	Description   string `json:"description"`
	Location      string `json:"location"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email" validate:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`
}

type ReviewCompanyRequest struct {
	CompanyID uint   `json:"company_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=approved rejected"`
}

type CompanyService interface {
	Submit(ctx context.Context, submitterID uint, req *SubmitCompanyRequest) (*models.Company, error)

	// Review approves or rejects a pending company. Re-reviewing an
	// already decided company is a conflict, not an update.
	Review(ctx context.Context, req *ReviewCompanyRequest) (*models.Company, error)

	ListPending(ctx context.Context) ([]*models.Company, error)
	ListApproved(ctx context.Context) ([]*models.Company, error)
}

type companyService struct {
	repo      repositories.Repository
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCompanyService(repo repositories.Repository, notifier NotificationEventService, logger *slog.Logger, validator *validator.Validator) CompanyService {
	return &companyService{
		repo:      repo,
		notifier:  notifier,
		logger:    logger,
		validator: validator,
	}
}

func (s *companyService) Submit(ctx context.Context, submitterID uint, req *SubmitCompanyRequest) (*models.Company, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrorsFrom(err)
	}
	if submitterID == 0 {
		return nil, ErrNotAuthenticated
	}

	company := &models.Company{
		CompanyName:   req.CompanyName,
		Description:   req.Description,
		Location:      req.Location,
		ContactPerson: req.ContactPerson,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		UploadedBy:    submitterID,
	}
	if err := s.repo.Company().Create(ctx, company); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}

	s.logger.Info("company submitted", "company_id", company.ID, "name", company.CompanyName)
	return company, nil
}

func (s *companyService) Review(ctx context.Context, req *ReviewCompanyRequest) (*models.Company, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrorsFrom(err)
	}

	company, err := s.repo.Company().GetByID(ctx, req.CompanyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("company lookup: %w", err)
	}

	if company.Status != models.CompanyPending {
		return nil, ErrCompanyAlreadyReviewed
	}

	status := models.CompanyStatus(req.Status)
	reviewedAt := time.Now()
	if err := s.repo.Company().UpdateStatus(ctx, company.ID, status, reviewedAt); err != nil {
		return nil, fmt.Errorf("update company status: %w", err)
	}
	company.Status = status
	company.ReviewedAt = &reviewedAt

	if err := s.notifier.NotifyCompanyReviewed(ctx, company); err != nil {
		// A lost notification should not undo the review.
		s.logger.Warn("company reviewed but notification failed",
			"company_id", company.ID, "error", err)
	}

	s.logger.Info("company reviewed", "company_id", company.ID, "status", status)
	return company, nil
}

func (s *companyService) ListPending(ctx context.Context) ([]*models.Company, error) {
	return s.repo.Company().ListByStatus(ctx, models.CompanyPending)
}

func (s *companyService) ListApproved(ctx context.Context) ([]*models.Company, error) {
	return s.repo.Company().ListByStatus(ctx, models.CompanyApproved)
}
