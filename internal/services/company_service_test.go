package services

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nfu-im/internship-service/internal/events"
	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/validator"
)

func newTestCompanyService(repo *mockRepository) (CompanyService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	publisher := events.NewMockEventPublisher(logger)
	notifier := NewNotificationEventService(publisher, logger)
	return NewCompanyService(repo, notifier, logger, validator.New()), publisher
}

func TestCompanyService_Review(t *testing.T) {
	t.Run("approves a pending company and publishes an event", func(t *testing.T) {
		repo := newMockRepository()
		repo.companies.On("GetByID", mock.Anything, uint(4)).Return(&models.Company{
			ID: 4, CompanyName: "Acme Internships", Status: models.CompanyPending, UploadedBy: 7,
		}, nil)
		repo.companies.On("UpdateStatus", mock.Anything, uint(4), models.CompanyApproved, mock.Anything).Return(nil)

		service, publisher := newTestCompanyService(repo)
		company, err := service.Review(context.Background(), &ReviewCompanyRequest{
			CompanyID: 4, Status: "approved",
		})
		require.NoError(t, err)
		assert.Equal(t, models.CompanyApproved, company.Status)
		assert.NotNil(t, company.ReviewedAt)
		assert.Len(t, publisher.GetPublishedEvents(), 1)
	})

	t.Run("re-review is a conflict", func(t *testing.T) {
		repo := newMockRepository()
		repo.companies.On("GetByID", mock.Anything, uint(4)).Return(&models.Company{
			ID: 4, Status: models.CompanyApproved,
		}, nil)

		service, publisher := newTestCompanyService(repo)
		_, err := service.Review(context.Background(), &ReviewCompanyRequest{
			CompanyID: 4, Status: "rejected",
		})
		assert.ErrorIs(t, err, ErrCompanyAlreadyReviewed)
		assert.Empty(t, publisher.GetPublishedEvents())
		repo.companies.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown company", func(t *testing.T) {
		repo := newMockRepository()
		repo.companies.On("GetByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		service, _ := newTestCompanyService(repo)
		_, err := service.Review(context.Background(), &ReviewCompanyRequest{
			CompanyID: 99, Status: "approved",
		})
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})
}

func TestCompanyService_Submit(t *testing.T) {
	repo := newMockRepository()
	repo.companies.On("Create", mock.Anything, mock.MatchedBy(func(c *models.Company) bool {
		return c.CompanyName == "Acme Internships" && c.UploadedBy == 7
	})).Return(nil)

	service, _ := newTestCompanyService(repo)
	company, err := service.Submit(context.Background(), 7, &SubmitCompanyRequest{
		CompanyName: "Acme Internships",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), company.UploadedBy)
	repo.companies.AssertExpectations(t)
}
