package services

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
)

func newTestPreferenceService(repo *mockRepository) PreferenceService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewPreferenceService(repo, logger)
}

func TestPreferenceService_Submit(t *testing.T) {
	approved := []*models.Company{
		{ID: 1, Status: models.CompanyApproved},
		{ID: 2, Status: models.CompanyApproved},
		{ID: 3, Status: models.CompanyApproved},
	}

	t.Run("replaces the ranked list", func(t *testing.T) {
		repo := newMockRepository()
		repo.companies.On("ListByStatus", mock.Anything, models.CompanyApproved).Return(approved, nil)
		repo.preferences.On("Replace", mock.Anything, uint(7), mock.MatchedBy(func(prefs []*models.Preference) bool {
			return len(prefs) == 2 &&
				prefs[0].Order == 1 && prefs[0].CompanyID == 3 &&
				prefs[1].Order == 2 && prefs[1].CompanyID == 1
		})).Return(nil)

		service := newTestPreferenceService(repo)
		err := service.Submit(context.Background(), 7, &SubmitPreferencesRequest{
			CompanyIDs: []uint{3, 1},
		})
		require.NoError(t, err)
		repo.preferences.AssertExpectations(t)
	})

	t.Run("rejects more than the cap", func(t *testing.T) {
		repo := newMockRepository()
		service := newTestPreferenceService(repo)

		err := service.Submit(context.Background(), 7, &SubmitPreferencesRequest{
			CompanyIDs: []uint{1, 2, 3, 4, 5, 6},
		})
		assert.ErrorIs(t, err, ErrTooManyPreferences)
	})

	t.Run("rejects unapproved companies", func(t *testing.T) {
		repo := newMockRepository()
		repo.companies.On("ListByStatus", mock.Anything, models.CompanyApproved).Return(approved, nil)

		service := newTestPreferenceService(repo)
		err := service.Submit(context.Background(), 7, &SubmitPreferencesRequest{
			CompanyIDs: []uint{1, 42},
		})
		assert.ErrorIs(t, err, ErrCompanyNotApproved)
		repo.preferences.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPreferenceService_ReviewClass(t *testing.T) {
	t.Run("groups rows per student", func(t *testing.T) {
		submitted := time.Now()
		repo := newMockRepository()
		repo.classes.On("HomeroomClassID", mock.Anything, uint(5)).Return(uint(3), nil)
		repo.preferences.On("ListByClass", mock.Anything, uint(3)).Return([]*repositories.ClassPreferenceRow{
			{StudentID: 7, StudentName: "Alice", Order: 1, CompanyName: "Acme", SubmittedAt: &submitted},
			{StudentID: 7, StudentName: "Alice", Order: 2, CompanyName: "Globex", SubmittedAt: &submitted},
			{StudentID: 8, StudentName: "Bob"},
		}, nil)

		service := newTestPreferenceService(repo)
		grouped, err := service.ReviewClass(context.Background(), 5)
		require.NoError(t, err)

		require.Len(t, grouped, 2)
		assert.Equal(t, "Alice", grouped[0].StudentName)
		require.Len(t, grouped[0].Choices, 2)
		assert.Equal(t, "Acme", grouped[0].Choices[0].CompanyName)
		assert.Equal(t, "Bob", grouped[1].StudentName)
		assert.Empty(t, grouped[1].Choices, "students without a submission still appear")
	})

	t.Run("non-homeroom staff is rejected", func(t *testing.T) {
		repo := newMockRepository()
		repo.classes.On("HomeroomClassID", mock.Anything, uint(6)).Return(uint(0), gorm.ErrRecordNotFound)

		service := newTestPreferenceService(repo)
		_, err := service.ReviewClass(context.Background(), 6)
		assert.ErrorIs(t, err, ErrNotHomeroom)
	})
}
