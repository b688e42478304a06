package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

// MockResumeService is a mock implementation of ResumeService
type MockResumeService struct {
	mock.Mock
}

func (m *MockResumeService) Upload(ctx context.Context, userID uint, originalFilename string, body io.Reader) (*models.Resume, error) {
	args := m.Called(ctx, userID, originalFilename, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resume), args.Error(1)
}

func (m *MockResumeService) Download(ctx context.Context, resumeID uint) (*services.ResumeDownload, error) {
	args := m.Called(ctx, resumeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ResumeDownload), args.Error(1)
}

func (m *MockResumeService) ListByUser(ctx context.Context, userID uint) ([]*models.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resume), args.Error(1)
}

func (m *MockResumeService) ListClassResumes(ctx context.Context, teacherID uint) ([]*models.Resume, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resume), args.Error(1)
}

func (m *MockResumeService) Review(ctx context.Context, req *services.ReviewResumeRequest) (*models.Resume, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resume), args.Error(1)
}

func (m *MockResumeService) UpdateNote(ctx context.Context, resumeID uint, note string) error {
	args := m.Called(ctx, resumeID, note)
	return args.Error(0)
}

func (m *MockResumeService) Delete(ctx context.Context, resumeID uint) error {
	args := m.Called(ctx, resumeID)
	return args.Error(0)
}

func newResumeTestRouter(t *testing.T, resumes *MockResumeService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := NewSessionStore("test-secret")
	handler := NewResumeHandler(resumes, sessions, utils.NewDevelopmentLogger())

	router := gin.New()
	router.GET("/resumes/:id/download", handler.Download)
	return router
}

func TestResumeHandler_Download_StreamsStoredFile(t *testing.T) {
	resumes := new(MockResumeService)
	resumes.On("Download", mock.Anything, uint(42)).Return(&services.ResumeDownload{
		Body:             io.NopCloser(strings.NewReader("%PDF-1.4 resume bytes")),
		OriginalFilename: "cv.pdf",
	}, nil)

	router := newResumeTestRouter(t, resumes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resumes/42/download", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "%PDF-1.4 resume bytes", w.Body.String())
	assert.Equal(t, `attachment; filename="cv.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
}

func TestResumeHandler_Download_NotFound(t *testing.T) {
	resumes := new(MockResumeService)
	resumes.On("Download", mock.Anything, uint(99)).Return(nil, services.ErrResumeNotFound)

	router := newResumeTestRouter(t, resumes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resumes/99/download", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
