package handlers

import (
	"context"
	"encoding/json"
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

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, sess *models.Session, username, password string) (*services.LoginResult, error) {
	args := m.Called(ctx, sess, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.LoginResult), args.Error(1)
}

func (m *MockAuthService) ConfirmRole(ctx context.Context, sess *models.Session, requestedRole string) (services.Destination, error) {
	args := m.Called(ctx, sess, requestedRole)
	return args.Get(0).(services.Destination), args.Error(1)
}

func (m *MockAuthService) ResolveIndex(ctx context.Context, sess *models.Session) (services.Destination, error) {
	args := m.Called(ctx, sess)
	return args.Get(0).(services.Destination), args.Error(1)
}

func (m *MockAuthService) Logout(sess *models.Session) {
	m.Called(sess)
	sess.Clear()
}

func (m *MockAuthService) RegisterStudent(ctx context.Context, req *services.RegisterStudentRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockNotificationEventService is a mock implementation of NotificationEventService
type MockNotificationEventService struct {
	mock.Mock
}

func (m *MockNotificationEventService) NotifyResumeReviewed(ctx context.Context, resume *models.Resume) error {
	args := m.Called(ctx, resume)
	return args.Error(0)
}

func (m *MockNotificationEventService) NotifyCompanyReviewed(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockNotificationEventService) NotifyStudentRegistered(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func newAuthTestRouter(t *testing.T, auth *MockAuthService) (*gin.Engine, *SessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sessions := NewSessionStore("test-secret")
	handler := NewAuthHandler(auth, new(MockNotificationEventService), sessions, utils.NewDevelopmentLogger())

	router := gin.New()
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/confirm-role", handler.ConfirmRole)
	router.GET("/index", handler.Index)
	router.POST("/auth/logout", handler.Logout)
	router.GET("/auth/session", handler.GetSession)
	return router, sessions
}

func TestAuthHandler_Login_SingleMatch(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Login", mock.Anything, mock.Anything, "S100", "Passw0rd1").
		Run(func(args mock.Arguments) {
			sess := args.Get(1).(*models.Session)
			sess.Username = "S100"
			sess.UserID = 7
			sess.Role = models.RoleStudent
			sess.OriginalRole = models.RoleStudent
		}).
		Return(&services.LoginResult{
			Outcome:     services.OutcomeSingleMatch,
			Username:    "S100",
			Roles:       []models.UserRole{models.RoleStudent},
			Destination: services.DestStudentHome,
		}, nil)

	router, _ := newAuthTestRouter(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"S100","password":"Passw0rd1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var result services.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, services.OutcomeSingleMatch, result.Outcome)
	assert.Equal(t, services.DestStudentHome, result.Destination)
	assert.NotEmpty(t, w.Result().Cookies(), "login must set the session cookie")
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Login", mock.Anything, mock.Anything, "S100", "wrong").
		Return(nil, services.ErrBadCredentials)

	router, _ := newAuthTestRouter(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"S100","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Login_UnknownAccount(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Login", mock.Anything, mock.Anything, "nobody", "pass").
		Return(nil, services.ErrAccountNotFound)

	router, _ := newAuthTestRouter(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"nobody","password":"pass"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_ConfirmRole_Disallowed(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ConfirmRole", mock.Anything, mock.Anything, "ta").
		Return(services.Destination(""), services.ErrRoleNotAllowed)

	router, _ := newAuthTestRouter(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/confirm-role",
		strings.NewReader(`{"role":"ta"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_SessionRoundTrip(t *testing.T) {
	// The cookie written by login must come back out of GetSession with
	// the same identity fields.
	auth := new(MockAuthService)
	auth.On("Login", mock.Anything, mock.Anything, "T001", "Passw0rd1").
		Run(func(args mock.Arguments) {
			sess := args.Get(1).(*models.Session)
			sess.Username = "T001"
			sess.UserID = 11
			sess.PendingRoles = []models.UserRole{models.RoleTeacher, models.RoleDirector}
		}).
		Return(&services.LoginResult{
			Outcome:     services.OutcomeMultipleMatch,
			Username:    "T001",
			Roles:       []models.UserRole{models.RoleTeacher, models.RoleDirector},
			Destination: services.DestLoginConfirm,
		}, nil)

	router, _ := newAuthTestRouter(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		strings.NewReader(`{"username":"T001","password":"Passw0rd1"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
	for _, cookie := range cookies {
		req2.AddCookie(cookie)
	}
	router.ServeHTTP(w2, req2)
	require.Equal(t, http.StatusOK, w2.Code)

	var state struct {
		Username      string   `json:"username"`
		PendingRoles  []string `json:"pending_roles"`
		Authenticated bool     `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(w2.Body.Bytes(), &state))
	assert.Equal(t, "T001", state.Username)
	assert.Equal(t, []string{"teacher", "director"}, state.PendingRoles)
	assert.True(t, state.Authenticated)
}

func TestAuthHandler_Index_NotLoggedIn(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ResolveIndex", mock.Anything, mock.MatchedBy(func(sess *models.Session) bool {
		return !sess.Authenticated()
	})).Return(services.DestLogin, nil)

	router, _ := newAuthTestRouter(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/index", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), string(services.DestLogin))
}

func TestAuthHandler_Logout_ClearsCookie(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("Logout", mock.Anything).Return()

	router, _ := newAuthTestRouter(t, auth)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Negative(t, cookies[0].MaxAge)
}
