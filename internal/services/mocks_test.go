package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsernameAndRole(ctx context.Context, username string, role models.UserRole) (*models.User, error) {
	args := m.Called(ctx, username, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindAllByUsername(ctx context.Context, username string) ([]*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	args := m.Called(ctx, id, passwordHash)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateName(ctx context.Context, id uint, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockUserRepository) AssignClass(ctx context.Context, id uint, classID uint) error {
	args := m.Called(ctx, id, classID)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) ExistsByUsernameAndRole(ctx context.Context, username string, role models.UserRole) (bool, error) {
	args := m.Called(ctx, username, role)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameExcept(ctx context.Context, username string, exceptID uint) (bool, error) {
	args := m.Called(ctx, username, exceptID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*repositories.UserListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.UserListing), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, filters repositories.UserFilters) ([]*repositories.UserListing, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.UserListing), args.Error(1)
}

// MockClassRepository is a mock implementation of ClassRepository
type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Class), args.Error(1)
}

func (m *MockClassRepository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassRepository) List(ctx context.Context) ([]*repositories.ClassListing, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.ClassListing), args.Error(1)
}

func (m *MockClassRepository) GetByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Class), args.Error(1)
}

func (m *MockClassRepository) HasHomeroom(ctx context.Context, teacherID uint) (bool, error) {
	args := m.Called(ctx, teacherID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassRepository) HomeroomClassID(ctx context.Context, teacherID uint) (uint, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(uint), args.Error(1)
}

func (m *MockClassRepository) ExistsAssignment(ctx context.Context, classID, teacherID uint, kind models.AssignmentKind) (bool, error) {
	args := m.Called(ctx, classID, teacherID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassRepository) CreateAssignment(ctx context.Context, assignment *models.ClassTeacher) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *MockClassRepository) DeleteAssignmentsByTeacher(ctx context.Context, teacherID uint) error {
	args := m.Called(ctx, teacherID)
	return args.Error(0)
}

// MockCompanyRepository is a mock implementation of CompanyRepository
type MockCompanyRepository struct {
	mock.Mock
}

func (m *MockCompanyRepository) Create(ctx context.Context, company *models.Company) error {
	args := m.Called(ctx, company)
	return args.Error(0)
}

func (m *MockCompanyRepository) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) ListByStatus(ctx context.Context, status models.CompanyStatus) ([]*models.Company, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Company), args.Error(1)
}

func (m *MockCompanyRepository) UpdateStatus(ctx context.Context, id uint, status models.CompanyStatus, reviewedAt time.Time) error {
	args := m.Called(ctx, id, status, reviewedAt)
	return args.Error(0)
}

// MockResumeRepository is a mock implementation of ResumeRepository
type MockResumeRepository struct {
	mock.Mock
}

func (m *MockResumeRepository) Create(ctx context.Context, resume *models.Resume) error {
	args := m.Called(ctx, resume)
	return args.Error(0)
}

func (m *MockResumeRepository) GetByID(ctx context.Context, id uint) (*models.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Resume), args.Error(1)
}

func (m *MockResumeRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resume), args.Error(1)
}

func (m *MockResumeRepository) ListByClass(ctx context.Context, classID uint) ([]*models.Resume, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Resume), args.Error(1)
}

func (m *MockResumeRepository) UpdateReview(ctx context.Context, id uint, status models.ResumeStatus, comment *string) error {
	args := m.Called(ctx, id, status, comment)
	return args.Error(0)
}

func (m *MockResumeRepository) UpdateNote(ctx context.Context, id uint, note string) error {
	args := m.Called(ctx, id, note)
	return args.Error(0)
}

func (m *MockResumeRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPreferenceRepository is a mock implementation of PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) Replace(ctx context.Context, studentID uint, prefs []*models.Preference) error {
	args := m.Called(ctx, studentID, prefs)
	return args.Error(0)
}

func (m *MockPreferenceRepository) ListByStudent(ctx context.Context, studentID uint) ([]*models.Preference, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) ListByClass(ctx context.Context, classID uint) ([]*repositories.ClassPreferenceRow, error) {
	args := m.Called(ctx, classID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*repositories.ClassPreferenceRow), args.Error(1)
}

// MockAnnouncementRepository is a mock implementation of AnnouncementRepository
type MockAnnouncementRepository struct {
	mock.Mock
}

func (m *MockAnnouncementRepository) ListVisible(ctx context.Context, now time.Time) ([]*models.Announcement, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Announcement), args.Error(1)
}

// mockRepository bundles the entity mocks behind the Repository
// interface the services consume.
type mockRepository struct {
	users         *MockUserRepository
	classes       *MockClassRepository
	companies     *MockCompanyRepository
	resumes       *MockResumeRepository
	preferences   *MockPreferenceRepository
	announcements *MockAnnouncementRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:         new(MockUserRepository),
		classes:       new(MockClassRepository),
		companies:     new(MockCompanyRepository),
		resumes:       new(MockResumeRepository),
		preferences:   new(MockPreferenceRepository),
		announcements: new(MockAnnouncementRepository),
	}
}

func (r *mockRepository) User() repositories.UserRepository                 { return r.users }
func (r *mockRepository) Class() repositories.ClassRepository               { return r.classes }
func (r *mockRepository) Company() repositories.CompanyRepository           { return r.companies }
func (r *mockRepository) Resume() repositories.ResumeRepository             { return r.resumes }
func (r *mockRepository) Preference() repositories.PreferenceRepository     { return r.preferences }
func (r *mockRepository) Announcement() repositories.AnnouncementRepository { return r.announcements }
