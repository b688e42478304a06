package repositories

import (
	"context"
	"time"

	"github.com/nfu-im/internship-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type UserFilters struct {
	Username       string `json:"username"`        // substring match
	ResumeFilename string `json:"resume_filename"` // substring match against uploaded resumes
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

// ===== SHARED LIST STRUCTS =====

// UserListing is a user row joined with its class and taught classes,
// shaped for the admin user-management views.
type UserListing struct {
	ID              uint            `json:"id"`
	Username        string          `json:"username"`
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	Role            models.UserRole `json:"role"`
	ClassID         *uint           `json:"class_id,omitempty"`
	ClassName       string          `json:"class_name,omitempty"`
	Department      string          `json:"department,omitempty"`
	TeachingClasses string          `json:"teaching_classes,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// ClassListing is a class row with the names of its assigned teachers.
type ClassListing struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	TeacherNames string `json:"teacher_names"`
}

// ClassPreferenceRow is one (student, rank, company) row of a class's
// submitted preferences, used by review and export.
type ClassPreferenceRow struct {
	StudentID   uint       `json:"student_id"`
	StudentName string     `json:"student_name"`
	Order       int        `json:"preference_order"`
	CompanyName string     `json:"company_name"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// ===== REPOSITORY INTERFACES =====

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsernameAndRole(ctx context.Context, username string, role models.UserRole) (*models.User, error)

	// FindAllByUsername returns every account row sharing the username,
	// across roles, in stable store order. The role resolver depends on
	// this not being filtered by role.
	FindAllByUsername(ctx context.Context, username string) ([]*models.User, error)

	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	UpdateName(ctx context.Context, id uint, name string) error
	AssignClass(ctx context.Context, id uint, classID uint) error
	Delete(ctx context.Context, id uint) error

	ExistsByUsernameAndRole(ctx context.Context, username string, role models.UserRole) (bool, error)
	ExistsByUsernameExcept(ctx context.Context, username string, exceptID uint) (bool, error)

	List(ctx context.Context) ([]*UserListing, error)
	Search(ctx context.Context, filters UserFilters) ([]*UserListing, error)
}

type ClassRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Class, error)
	ExistsByID(ctx context.Context, id uint) (bool, error)
	List(ctx context.Context) ([]*ClassListing, error)
	GetByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error)

	// HasHomeroom reports whether the teacher holds a homeroom
	// assignment for any class. Always a fresh read; never cached.
	HasHomeroom(ctx context.Context, teacherID uint) (bool, error)

	// HomeroomClassID returns the class the teacher is homeroom for.
	HomeroomClassID(ctx context.Context, teacherID uint) (uint, error)

	ExistsAssignment(ctx context.Context, classID, teacherID uint, kind models.AssignmentKind) (bool, error)
	CreateAssignment(ctx context.Context, assignment *models.ClassTeacher) error
	DeleteAssignmentsByTeacher(ctx context.Context, teacherID uint) error
}

type CompanyRepository interface {
	Create(ctx context.Context, company *models.Company) error
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	ListByStatus(ctx context.Context, status models.CompanyStatus) ([]*models.Company, error)
	UpdateStatus(ctx context.Context, id uint, status models.CompanyStatus, reviewedAt time.Time) error
}

type ResumeRepository interface {
	Create(ctx context.Context, resume *models.Resume) error
	GetByID(ctx context.Context, id uint) (*models.Resume, error)
	ListByUser(ctx context.Context, userID uint) ([]*models.Resume, error)
	ListByClass(ctx context.Context, classID uint) ([]*models.Resume, error)
	UpdateReview(ctx context.Context, id uint, status models.ResumeStatus, comment *string) error
	UpdateNote(ctx context.Context, id uint, note string) error
	Delete(ctx context.Context, id uint) error
}

type PreferenceRepository interface {
	// Replace deletes the student's previous list and inserts the new
	// one in a single transaction.
	Replace(ctx context.Context, studentID uint, prefs []*models.Preference) error
	ListByStudent(ctx context.Context, studentID uint) ([]*models.Preference, error)
	ListByClass(ctx context.Context, classID uint) ([]*ClassPreferenceRow, error)
}

type AnnouncementRepository interface {
	ListVisible(ctx context.Context, now time.Time) ([]*models.Announcement, error)
}

// Repository bundles every repository behind one accessor, mirroring
// how the services are wired together.
type Repository interface {
	User() UserRepository
	Class() ClassRepository
	Company() CompanyRepository
	Resume() ResumeRepository
	Preference() PreferenceRepository
	Announcement() AnnouncementRepository
}
