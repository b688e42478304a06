package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"github.com/nfu-im/internship-service/internal/utils"
	"github.com/nfu-im/internship-service/internal/validator"
	"gorm.io/gorm"
)

type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,user_role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ClassID  *uint  `json:"class_id"`
}

type UpdateUserRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password"` // empty keeps the current hash
	Role     string `json:"role" validate:"required,user_role"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ClassID  *uint  `json:"class_id"`
}

type AssignClassTeacherRequest struct {
	ClassID   uint   `json:"class_id" validate:"required"`
	TeacherID uint   `json:"teacher_id" validate:"required"`
	Kind      string `json:"kind"` // defaults to homeroom
}

type AdminService interface {
	ListUsers(ctx context.Context) ([]*repositories.UserListing, error)
	SearchUsers(ctx context.Context, filters repositories.UserFilters) ([]*repositories.UserListing, error)
	CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, userID uint, req *UpdateUserRequest) error
	DeleteUser(ctx context.Context, userID uint) error

	AssignStudentClass(ctx context.Context, userID, classID uint) error
	AssignClassTeacher(ctx context.Context, req *AssignClassTeacherRequest) error
	ListClasses(ctx context.Context) ([]*repositories.ClassListing, error)
	ClassesByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error)
}

type adminService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAdminService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AdminService {
	return &adminService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *adminService) ListUsers(ctx context.Context) ([]*repositories.UserListing, error) {
	return s.repo.User().List(ctx)
}

func (s *adminService) SearchUsers(ctx context.Context, filters repositories.UserFilters) ([]*repositories.UserListing, error) {
	return s.repo.User().Search(ctx, filters)
}

func (s *adminService) CreateUser(ctx context.Context, req *CreateUserRequest) (*models.User, error) {
	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, apperrorsFrom(err)
	}
	role, _ := models.ParseRole(req.Role)

	exists, err := s.repo.User().ExistsByUsernameAndRole(ctx, req.Username, role)
	if err != nil {
		return nil, fmt.Errorf("account existence check: %w", err)
	}
	if exists {
		return nil, ErrDuplicateAccount
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("password hashing: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Role:         role,
		Name:         req.Name,
		Email:        req.Email,
	}
	if role == models.RoleStudent {
		user.ClassID = req.ClassID
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user created", "username", user.Username, "role", user.Role, "user_id", user.ID)
	return user, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userID uint, req *UpdateUserRequest) error {
	if err := s.validator.ValidateStruct(req); err != nil {
		return apperrorsFrom(err)
	}
	role, _ := models.ParseRole(req.Role)

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user lookup: %w", err)
	}

	taken, err := s.repo.User().ExistsByUsernameExcept(ctx, req.Username, userID)
	if err != nil {
		return fmt.Errorf("username check: %w", err)
	}
	if taken {
		return ErrUsernameTaken
	}

	user.Username = req.Username
	user.Role = role
	user.Name = req.Name
	user.Email = req.Email
	if role == models.RoleStudent {
		user.ClassID = req.ClassID
	} else {
		user.ClassID = nil
	}
	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("password hashing: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("user updated", "user_id", userID, "role", role)
	return nil
}

func (s *adminService) DeleteUser(ctx context.Context, userID uint) error {
	err := s.repo.User().Delete(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

func (s *adminService) AssignStudentClass(ctx context.Context, userID, classID uint) error {
	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user lookup: %w", err)
	}
	if user.Role != models.RoleStudent {
		return ErrNotStudent
	}

	exists, err := s.repo.Class().ExistsByID(ctx, classID)
	if err != nil {
		return fmt.Errorf("class existence check: %w", err)
	}
	if !exists {
		return ErrClassNotFound
	}

	return s.repo.User().AssignClass(ctx, userID, classID)
}

func (s *adminService) AssignClassTeacher(ctx context.Context, req *AssignClassTeacherRequest) error {
	if req.ClassID == 0 || req.TeacherID == 0 {
		return ErrValidationFailed
	}

	kind := models.AssignmentKind(req.Kind)
	if kind == "" {
		kind = models.AssignmentHomeroom
	}

	teacher, err := s.repo.User().GetByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("teacher lookup: %w", err)
	}
	if teacher.Role != models.RoleTeacher && teacher.Role != models.RoleDirector {
		return ErrNotTeacher
	}

	exists, err := s.repo.Class().ExistsByID(ctx, req.ClassID)
	if err != nil {
		return fmt.Errorf("class existence check: %w", err)
	}
	if !exists {
		return ErrClassNotFound
	}

	dup, err := s.repo.Class().ExistsAssignment(ctx, req.ClassID, req.TeacherID, kind)
	if err != nil {
		return fmt.Errorf("assignment check: %w", err)
	}
	if dup {
		return ErrDuplicateAssignment
	}

	// The unique index backs this up: a concurrent duplicate insert
	// that slips past the check above still fails here.
	err = s.repo.Class().CreateAssignment(ctx, &models.ClassTeacher{
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
		Kind:      kind,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateAssignment
		}
		return fmt.Errorf("create assignment: %w", err)
	}

	s.logger.Info("class teacher assigned",
		"class_id", req.ClassID, "teacher_id", req.TeacherID, "kind", kind)
	return nil
}

func (s *adminService) ListClasses(ctx context.Context) ([]*repositories.ClassListing, error) {
	return s.repo.Class().List(ctx)
}

func (s *adminService) ClassesByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	return s.repo.Class().GetByTeacher(ctx, teacherID)
}
