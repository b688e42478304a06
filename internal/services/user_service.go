package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"github.com/nfu-im/internship-service/internal/storage"
	"github.com/nfu-im/internship-service/internal/utils"
	"github.com/nfu-im/internship-service/internal/validator"
	"gorm.io/gorm"
)

// allowedAvatarExts are the avatar upload formats accepted.
var allowedAvatarExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// ProfileResponse is the joined profile view for the account currently
// active in the session.
type ProfileResponse struct {
	ID               uint            `json:"id"`
	Username         string          `json:"username"`
	Name             string          `json:"name"`
	Email            string          `json:"email"`
	Role             models.UserRole `json:"role"`
	ClassID          *uint           `json:"class_id,omitempty"`
	ClassDisplayName string          `json:"class_display_name"`
	Classes          []*models.Class `json:"classes,omitempty"`
	IsHomeroom       bool            `json:"is_homeroom"`
}

type SaveProfileRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,user_role"`
	Name     string `json:"name" validate:"required"`
	ClassID  *uint  `json:"class_id"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}

type UserService interface {
	GetProfile(ctx context.Context, username string, role models.UserRole) (*ProfileResponse, error)
	SaveProfile(ctx context.Context, req *SaveProfileRequest) error
	ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error
	UploadAvatar(ctx context.Context, userID uint, filename string, body io.Reader) (string, error)
}

type userService struct {
	repo      repositories.Repository
	files     storage.FileStore
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, files storage.FileStore, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		files:     files,
		logger:    logger,
		validator: validator,
	}
}

func (s *userService) GetProfile(ctx context.Context, username string, role models.UserRole) (*ProfileResponse, error) {
	user, err := s.repo.User().GetByUsernameAndRole(ctx, username, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("profile lookup: %w", err)
	}

	resp := &ProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		ClassID:  user.ClassID,
	}

	if role == models.RoleTeacher || role == models.RoleDirector {
		classes, err := s.repo.Class().GetByTeacher(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("taught classes lookup: %w", err)
		}
		resp.Classes = classes

		homeroom, err := s.repo.Class().HasHomeroom(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("homeroom lookup: %w", err)
		}
		resp.IsHomeroom = homeroom

		names := make([]string, len(classes))
		for i, c := range classes {
			names[i] = c.Name
		}
		resp.ClassDisplayName = strings.Join(names, ", ")
	} else if user.Class != nil {
		resp.ClassDisplayName = user.Class.Name
	}

	return resp, nil
}

func (s *userService) SaveProfile(ctx context.Context, req *SaveProfileRequest) error {
	if err := s.validator.ValidateStruct(req); err != nil {
		return apperrorsFrom(err)
	}

	role, _ := models.ParseRole(req.Role)
	user, err := s.repo.User().GetByUsernameAndRole(ctx, req.Username, role)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("profile lookup: %w", err)
	}

	if err := s.repo.User().UpdateName(ctx, user.ID, req.Name); err != nil {
		return fmt.Errorf("update name: %w", err)
	}

	// Students must belong to a class; other roles have none.
	if role == models.RoleStudent {
		if req.ClassID == nil {
			return ErrValidationFailed
		}
		exists, err := s.repo.Class().ExistsByID(ctx, *req.ClassID)
		if err != nil {
			return fmt.Errorf("class existence check: %w", err)
		}
		if !exists {
			return ErrClassNotFound
		}
		if err := s.repo.User().AssignClass(ctx, user.ID, *req.ClassID); err != nil {
			return fmt.Errorf("assign class: %w", err)
		}
	}

	s.logger.Info("profile saved", "username", req.Username, "role", role)
	return nil
}

func (s *userService) ChangePassword(ctx context.Context, userID uint, req *ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return ErrValidationFailed
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("user lookup: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, req.OldPassword) {
		return ErrOldPasswordMismatch
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("password hashing: %w", err)
	}

	if err := s.repo.User().UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID uint, filename string, body io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAvatarExts[ext] {
		return "", ErrFileTypeNotAllowed
	}

	// One avatar per user, keyed by id.
	path := fmt.Sprintf("avatars/%d%s", userID, ext)
	if _, err := s.files.Save(path, body); err != nil {
		return "", fmt.Errorf("save avatar: %w", err)
	}

	s.logger.Info("avatar uploaded", "user_id", userID, "path", path)
	return path, nil
}
