package postgres

import (
	"context"
	"fmt"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type UserPostgreSQL struct {
	db *gorm.DB
}

func NewUserPostgreSQL(db *gorm.DB) repositories.UserRepository {
	return &UserPostgreSQL{db: db}
}

func (u *UserPostgreSQL) Create(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *UserPostgreSQL) GetByUsernameAndRole(ctx context.Context, username string, role models.UserRole) (*models.User, error) {
	var user models.User
	err := u.db.WithContext(ctx).
		Preload("Class").
		Where("username = ? AND role = ?", username, role).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindAllByUsername returns candidate rows for the role resolver. The
// explicit id ordering keeps the "first matched account" and the
// pending-roles order stable across calls.
func (u *UserPostgreSQL) FindAllByUsername(ctx context.Context, username string) ([]*models.User, error) {
	var users []*models.User
	err := u.db.WithContext(ctx).
		Where("username = ?", username).
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find users by username: %w", err)
	}
	return users, nil
}

func (u *UserPostgreSQL) Update(ctx context.Context, user *models.User) error {
	if err := u.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (u *UserPostgreSQL) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password", passwordHash).Error
}

func (u *UserPostgreSQL) UpdateName(ctx context.Context, id uint, name string) error {
	return u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("name", name).Error
}

func (u *UserPostgreSQL) AssignClass(ctx context.Context, id uint, classID uint) error {
	return u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("class_id", classID).Error
}

// Delete removes the user and, for teacher or director accounts, every
// class assignment owned by it, in one transaction.
func (u *UserPostgreSQL) Delete(ctx context.Context, id uint) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		if user.Role == models.RoleTeacher || user.Role == models.RoleDirector {
			if err := tx.Where("teacher_id = ?", id).Delete(&models.ClassTeacher{}).Error; err != nil {
				return fmt.Errorf("failed to delete class assignments: %w", err)
			}
		}

		if err := tx.Delete(&models.User{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
}

func (u *UserPostgreSQL) ExistsByUsernameAndRole(ctx context.Context, username string, role models.UserRole) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND role = ?", username, role).
		Count(&count).Error
	return count > 0, err
}

func (u *UserPostgreSQL) ExistsByUsernameExcept(ctx context.Context, username string, exceptID uint) (bool, error) {
	var count int64
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Where("username = ? AND id <> ?", username, exceptID).
		Count(&count).Error
	return count > 0, err
}

const userListingSelect = `
	users.id, users.username, users.name, users.email, users.role, users.class_id, users.created_at,
	classes.name AS class_name,
	classes.department AS department,
	(
		SELECT string_agg(c2.name, ', ')
		FROM classes_teacher ct2
		JOIN classes c2 ON ct2.class_id = c2.id
		WHERE ct2.teacher_id = users.id
	) AS teaching_classes`

func (u *UserPostgreSQL) List(ctx context.Context) ([]*repositories.UserListing, error) {
	var listings []*repositories.UserListing
	err := u.db.WithContext(ctx).
		Model(&models.User{}).
		Select(userListingSelect).
		Joins("LEFT JOIN classes ON users.class_id = classes.id").
		Order("users.created_at DESC").
		Scan(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return listings, nil
}

func (u *UserPostgreSQL) Search(ctx context.Context, filters repositories.UserFilters) ([]*repositories.UserListing, error) {
	query := u.db.WithContext(ctx).
		Model(&models.User{}).
		Select(userListingSelect).
		Joins("LEFT JOIN classes ON users.class_id = classes.id")

	if filters.Username != "" {
		query = query.Where("users.username LIKE ?", "%"+filters.Username+"%")
	}
	if filters.ResumeFilename != "" {
		query = query.Where(
			"EXISTS (SELECT 1 FROM resumes r WHERE r.user_id = users.id AND r.original_filename LIKE ?)",
			"%"+filters.ResumeFilename+"%")
	}
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit).Offset(filters.Offset)
	}

	var listings []*repositories.UserListing
	if err := query.Order("users.created_at DESC").Scan(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return listings, nil
}
