package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type ClassPostgreSQL struct {
	db *gorm.DB
}

func NewClassPostgreSQL(db *gorm.DB) repositories.ClassRepository {
	return &ClassPostgreSQL{db: db}
}

func (c *ClassPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Class, error) {
	var class models.Class
	err := c.db.WithContext(ctx).First(&class, id).Error
	if err != nil {
		return nil, err
	}
	return &class, nil
}

func (c *ClassPostgreSQL) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.Class{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (c *ClassPostgreSQL) List(ctx context.Context) ([]*repositories.ClassListing, error) {
	var listings []*repositories.ClassListing
	err := c.db.WithContext(ctx).
		Model(&models.Class{}).
		Select(`classes.id, classes.name, classes.department, string_agg(users.name, ', ') AS teacher_names`).
		Joins("LEFT JOIN classes_teacher ON classes.id = classes_teacher.class_id").
		Joins("LEFT JOIN users ON classes_teacher.teacher_id = users.id").
		Group("classes.id, classes.name, classes.department").
		Scan(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list classes: %w", err)
	}
	return listings, nil
}

func (c *ClassPostgreSQL) GetByTeacher(ctx context.Context, teacherID uint) ([]*models.Class, error) {
	var classes []*models.Class
	err := c.db.WithContext(ctx).
		Joins("JOIN classes_teacher ON classes.id = classes_teacher.class_id").
		Where("classes_teacher.teacher_id = ?", teacherID).
		Find(&classes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get classes by teacher: %w", err)
	}
	return classes, nil
}

func (c *ClassPostgreSQL) HasHomeroom(ctx context.Context, teacherID uint) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.ClassTeacher{}).
		Where("teacher_id = ? AND role = ?", teacherID, models.AssignmentHomeroom).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check homeroom assignment: %w", err)
	}
	return count > 0, nil
}

func (c *ClassPostgreSQL) HomeroomClassID(ctx context.Context, teacherID uint) (uint, error) {
	var assignment models.ClassTeacher
	err := c.db.WithContext(ctx).
		Where("teacher_id = ? AND role = ?", teacherID, models.AssignmentHomeroom).
		First(&assignment).Error
	if err != nil {
		return 0, err
	}
	return assignment.ClassID, nil
}

func (c *ClassPostgreSQL) ExistsAssignment(ctx context.Context, classID, teacherID uint, kind models.AssignmentKind) (bool, error) {
	var count int64
	err := c.db.WithContext(ctx).
		Model(&models.ClassTeacher{}).
		Where("class_id = ? AND teacher_id = ? AND role = ?", classID, teacherID, kind).
		Count(&count).Error
	return count > 0, err
}

// CreateAssignment inserts the assignment row. The unique index on
// (class_id, teacher_id, role) turns a concurrent duplicate insert into
// gorm.ErrDuplicatedKey instead of a silent second row.
func (c *ClassPostgreSQL) CreateAssignment(ctx context.Context, assignment *models.ClassTeacher) error {
	err := c.db.WithContext(ctx).Create(assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return gorm.ErrDuplicatedKey
		}
		return fmt.Errorf("failed to create class assignment: %w", err)
	}
	return nil
}

func (c *ClassPostgreSQL) DeleteAssignmentsByTeacher(ctx context.Context, teacherID uint) error {
	return c.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Delete(&models.ClassTeacher{}).Error
}
