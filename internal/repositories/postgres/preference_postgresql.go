package postgres

import (
	"context"
	"fmt"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type PreferencePostgreSQL struct {
	db *gorm.DB
}

func NewPreferencePostgreSQL(db *gorm.DB) repositories.PreferenceRepository {
	return &PreferencePostgreSQL{db: db}
}

// Replace swaps the student's ranked list atomically. Submitting an
// empty list clears the previous one.
func (p *PreferencePostgreSQL) Replace(ctx context.Context, studentID uint, prefs []*models.Preference) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", studentID).Delete(&models.Preference{}).Error; err != nil {
			return fmt.Errorf("failed to clear preferences: %w", err)
		}
		if len(prefs) == 0 {
			return nil
		}
		if err := tx.Create(prefs).Error; err != nil {
			return fmt.Errorf("failed to insert preferences: %w", err)
		}
		return nil
	})
}

func (p *PreferencePostgreSQL) ListByStudent(ctx context.Context, studentID uint) ([]*models.Preference, error) {
	var prefs []*models.Preference
	err := p.db.WithContext(ctx).
		Preload("Company").
		Where("student_id = ?", studentID).
		Order("preference_order ASC").
		Find(&prefs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list preferences: %w", err)
	}
	return prefs, nil
}

func (p *PreferencePostgreSQL) ListByClass(ctx context.Context, classID uint) ([]*repositories.ClassPreferenceRow, error) {
	var rows []*repositories.ClassPreferenceRow
	err := p.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.id AS student_id, users.name AS student_name,
			student_preferences.preference_order AS "order",
			internship_companies.company_name, student_preferences.submitted_at`).
		Joins("LEFT JOIN student_preferences ON users.id = student_preferences.student_id").
		Joins("LEFT JOIN internship_companies ON student_preferences.company_id = internship_companies.id").
		Where("users.class_id = ? AND users.role = ?", classID, models.RoleStudent).
		Order("users.name, student_preferences.preference_order").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list class preferences: %w", err)
	}
	return rows, nil
}
