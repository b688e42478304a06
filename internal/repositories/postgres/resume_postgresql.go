package postgres

import (
	"context"
	"fmt"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type ResumePostgreSQL struct {
	db *gorm.DB
}

func NewResumePostgreSQL(db *gorm.DB) repositories.ResumeRepository {
	return &ResumePostgreSQL{db: db}
}

func (r *ResumePostgreSQL) Create(ctx context.Context, resume *models.Resume) error {
	resume.Status = models.ResumePending
	if err := r.db.WithContext(ctx).Create(resume).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}
	return nil
}

func (r *ResumePostgreSQL) GetByID(ctx context.Context, id uint) (*models.Resume, error) {
	var resume models.Resume
	err := r.db.WithContext(ctx).First(&resume, id).Error
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func (r *ResumePostgreSQL) ListByUser(ctx context.Context, userID uint) ([]*models.Resume, error) {
	var resumes []*models.Resume
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return resumes, nil
}

func (r *ResumePostgreSQL) ListByClass(ctx context.Context, classID uint) ([]*models.Resume, error) {
	var resumes []*models.Resume
	err := r.db.WithContext(ctx).
		Preload("User").
		Joins("JOIN users ON users.id = resumes.user_id").
		Where("users.class_id = ?", classID).
		Order("users.name, resumes.created_at DESC").
		Find(&resumes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list class resumes: %w", err)
	}
	return resumes, nil
}

func (r *ResumePostgreSQL) UpdateReview(ctx context.Context, id uint, status models.ResumeStatus, comment *string) error {
	updates := map[string]interface{}{"status": status}
	if comment != nil {
		updates["comment"] = *comment
	}
	return r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ResumePostgreSQL) UpdateNote(ctx context.Context, id uint, note string) error {
	return r.db.WithContext(ctx).
		Model(&models.Resume{}).
		Where("id = ?", id).
		Update("note", note).Error
}

func (r *ResumePostgreSQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Resume{}, id).Error
}
