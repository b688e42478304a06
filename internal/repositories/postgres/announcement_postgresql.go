package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type AnnouncementPostgreSQL struct {
	db *gorm.DB
}

func NewAnnouncementPostgreSQL(db *gorm.DB) repositories.AnnouncementRepository {
	return &AnnouncementPostgreSQL{db: db}
}

// ListVisible returns published announcements whose visibility window
// contains now, important ones first.
func (a *AnnouncementPostgreSQL) ListVisible(ctx context.Context, now time.Time) ([]*models.Announcement, error) {
	var announcements []*models.Announcement
	err := a.db.WithContext(ctx).
		Where("status = ?", models.AnnouncementPublished).
		Where("visible_from IS NULL OR visible_from <= ?", now).
		Where("visible_until IS NULL OR visible_until >= ?", now).
		Order("is_important DESC, created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return announcements, nil
}
