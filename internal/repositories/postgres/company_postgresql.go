package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type CompanyPostgreSQL struct {
	db *gorm.DB
}

func NewCompanyPostgreSQL(db *gorm.DB) repositories.CompanyRepository {
	return &CompanyPostgreSQL{db: db}
}

func (c *CompanyPostgreSQL) Create(ctx context.Context, company *models.Company) error {
	company.Status = models.CompanyPending
	company.SubmittedAt = time.Now()
	if err := c.db.WithContext(ctx).Create(company).Error; err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}
	return nil
}

func (c *CompanyPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	err := c.db.WithContext(ctx).First(&company, id).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *CompanyPostgreSQL) ListByStatus(ctx context.Context, status models.CompanyStatus) ([]*models.Company, error) {
	var companies []*models.Company
	err := c.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at DESC").
		Find(&companies).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

func (c *CompanyPostgreSQL) UpdateStatus(ctx context.Context, id uint, status models.CompanyStatus, reviewedAt time.Time) error {
	return c.db.WithContext(ctx).
		Model(&models.Company{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      status,
			"reviewed_at": reviewedAt,
		}).Error
}
