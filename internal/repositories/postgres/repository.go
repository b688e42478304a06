package postgres

import (
	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/repositories"
	"gorm.io/gorm"
)

type Repository struct {
	user         repositories.UserRepository
	class        repositories.ClassRepository
	company      repositories.CompanyRepository
	resume       repositories.ResumeRepository
	preference   repositories.PreferenceRepository
	announcement repositories.AnnouncementRepository
}

func NewRepository(db *gorm.DB) repositories.Repository {
	return &Repository{
		user:         NewUserPostgreSQL(db),
		class:        NewClassPostgreSQL(db),
		company:      NewCompanyPostgreSQL(db),
		resume:       NewResumePostgreSQL(db),
		preference:   NewPreferencePostgreSQL(db),
		announcement: NewAnnouncementPostgreSQL(db),
	}
}

func (r *Repository) User() repositories.UserRepository                 { return r.user }
func (r *Repository) Class() repositories.ClassRepository               { return r.class }
func (r *Repository) Company() repositories.CompanyRepository           { return r.company }
func (r *Repository) Resume() repositories.ResumeRepository             { return r.resume }
func (r *Repository) Preference() repositories.PreferenceRepository     { return r.preference }
func (r *Repository) Announcement() repositories.AnnouncementRepository { return r.announcement }

// AutoMigrate creates or updates the schema for all owned tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Class{},
		&models.ClassTeacher{},
		&models.Company{},
		&models.Resume{},
		&models.Preference{},
		&models.Announcement{},
	)
}
