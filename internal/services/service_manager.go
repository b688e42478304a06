package services

import (
	"log/slog"

	"github.com/nfu-im/internship-service/internal/cache"
	"github.com/nfu-im/internship-service/internal/events"
	"github.com/nfu-im/internship-service/internal/repositories"
	"github.com/nfu-im/internship-service/internal/storage"
	"github.com/nfu-im/internship-service/internal/validator"
)

// ServiceManager bundles every service behind one constructor so the
// wiring in main stays flat.
type ServiceManager interface {
	Auth() AuthService
	User() UserService
	Admin() AdminService
	Company() CompanyService
	Resume() ResumeService
	Preference() PreferenceService
	Announcement() AnnouncementService
	Export() ExportService
	NotificationEvent() NotificationEventService
}

type serviceManager struct {
	auth              AuthService
	user              UserService
	admin             AdminService
	company           CompanyService
	resume            ResumeService
	preference        PreferenceService
	announcement      AnnouncementService
	export            ExportService
	notificationEvent NotificationEventService
}

func NewServiceManager(
	repo repositories.Repository,
	files storage.FileStore,
	cacheService cache.CacheService,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) ServiceManager {
	notifier := NewNotificationEventService(publisher, logger)
	preference := NewPreferenceService(repo, logger)

	return &serviceManager{
		auth:              NewAuthService(repo, logger, validator),
		user:              NewUserService(repo, files, logger, validator),
		admin:             NewAdminService(repo, logger, validator),
		company:           NewCompanyService(repo, notifier, logger, validator),
		resume:            NewResumeService(repo, files, notifier, logger),
		preference:        preference,
		announcement:      NewAnnouncementService(repo, cacheService, logger),
		export:            NewExportService(preference, logger),
		notificationEvent: notifier,
	}
}

func (m *serviceManager) Auth() AuthService                        { return m.auth }
func (m *serviceManager) User() UserService                        { return m.user }
func (m *serviceManager) Admin() AdminService                      { return m.admin }
func (m *serviceManager) Company() CompanyService                  { return m.company }
func (m *serviceManager) Resume() ResumeService                    { return m.resume }
func (m *serviceManager) Preference() PreferenceService            { return m.preference }
func (m *serviceManager) Announcement() AnnouncementService        { return m.announcement }
func (m *serviceManager) Export() ExportService                    { return m.export }
func (m *serviceManager) NotificationEvent() NotificationEventService {
	return m.notificationEvent
}
