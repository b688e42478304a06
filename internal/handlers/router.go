package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

type HandlerManager struct {
	sessions *SessionStore

	authHandler         *AuthHandler
	userHandler         *UserHandler
	adminHandler        *AdminHandler
	companyHandler      *CompanyHandler
	preferenceHandler   *PreferenceHandler
	resumeHandler       *ResumeHandler
	announcementHandler *AnnouncementHandler
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessions *SessionStore,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		sessions:            sessions,
		authHandler:         NewAuthHandler(serviceManager.Auth(), serviceManager.NotificationEvent(), sessions, logger),
		userHandler:         NewUserHandler(serviceManager.User(), sessions, logger),
		adminHandler:        NewAdminHandler(serviceManager.Admin(), serviceManager.Export(), logger),
		companyHandler:      NewCompanyHandler(serviceManager.Company(), sessions, logger),
		preferenceHandler:   NewPreferenceHandler(serviceManager.Preference(), sessions, logger),
		resumeHandler:       NewResumeHandler(serviceManager.Resume(), sessions, logger),
		announcementHandler: NewAnnouncementHandler(serviceManager.Announcement(), logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "internship-service",
		})
	})

	authRequired := RequireAuth(hm.sessions)
	staffOnly := RequireRoles(hm.sessions, models.RoleTeacher, models.RoleDirector)
	adminOnly := RequireRoles(hm.sessions, models.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/login", hm.authHandler.Login)
			auth.POST("/confirm-role", hm.authHandler.ConfirmRole)
			auth.POST("/logout", hm.authHandler.Logout)
			auth.POST("/register", hm.authHandler.Register)
			auth.GET("/session", hm.authHandler.GetSession)
		}

		// Landing resolution
		v1.GET("/index", hm.authHandler.Index)

		// Profile routes
		profile := v1.Group("/profile", authRequired)
		{
			profile.GET("", hm.userHandler.GetProfile)
			profile.PUT("", hm.userHandler.SaveProfile)
			profile.PUT("/password", hm.userHandler.ChangePassword)
			profile.POST("/avatar", hm.userHandler.UploadAvatar)
		}

		// Company routes
		companies := v1.Group("/companies")
		{
			companies.GET("", hm.companyHandler.ListApproved)
			companies.POST("", authRequired, hm.companyHandler.Submit)
			companies.GET("/pending", staffOnly, hm.companyHandler.ListPending)
			companies.POST("/review", staffOnly, hm.companyHandler.Review)
		}

		// Preference routes
		preferences := v1.Group("/preferences", authRequired)
		{
			preferences.GET("", hm.preferenceHandler.ListMine)
			preferences.POST("", hm.preferenceHandler.Submit)
			preferences.GET("/class", staffOnly, hm.preferenceHandler.ReviewClass)
		}

		// Resume routes
		resumes := v1.Group("/resumes", authRequired)
		{
			resumes.GET("", hm.resumeHandler.ListMine)
			resumes.POST("", hm.resumeHandler.Upload)
			resumes.GET("/:id/download", hm.resumeHandler.Download)
			resumes.DELETE("/:id", hm.resumeHandler.Delete)
			resumes.GET("/class", staffOnly, hm.resumeHandler.ListClass)
			resumes.POST("/review", staffOnly, hm.resumeHandler.Review)
			resumes.PUT("/:id/note", staffOnly, hm.resumeHandler.UpdateNote)
		}

		// Announcement routes
		v1.GET("/announcements", hm.announcementHandler.ListVisible)

		// Admin routes
		admin := v1.Group("/admin", adminOnly)
		{
			admin.GET("/users", hm.adminHandler.ListUsers)
			admin.GET("/users/search", hm.adminHandler.SearchUsers)
			admin.POST("/users", hm.adminHandler.CreateUser)
			admin.PUT("/users/:id", hm.adminHandler.UpdateUser)
			admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)
			admin.PUT("/users/:id/class", hm.adminHandler.AssignStudentClass)

			admin.GET("/classes", hm.adminHandler.ListClasses)
			admin.POST("/classes/teachers", hm.adminHandler.AssignClassTeacher)
			admin.GET("/teachers/:id/classes", hm.adminHandler.ClassesByTeacher)

			admin.GET("/exports/preferences/:teacher_id", hm.adminHandler.ExportClassPreferences)
		}
	}
}
