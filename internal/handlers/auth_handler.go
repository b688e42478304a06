package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/models"
	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

// AuthHandler owns the login, role-confirmation, landing and logout
// endpoints. It is the only handler that mutates the session cookie.
type AuthHandler struct {
	BaseHandler
	auth     services.AuthService
	notifier services.NotificationEventService
	sessions *SessionStore
}

func NewAuthHandler(auth services.AuthService, notifier services.NotificationEventService, sessions *SessionStore, logger utils.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		auth:        auth,
		notifier:    notifier,
		sessions:    sessions,
	}
}

// Login resolves credentials. A single matching account logs in
// directly; multiple matches park the session in the ambiguous state
// and send the client to the role-confirmation page.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sess := h.sessions.Load(c)
	result, err := h.auth.Login(c.Request.Context(), sess, req.Username, req.Password)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.sessions.Save(c, sess); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to persist session", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type confirmRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// ConfirmRole completes an ambiguous login with the user's choice.
func (h *AuthHandler) ConfirmRole(c *gin.Context) {
	var req confirmRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sess := h.sessions.Load(c)
	dest, err := h.auth.ConfirmRole(c.Request.Context(), sess, req.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.sessions.Save(c, sess); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to persist session", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"redirect": dest})
}

// Index recomputes the landing destination for the current session,
// including a fresh homeroom read.
func (h *AuthHandler) Index(c *gin.Context) {
	sess := h.sessions.Load(c)
	dest, err := h.auth.ResolveIndex(c.Request.Context(), sess)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": dest})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	sess := h.sessions.Load(c)
	h.auth.Logout(sess)
	if err := h.sessions.Drop(c); err != nil {
		h.RespondWithError(c, http.StatusInternalServerError, "Failed to clear session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"redirect": services.DestLogin})
}

// GetSession exposes the current session state to the frontend.
func (h *AuthHandler) GetSession(c *gin.Context) {
	sess := h.sessions.Load(c)
	c.JSON(http.StatusOK, gin.H{
		"username":      sess.Username,
		"role":          sess.Role,
		"original_role": sess.OriginalRole,
		"pending_roles": sess.PendingRoles,
		"authenticated": sess.Authenticated(),
	})
}

// Register creates a student account. Other roles are provisioned by
// the admin endpoints only.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.auth.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.notifier.NotifyStudentRegistered(c.Request.Context(), user); err != nil {
		h.logger.Warn("student registered but notification failed",
			"user_id", user.ID, "error", err)
	}

	h.RespondWithSuccess(c, http.StatusCreated, "Registration successful", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     models.RoleStudent,
	})
}
