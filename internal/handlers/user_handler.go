package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

// UserHandler serves the profile endpoints of the account active in
// the session.
type UserHandler struct {
	BaseHandler
	users    services.UserService
	sessions *SessionStore
}

func NewUserHandler(users services.UserService, sessions *SessionStore, logger utils.Logger) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		users:       users,
		sessions:    sessions,
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() || sess.Role == "" {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	profile, err := h.users.GetProfile(c.Request.Context(), sess.Username, sess.Role)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) SaveProfile(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() || sess.Role == "" {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	var req services.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	// The profile page only edits the caller's own account.
	req.Username = sess.Username
	req.Role = string(sess.Role)

	if err := h.users.SaveProfile(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Profile saved", nil)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.users.ChangePassword(c.Request.Context(), sess.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Password changed", nil)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing avatar file", err)
		return
	}

	src, err := file.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot read avatar file", err)
		return
	}
	defer src.Close()

	path, err := h.users.UploadAvatar(c.Request.Context(), sess.UserID, file.Filename, src)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Avatar uploaded", gin.H{"path": path})
}
