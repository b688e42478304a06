package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

type PreferenceHandler struct {
	BaseHandler
	preferences services.PreferenceService
	sessions    *SessionStore
}

func NewPreferenceHandler(preferences services.PreferenceService, sessions *SessionStore, logger utils.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		BaseHandler: NewBaseHandler(logger),
		preferences: preferences,
		sessions:    sessions,
	}
}

// Submit replaces the caller's ranked company list.
func (h *PreferenceHandler) Submit(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	var req services.SubmitPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.preferences.Submit(c.Request.Context(), sess.UserID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Preferences submitted", nil)
}

func (h *PreferenceHandler) ListMine(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	prefs, err := h.preferences.ListByStudent(c.Request.Context(), sess.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

// ReviewClass lists every ranked list in the caller's homeroom class.
func (h *PreferenceHandler) ReviewClass(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	grouped, err := h.preferences.ReviewClass(c.Request.Context(), sess.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"students": grouped})
}
