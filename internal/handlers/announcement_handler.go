package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

type AnnouncementHandler struct {
	BaseHandler
	announcements services.AnnouncementService
}

func NewAnnouncementHandler(announcements services.AnnouncementService, logger utils.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:   NewBaseHandler(logger),
		announcements: announcements,
	}
}

func (h *AnnouncementHandler) ListVisible(c *gin.Context) {
	announcements, err := h.announcements.ListVisible(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"announcements": announcements})
}
