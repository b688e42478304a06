package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

type ResumeHandler struct {
	BaseHandler
	resumes  services.ResumeService
	sessions *SessionStore
}

func NewResumeHandler(resumes services.ResumeService, sessions *SessionStore, logger utils.Logger) *ResumeHandler {
	return &ResumeHandler{
		BaseHandler: NewBaseHandler(logger),
		resumes:     resumes,
		sessions:    sessions,
	}
}

func (h *ResumeHandler) Upload(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	file, err := c.FormFile("resume")
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Missing resume file", err)
		return
	}

	src, err := file.Open()
	if err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Cannot read resume file", err)
		return
	}
	defer src.Close()

	resume, err := h.resumes.Upload(c.Request.Context(), sess.UserID, file.Filename, src)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Resume uploaded", resume)
}

func (h *ResumeHandler) Download(c *gin.Context) {
	resumeID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	download, err := h.resumes.Download(c.Request.Context(), resumeID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer download.Body.Close()

	c.Header("Content-Disposition", `attachment; filename="`+download.OriginalFilename+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, download.Body); err != nil {
		h.LogError(c, err, "resume download interrupted", "resume_id", resumeID)
	}
}

func (h *ResumeHandler) ListMine(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	resumes, err := h.resumes.ListByUser(c.Request.Context(), sess.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": resumes})
}

// ListClass lists the resumes of the caller's homeroom class.
func (h *ResumeHandler) ListClass(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	resumes, err := h.resumes.ListClassResumes(c.Request.Context(), sess.UserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"resumes": resumes})
}

func (h *ResumeHandler) Review(c *gin.Context) {
	var req services.ReviewResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resume, err := h.resumes.Review(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Resume reviewed", resume)
}

type updateNoteRequest struct {
	Note string `json:"note"`
}

func (h *ResumeHandler) UpdateNote(c *gin.Context) {
	resumeID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req updateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.resumes.UpdateNote(c.Request.Context(), resumeID, req.Note); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Note updated", nil)
}

func (h *ResumeHandler) Delete(c *gin.Context) {
	resumeID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.resumes.Delete(c.Request.Context(), resumeID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Resume deleted", nil)
}
