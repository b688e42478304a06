package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

type CompanyHandler struct {
	BaseHandler
	companies services.CompanyService
	sessions  *SessionStore
}

func NewCompanyHandler(companies services.CompanyService, sessions *SessionStore, logger utils.Logger) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler: NewBaseHandler(logger),
		companies:   companies,
		sessions:    sessions,
	}
}

func (h *CompanyHandler) Submit(c *gin.Context) {
	sess := h.sessions.Load(c)
	if !sess.Authenticated() {
		h.HandleServiceError(c, services.ErrNotAuthenticated)
		return
	}

	var req services.SubmitCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	company, err := h.companies.Submit(c.Request.Context(), sess.UserID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Company submitted for review", company)
}

func (h *CompanyHandler) Review(c *gin.Context) {
	var req services.ReviewCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	company, err := h.companies.Review(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Company reviewed", company)
}

func (h *CompanyHandler) ListPending(c *gin.Context) {
	companies, err := h.companies.ListPending(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}

func (h *CompanyHandler) ListApproved(c *gin.Context) {
	companies, err := h.companies.ListApproved(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies})
}
