package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nfu-im/internship-service/internal/repositories"
	"github.com/nfu-im/internship-service/internal/services"
	"github.com/nfu-im/internship-service/internal/utils"
)

// AdminHandler serves account and class administration. Every route in
// here sits behind the admin role middleware.
type AdminHandler struct {
	BaseHandler
	admin  services.AdminService
	export services.ExportService
}

func NewAdminHandler(admin services.AdminService, export services.ExportService, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		admin:       admin,
		export:      export,
	}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) SearchUsers(c *gin.Context) {
	filters := repositories.UserFilters{
		Username:       c.Query("username"),
		ResumeFilename: c.Query("resume_filename"),
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		filters.Limit = limit
	}
	if offset, err := strconv.Atoi(c.Query("offset")); err == nil {
		filters.Offset = offset
	}
	users, err := h.admin.SearchUsers(c.Request.Context(), filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	user, err := h.admin.CreateUser(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "User created", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	userID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.admin.UpdateUser(c.Request.Context(), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "User updated", nil)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	userID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "User deleted", nil)
}

type assignStudentClassRequest struct {
	ClassID uint `json:"class_id" binding:"required"`
}

func (h *AdminHandler) AssignStudentClass(c *gin.Context) {
	userID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	var req assignStudentClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.admin.AssignStudentClass(c.Request.Context(), userID, req.ClassID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "Class assigned", nil)
}

func (h *AdminHandler) AssignClassTeacher(c *gin.Context) {
	var req services.AssignClassTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if err := h.admin.AssignClassTeacher(c.Request.Context(), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Teacher assigned to class", nil)
}

func (h *AdminHandler) ListClasses(c *gin.Context) {
	classes, err := h.admin.ListClasses(c.Request.Context())
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *AdminHandler) ClassesByTeacher(c *gin.Context) {
	teacherID, ok := ParseIDParam(c, "id")
	if !ok {
		return
	}

	classes, err := h.admin.ClassesByTeacher(c.Request.Context(), teacherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

// ExportClassPreferences streams the preference rankings of a homeroom
// class as an Excel workbook.
func (h *AdminHandler) ExportClassPreferences(c *gin.Context) {
	teacherID, ok := ParseIDParam(c, "teacher_id")
	if !ok {
		return
	}

	buf, err := h.export.ExportClassPreferences(c.Request.Context(), teacherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("class_preferences_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
