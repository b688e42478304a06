package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/nfu-im/internship-service/internal/models"
)

// Event types published to the notification topic.
const (
	EventResumeReviewed    = "internship.resume.reviewed"
	EventCompanyReviewed   = "internship.company.reviewed"
	EventStudentRegistered = "internship.student.registered"
)

// NotificationEvent is the envelope for every published event.
type NotificationEvent struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

// ResumeReviewedEvent notifies a student their resume was reviewed.
type ResumeReviewedEvent struct {
	ResumeID  uint                `json:"resume_id"`
	StudentID uint                `json:"student_id"`
	Status    models.ResumeStatus `json:"status"`
	Comment   string              `json:"comment,omitempty"`
}

// CompanyReviewedEvent notifies the submitter of a review decision.
type CompanyReviewedEvent struct {
	CompanyID   uint                 `json:"company_id"`
	CompanyName string               `json:"company_name"`
	Status      models.CompanyStatus `json:"status"`
	SubmitterID uint                 `json:"submitter_id"`
}

// StudentRegisteredEvent announces a new student account.
type StudentRegisteredEvent struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

// GenerateEventID returns a unique event id.
func GenerateEventID() string {
	return watermill.NewUUID()
}

func newEvent(eventType string, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    "internship-service",
		Version:   "1.0",
		Data:      data,
	}
}

func NewResumeReviewedEvent(resumeID, studentID uint, status models.ResumeStatus, comment string) *NotificationEvent {
	return newEvent(EventResumeReviewed, ResumeReviewedEvent{
		ResumeID:  resumeID,
		StudentID: studentID,
		Status:    status,
		Comment:   comment,
	})
}

func NewCompanyReviewedEvent(companyID uint, companyName string, status models.CompanyStatus, submitterID uint) *NotificationEvent {
	return newEvent(EventCompanyReviewed, CompanyReviewedEvent{
		CompanyID:   companyID,
		CompanyName: companyName,
		Status:      status,
		SubmitterID: submitterID,
	})
}

func NewStudentRegisteredEvent(userID uint, username string) *NotificationEvent {
	return newEvent(EventStudentRegistered, StudentRegisteredEvent{
		UserID:   userID,
		Username: username,
	})
}
