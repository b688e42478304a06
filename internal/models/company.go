package models

import (
	"time"
)

type CompanyStatus string

const (
	CompanyPending  CompanyStatus = "pending"
	CompanyApproved CompanyStatus = "approved"
	CompanyRejected CompanyStatus = "rejected"
)

// Company is an internship provider submitted for review. Students can
// only rank approved companies in their preferences.
type Company struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	CompanyName   string        `json:"company_name" gorm:"not null;size:200"`
	Description   string        `json:"description" gorm:"type:text"`
	Location      string        `json:"location" gorm:"size:200"`
	ContactPerson string        `json:"contact_person" gorm:"size:100"`
	ContactEmail  string        `json:"contact_email" gorm:"size:255"`
	ContactPhone  string        `json:"contact_phone" gorm:"size:50"`
	UploadedBy    uint          `json:"uploaded_by_user_id" gorm:"column:uploaded_by_user_id;not null"`
	Status        CompanyStatus `json:"status" gorm:"not null;default:pending;size:20"`
	SubmittedAt   time.Time     `json:"submitted_at"`
	ReviewedAt    *time.Time    `json:"reviewed_at,omitempty"`
}

func (Company) TableName() string {
	return "internship_companies"
}
