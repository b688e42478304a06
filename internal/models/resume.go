package models

import (
	"time"
)

type ResumeStatus string

const (
	ResumePending  ResumeStatus = "pending"
	ResumeApproved ResumeStatus = "approved"
	ResumeRejected ResumeStatus = "rejected"
)

// Resume is the metadata row for an uploaded resume file. The file body
// lives in the path-based file store; Filepath is the only link.
type Resume struct {
	ID               uint         `json:"id" gorm:"primaryKey"`
	UserID           uint         `json:"user_id" gorm:"not null;index"`
	OriginalFilename string       `json:"original_filename" gorm:"not null;size:255"`
	Filepath         string       `json:"-" gorm:"not null;size:500"`
	Filesize         int64        `json:"filesize"`
	Status           ResumeStatus `json:"status" gorm:"not null;default:pending;size:20"`
	Comment          string       `json:"comment" gorm:"type:text"`
	Note             string       `json:"note" gorm:"type:text"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Resume) TableName() string {
	return "resumes"
}
