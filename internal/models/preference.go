package models

import (
	"time"
)

// MaxPreferences caps how many ranked companies a student may submit.
const MaxPreferences = 5

// Preference is one slot of a student's ranked company list.
// Submitting replaces the whole list, so (student, order) is unique.
type Preference struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	StudentID   uint      `json:"student_id" gorm:"not null;uniqueIndex:idx_pref_student_order"`
	Order       int       `json:"preference_order" gorm:"column:preference_order;not null;uniqueIndex:idx_pref_student_order"`
	CompanyID   uint      `json:"company_id" gorm:"not null"`
	SubmittedAt time.Time `json:"submitted_at"`

	Student *User    `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Company *Company `json:"company,omitempty" gorm:"foreignKey:CompanyID"`
}

func (Preference) TableName() string {
	return "student_preferences"
}
