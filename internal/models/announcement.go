package models

import (
	"time"

	"gorm.io/datatypes"
)

type AnnouncementStatus string

const (
	AnnouncementDraft     AnnouncementStatus = "draft"
	AnnouncementPublished AnnouncementStatus = "published"
)

// Announcement is a platform notice shown on role home pages.
// TargetRoles is a JSON array of role strings; empty means everyone.
type Announcement struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	Title        string             `json:"title" gorm:"not null;size:200"`
	Content      string             `json:"content" gorm:"type:text"`
	CreatedBy    string             `json:"created_by" gorm:"size:100"`
	TargetRoles  datatypes.JSON     `json:"target_roles"`
	Status       AnnouncementStatus `json:"status" gorm:"not null;default:draft;size:20"`
	VisibleFrom  *time.Time         `json:"visible_from,omitempty"`
	VisibleUntil *time.Time         `json:"visible_until,omitempty"`
	IsImportant  bool               `json:"is_important" gorm:"default:false"`
	ViewCount    int                `json:"view_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
}

func (Announcement) TableName() string {
	return "notification"
}
