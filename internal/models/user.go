package models

import (
	"time"
)

type UserRole string

const (
	RoleStudent  UserRole = "student"
	RoleTeacher  UserRole = "teacher"
	RoleDirector UserRole = "director"
	RoleTA       UserRole = "ta"
	RoleAdmin    UserRole = "admin"
)

// AllRoles lists every role an account row may carry.
var AllRoles = []UserRole{RoleStudent, RoleTeacher, RoleDirector, RoleTA, RoleAdmin}

// ParseRole rejects unknown role strings at the boundary so free-form
// values never reach the service layer.
func ParseRole(s string) (UserRole, bool) {
	role := UserRole(s)
	for _, r := range AllRoles {
		if role == r {
			return role, true
		}
	}
	return "", false
}

func (r UserRole) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// User is one (username, role) credential pair. The same username may
// appear on several rows, at most once per role, each with its own
// independently set password hash.
type User struct {
	ID           uint     `json:"id" gorm:"primaryKey"`
	Username     string   `json:"username" gorm:"not null;size:50;uniqueIndex:idx_users_username_role"`
	PasswordHash string   `json:"-" gorm:"column:password;not null;size:255"`
	Role         UserRole `json:"role" gorm:"not null;size:20;uniqueIndex:idx_users_username_role"`
	Name         string   `json:"name" gorm:"size:100"`
	Email        string   `json:"email" gorm:"size:255"`
	ClassID      *uint    `json:"class_id,omitempty"`

	Class *Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
