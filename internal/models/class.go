package models

import (
	"time"
)

// AssignmentKind tags a teacher-to-class assignment. Only the homeroom
// kind influences login routing; other kinds are instructional roles.
type AssignmentKind string

const (
	AssignmentHomeroom   AssignmentKind = "homeroom"
	AssignmentInstructor AssignmentKind = "instructor"
)

type Class struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null;size:50"`
	Department string `json:"department" gorm:"size:100"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassTeacher relates a teacher or director account to a class. The
// unique index makes duplicate assignment of the same kind fail at the
// database instead of relying on a check-then-insert read.
type ClassTeacher struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ClassID   uint           `json:"class_id" gorm:"not null;uniqueIndex:idx_class_teacher_kind"`
	TeacherID uint           `json:"teacher_id" gorm:"not null;uniqueIndex:idx_class_teacher_kind"`
	Kind      AssignmentKind `json:"kind" gorm:"column:role;not null;size:20;uniqueIndex:idx_class_teacher_kind"`

	Class   *Class `json:"class,omitempty" gorm:"foreignKey:ClassID"`
	Teacher *User  `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`

	CreatedAt time.Time `json:"created_at"`
}

func (ClassTeacher) TableName() string {
	return "classes_teacher"
}
