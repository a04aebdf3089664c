package models

import (
	"time"

	"gorm.io/gorm"
)

// Enrollment tracks a user's enrollment in a course. Note that
// Course.StudentsCount is a separate review-driven counter and is not
// derived from these rows.
type Enrollment struct {
	gorm.Model
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	CourseID    uint       `json:"course_id" gorm:"index;not null"`
	Status      string     `json:"status" gorm:"default:'ENROLLED'"` // ENROLLED, IN_PROGRESS, COMPLETED
	CompletedAt *time.Time `json:"completed_at"`
	IsDeleted   bool       `gorm:"default:false"`
}
