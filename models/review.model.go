package models

import "gorm.io/gorm"

// Review is one user's rating of one course. The composite unique index
// enforces at most one review per (user, course) pair.
type Review struct {
	gorm.Model
	CourseID uint   `gorm:"not null;uniqueIndex:idx_course_user_review" json:"course_id"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_course_user_review" json:"user_id"`
	Rating   int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment  string `gorm:"type:text;default:''" json:"comment"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
