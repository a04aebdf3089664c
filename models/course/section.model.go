package course

import "gorm.io/gorm"

// Section is an ordered grouping of lessons within a course. Order is
// 1-based and contiguous; the whole Section/Lesson subtree is replaced
// wholesale on every authoring save, so rows are hard-deleted rather than
// soft-deleted.
type Section struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index:idx_course_section_order,unique;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order" gorm:"column:position;index:idx_course_section_order,unique;not null"`

	Lessons []Lesson `json:"lessons,omitempty" gorm:"foreignKey:SectionID"`
}
