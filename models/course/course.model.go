package course

import "gorm.io/gorm"

// Course status values
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Course represents a marketplace course owned by one creator.
// Rating, ReviewsCount and StudentsCount are derived columns maintained by
// the review controllers; they are never written by the authoring flow.
type Course struct {
	gorm.Model
	Title        string  `json:"title"`
	Description  string  `json:"description" gorm:"type:text"`
	Price        float64 `json:"price" gorm:"default:0"`
	Status       string  `json:"status" gorm:"default:'DRAFT'"` // DRAFT, PUBLISHED, ARCHIVED
	CategoryID   uint    `json:"category_id" gorm:"index"`
	CreatorID    uint    `json:"creator_id" gorm:"index;not null"`
	ThumbnailURL string  `json:"thumbnail_url"`

	Rating        float64 `json:"rating" gorm:"default:0"`         // mean of review ratings, 1 decimal
	ReviewsCount  int64   `json:"reviews_count" gorm:"default:0"`  // count of reviews
	StudentsCount int64   `json:"students_count" gorm:"default:0"` // incremented on review create, floored decrement on delete

	IsDeleted bool `gorm:"default:false"`

	Sections []Section `json:"sections,omitempty" gorm:"foreignKey:CourseID"`
}
