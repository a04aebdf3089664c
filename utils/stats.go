package utils

import (
	"math"
	"sync"

	"lms/models"
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// Striped per-course locks serializing the read-recompute-write aggregate
// step. Review mutations and the reconciliation sweep both recompute
// Rating/ReviewsCount from the review table and would race without it.
// A fixed stripe count bounds the lock table; courses sharing a stripe
// only over-serialize.
const courseLockStripes = 64

var courseLocks [courseLockStripes]sync.Mutex

// LockCourse acquires the aggregate lock for a course and returns it.
// Callers must Unlock after their recompute transaction commits.
func LockCourse(courseID uint) *sync.Mutex {
	mu := &courseLocks[courseID%courseLockStripes]
	mu.Lock()
	return mu
}

// RecomputeCourseStats recalculates a course's Rating and ReviewsCount from
// the full current review set. Rating is the arithmetic mean rounded to one
// decimal, or 0 when the course has no reviews. StudentsCount is deliberately
// left alone; it is adjusted incrementally by the review mutations.
func RecomputeCourseStats(db *gorm.DB, courseID uint) error {
	var count int64
	if err := db.Model(&models.Review{}).Where("course_id = ?", courseID).Count(&count).Error; err != nil {
		return err
	}

	rating := 0.0
	if count > 0 {
		var sum float64
		if err := db.Model(&models.Review{}).Where("course_id = ?", courseID).
			Select("COALESCE(SUM(rating), 0)").Scan(&sum).Error; err != nil {
			return err
		}
		rating = math.Round(sum/float64(count)*10) / 10
	}

	return db.Model(&courseModels.Course{}).Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"rating":        rating,
			"reviews_count": count,
		}).Error
}
