package utils

import (
	"log"

	"lms/database"
	courseModels "lms/models/course"

	"github.com/robfig/cron/v3"
)

// ReconcileAllCourseStats recomputes Rating/ReviewsCount for every course
// from the review table, correcting any drift left by failed requests.
func ReconcileAllCourseStats() {
	db := database.Database.Db

	var courseIDs []uint
	if err := db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Pluck("id", &courseIDs).Error; err != nil {
		log.Printf("Stats reconciliation: failed to list courses: %v", err)
		return
	}

	fixed := 0
	for _, id := range courseIDs {
		// Hold the same lock the review mutations take, or the sweep could
		// write aggregates computed from a stale review set over a fresher
		// value committed in between.
		mu := LockCourse(id)
		err := RecomputeCourseStats(db, id)
		mu.Unlock()
		if err != nil {
			log.Printf("Stats reconciliation: course %d failed: %v", id, err)
			continue
		}
		fixed++
	}

	log.Printf("Stats reconciliation completed for %d courses", fixed)
}

// InitializeStatsScheduler starts the nightly aggregate reconciliation job
func InitializeStatsScheduler() *cron.Cron {
	c := cron.New()

	// Every day at 03:00 server time
	if _, err := c.AddFunc("0 3 * * *", ReconcileAllCourseStats); err != nil {
		log.Printf("Failed to schedule stats reconciliation: %v", err)
		return c
	}

	c.Start()
	log.Println("Stats reconciliation scheduler started (daily at 03:00)")
	return c
}
