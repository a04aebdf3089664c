package courseController

import (
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	courseValidator "lms/validators/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// fetchOwnedCourse loads a live course owned by the given creator
func fetchOwnedCourse(db *gorm.DB, courseID int, userId uint) (*courseModels.Course, error) {
	var course courseModels.Course
	err := db.Where("id = ? AND creator_id = ? AND is_deleted = ?", courseID, userId, false).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// loadTree fetches the full Section/Lesson tree for a course, ordered
func loadTree(db *gorm.DB, courseID uint) ([]courseModels.Section, error) {
	var sections []courseModels.Section
	err := db.Where("course_id = ?", courseID).
		Order("position asc").
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		}).
		Find(&sections).Error
	return sections, err
}

// GetCourseTree returns the course with its full content tree
func GetCourseTree(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	course, err := fetchOwnedCourse(db, courseID, userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	sections, err := loadTree(db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course tree!", nil)
	}

	course.Sections = sections
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course tree fetched successfully!", course)
}

// resolveVideoLessons fills in provider and duration for video lessons that
// have not been resolved yet. Lookup failures never fail the save; they are
// collected as warnings for the response.
func resolveVideoLessons(db *gorm.DB, req *courseValidator.SaveTreeRequest) []string {
	var warnings []string

	for si := range req.Sections {
		for li := range req.Sections[si].Lessons {
			lesson := &req.Sections[si].Lessons[li]
			if lesson.Kind != courseModels.LessonVideo || lesson.Video == nil {
				continue
			}
			if lesson.Video.DurationMinutes > 0 && lesson.Video.Provider != "" {
				continue
			}

			var asset *models.MediaAsset
			if utils.ClassifyMediaReference(lesson.Video.MediaRef) == utils.ProviderUploadedAsset {
				ref := strings.TrimPrefix(lesson.Video.MediaRef, "/uploads/")
				var found models.MediaAsset
				if err := db.Where("(public_id = ? OR url = ?) AND is_deleted = ?",
					ref, lesson.Video.MediaRef, false).First(&found).Error; err == nil {
					asset = &found
				}
			}

			resolution := utils.ResolveMedia(lesson.Video.MediaRef, asset)
			lesson.Video.Provider = resolution.Provider
			lesson.Video.DurationMinutes = resolution.DurationMinutes
			if resolution.Warning != "" {
				warnings = append(warnings, resolution.Warning)
			}
		}
	}

	return warnings
}

// replaceCourseTree swaps the whole Section/Lesson subtree inside one
// transaction: hard-delete everything, then recreate in submission order with
// 1-based contiguous positions. Any failure rolls the replace back entirely.
func replaceCourseTree(db *gorm.DB, courseID uint, req *courseValidator.SaveTreeRequest) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&courseModels.Lesson{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("course_id = ?", courseID).Delete(&courseModels.Section{}).Error; err != nil {
			return err
		}

		for si, sectionReq := range req.Sections {
			section := courseModels.Section{
				CourseID:    courseID,
				Title:       sectionReq.Title,
				Description: sectionReq.Description,
				Order:       si + 1,
			}
			if err := tx.Create(&section).Error; err != nil {
				return err
			}

			for li, lessonReq := range sectionReq.Lessons {
				lesson := courseModels.Lesson{
					SectionID:   section.ID,
					CourseID:    courseID,
					Title:       lessonReq.Title,
					Description: lessonReq.Description,
					Order:       li + 1,
					Kind:        lessonReq.Kind,
					IsPreview:   lessonReq.IsPreview,
				}

				var payload interface{}
				switch lessonReq.Kind {
				case courseModels.LessonVideo:
					payload = lessonReq.Video
				case courseModels.LessonText:
					payload = lessonReq.Text
				case courseModels.LessonQuiz:
					payload = lessonReq.Quiz
				case courseModels.LessonAssignment:
					payload = lessonReq.Assignment
				}
				if err := lesson.SetPayload(payload); err != nil {
					return err
				}

				if err := tx.Create(&lesson).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// SaveCourseTree atomically replaces a course's content tree
func SaveCourseTree(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedTree").(*courseValidator.SaveTreeRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	course, err := fetchOwnedCourse(db, courseID, userId)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Course-level required fields must be set before content can be committed
	errors := make(map[string]string)
	if strings.TrimSpace(course.Title) == "" {
		errors["title"] = "Course title is required!"
	}
	if strings.TrimSpace(course.Description) == "" {
		errors["description"] = "Course description is required!"
	}
	if course.CategoryID == 0 {
		errors["category_id"] = "Course category is required!"
	}
	if len(errors) > 0 {
		return middleware.ValidationErrorResponse(c, errors)
	}

	// Resolve media before touching the database so lookup latency and
	// failures stay outside the transaction
	warnings := resolveVideoLessons(db, reqData)

	if err := replaceCourseTree(db, course.ID, reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save course tree!", nil)
	}

	sections, err := loadTree(db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course tree!", nil)
	}
	course.Sections = sections

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course tree saved successfully!", fiber.Map{
		"course":   course,
		"warnings": warnings,
	})
}
