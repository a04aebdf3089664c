package reviewController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	reviewValidator "lms/validators/review"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SubmitReview creates a review for a course. One review per (user, course).
func SubmitReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(int)

	reqData, ok := c.Locals("validatedReview").(*reviewValidator.ReviewBody)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	mu := utils.LockCourse(course.ID)
	defer mu.Unlock()

	var existing models.Review
	if err := db.Where("course_id = ? AND user_id = ?", course.ID, userId).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You have already reviewed this course!", nil)
	}

	review := models.Review{
		CourseID: course.ID,
		UserID:   userId,
		Rating:   reqData.Rating,
		Comment:  reqData.Comment,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		if err := utils.RecomputeCourseStats(tx, course.ID); err != nil {
			return err
		}
		return tx.Model(&courseModels.Course{}).Where("id = ?", course.ID).
			Update("students_count", gorm.Expr("students_count + 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit review!", nil)
	}

	// Notify the course creator out of band
	var creator models.User
	if err := db.Where("id = ?", course.CreatorID).First(&creator).Error; err == nil {
		go utils.NotifyCreatorOfReview(creator.Email, creator.Name, course.Title, review.Rating)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Review submitted successfully!", review)
}

// EditReview updates a review. Only its author may edit it.
func EditReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reviewID := c.Locals("reviewID").(int)

	reqData, ok := c.Locals("validatedReview").(*reviewValidator.ReviewBody)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var review models.Review
	if err := db.Where("id = ?", reviewID).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only edit your own review!", nil)
	}

	mu := utils.LockCourse(review.CourseID)
	defer mu.Unlock()

	review.Rating = reqData.Rating
	review.Comment = reqData.Comment

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&review).Error; err != nil {
			return err
		}
		// Editing never touches StudentsCount
		return utils.RecomputeCourseStats(tx, review.CourseID)
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review updated successfully!", review)
}

// DeleteReview removes a review. Only its author may delete it.
func DeleteReview(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reviewID := c.Locals("reviewID").(int)

	db := database.Database.Db

	var review models.Review
	if err := db.Where("id = ?", reviewID).First(&review).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Review not found!", nil)
	}

	if review.UserID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You can only delete your own review!", nil)
	}

	mu := utils.LockCourse(review.CourseID)
	defer mu.Unlock()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&review).Error; err != nil {
			return err
		}
		if err := utils.RecomputeCourseStats(tx, review.CourseID); err != nil {
			return err
		}
		// Decrement floored at zero
		return tx.Model(&courseModels.Course{}).
			Where("id = ? AND students_count > 0", review.CourseID).
			Update("students_count", gorm.Expr("students_count - 1")).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete review!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Review deleted successfully!", nil)
}

// ListCourseReviews returns a course's reviews with author names, paginated
func ListCourseReviews(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var total int64
	db.Model(&models.Review{}).Where("course_id = ?", course.ID).Count(&total)

	var reviews []models.Review
	if err := db.Where("course_id = ?", course.ID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id, name")
		}).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch reviews!", nil)
	}

	type ReviewResponse struct {
		models.Review
		UserName string `json:"user_name"`
	}

	response := make([]ReviewResponse, 0, len(reviews))
	for _, r := range reviews {
		response = append(response, ReviewResponse{
			Review:   r,
			UserName: r.User.Name,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Reviews fetched!", fiber.Map{
		"reviews": response,
		"summary": fiber.Map{
			"rating":         course.Rating,
			"reviews_count":  course.ReviewsCount,
			"students_count": course.StudentsCount,
		},
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}
