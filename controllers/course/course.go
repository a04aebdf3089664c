package courseController

import (
	"strings"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// requireCreator loads the caller and checks the CREATOR (or ADMIN) role
func requireCreator(c *fiber.Ctx) (*models.User, error) {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	if user.Role != "CREATOR" && user.Role != "ADMIN" {
		return nil, middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Creator only.", nil)
	}

	return &user, nil
}

// CreateCourse creates a new draft course for the authenticated creator
func CreateCourse(c *fiber.Ctx) error {
	user, errResp := requireCreator(c)
	if user == nil {
		return errResp
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Price       float64 `json:"price"`
		CategoryID  uint    `json:"category_id"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var category models.Category
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", reqData.CategoryID, false).First(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Category not found!", nil)
	}

	course := courseModels.Course{
		Title:       strings.TrimSpace(reqData.Title),
		Description: strings.TrimSpace(reqData.Description),
		Price:       reqData.Price,
		CategoryID:  reqData.CategoryID,
		CreatorID:   user.ID,
		Status:      courseModels.StatusDraft,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates course-level fields for an owned course
func UpdateCourse(c *fiber.Ctx) error {
	user, errResp := requireCreator(c)
	if user == nil {
		return errResp
	}

	courseID := c.Locals("courseID").(int)

	course, err := fetchOwnedCourse(database.Database.Db, courseID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title        string   `json:"title"`
		Description  string   `json:"description"`
		Price        *float64 `json:"price"`
		CategoryID   uint     `json:"category_id"`
		ThumbnailURL string   `json:"thumbnail_url"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		course.Title = strings.TrimSpace(reqData.Title)
	}
	if reqData.Description != "" {
		course.Description = strings.TrimSpace(reqData.Description)
	}
	if reqData.Price != nil {
		course.Price = *reqData.Price
	}
	if reqData.CategoryID > 0 {
		course.CategoryID = reqData.CategoryID
	}
	if reqData.ThumbnailURL != "" {
		course.ThumbnailURL = reqData.ThumbnailURL
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// SetCourseStatus moves a course between DRAFT, PUBLISHED and ARCHIVED
func SetCourseStatus(c *fiber.Ctx) error {
	user, errResp := requireCreator(c)
	if user == nil {
		return errResp
	}

	courseID := c.Locals("courseID").(int)
	status := c.Locals("courseStatus").(string)

	course, err := fetchOwnedCourse(database.Database.Db, courseID, user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// A course needs content before it can go live
	if status == courseModels.StatusPublished {
		var sectionCount int64
		database.Database.Db.Model(&courseModels.Section{}).Where("course_id = ?", course.ID).Count(&sectionCount)
		if sectionCount == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course must have at least one section before publishing!", nil)
		}
	}

	course.Status = status
	if err := database.Database.Db.Save(course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course status updated successfully!", course)
}

// MyCourses lists all courses owned by the authenticated creator
func MyCourses(c *fiber.Ctx) error {
	user, errResp := requireCreator(c)
	if user == nil {
		return errResp
	}

	var courses []courseModels.Course
	if err := database.Database.Db.Where("creator_id = ? AND is_deleted = ?", user.ID, false).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// Catalog lists published courses for the public marketplace
func Catalog(c *fiber.Ctx) error {
	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("status = ? AND is_deleted = ?", courseModels.StatusPublished, false)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("rating desc, created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// CourseDetail returns one published course with its preview structure
func CourseDetail(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND status = ? AND is_deleted = ?",
		courseID, courseModels.StatusPublished, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	sections, err := loadTree(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	// Strip non-preview lesson payloads for unenrolled visitors
	for si := range sections {
		for li := range sections[si].Lessons {
			if !sections[si].Lessons[li].IsPreview {
				sections[si].Lessons[li].Payload = nil
			}
		}
	}
	course.Sections = sections

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}
