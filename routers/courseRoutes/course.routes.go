package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCreatorCourseRoutes registers the authoring routes for creators
func SetupCreatorCourseRoutes(app *fiber.App) {
	creatorGroup := app.Group("/creator/course")

	// Course CRUD
	creatorGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	creatorGroup.Put("/:id", middleware.JWTMiddleware, validators.UpdateCourse(), controllers.UpdateCourse)
	creatorGroup.Post("/:id/status", middleware.JWTMiddleware, validators.PublishCourse(), controllers.SetCourseStatus)
	creatorGroup.Get("/list", middleware.JWTMiddleware, controllers.MyCourses)

	// Content tree (atomic wholesale replace)
	creatorGroup.Get("/:id/tree", middleware.JWTMiddleware, validators.GetTree(), controllers.GetCourseTree)
	creatorGroup.Put("/:id/tree", middleware.JWTMiddleware, validators.SaveTree(), controllers.SaveCourseTree)
}

// SetupPublicCourseRoutes registers the marketplace-facing routes
func SetupPublicCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Get("/list", validators.CourseList(), controllers.Catalog)
	courseGroup.Get("/:id", validators.CourseID(), controllers.CourseDetail)
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.Enroll)

	app.Get("/my/courses", middleware.JWTMiddleware, controllers.MyEnrollments)
}
