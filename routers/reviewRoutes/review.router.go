package reviewRoutes

import (
	controllers "lms/controllers/review"
	"lms/middleware"
	validators "lms/validators/review"

	"github.com/gofiber/fiber/v2"
)

// SetupReviewRoutes registers review routes
func SetupReviewRoutes(app *fiber.App) {
	app.Post("/course/:id/review", middleware.JWTMiddleware, validators.SubmitReview(), controllers.SubmitReview)
	app.Get("/course/:id/reviews", validators.ListReviews(), controllers.ListCourseReviews)

	reviewGroup := app.Group("/review")
	reviewGroup.Put("/:id", middleware.JWTMiddleware, validators.EditReview(), controllers.EditReview)
	reviewGroup.Delete("/:id", middleware.JWTMiddleware, validators.ReviewID(), controllers.DeleteReview)
}
