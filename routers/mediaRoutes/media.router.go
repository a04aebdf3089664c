package mediaRoutes

import (
	controllers "lms/controllers/media"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupMediaRoutes registers asset upload and media resolution routes
func SetupMediaRoutes(app *fiber.App) {
	mediaGroup := app.Group("/media")

	mediaGroup.Post("/upload", middleware.JWTMiddleware, controllers.Upload)
	mediaGroup.Post("/resolve", middleware.JWTMiddleware, controllers.Resolve)
}
