package mediaRoutes

import (
	controllers "certapp/controllers/media"

	"github.com/gofiber/fiber/v2"
)

// SetupMediaRoutes sets up the image upload route
func SetupMediaRoutes(app *fiber.App) {
	app.Post("/upload", controllers.UploadImage)
}
