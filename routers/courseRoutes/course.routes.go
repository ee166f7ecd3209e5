package courseRoutes

import (
	controllers "certapp/controllers/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up the public course routes
func SetupCourseRoutes(app *fiber.App) {
	app.Get("/activecourses", controllers.GetActiveCourses)
}
