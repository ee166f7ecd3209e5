package certificateRoutes

import (
	controllers "certapp/controllers/certificate"
	validators "certapp/validators/certificate"

	"github.com/gofiber/fiber/v2"
)

// SetupCertificateRoutes sets up certificate issuance and lookup routes
func SetupCertificateRoutes(app *fiber.App) {
	app.Post("/certificate", validators.SaveCertificate(), controllers.SaveCertificate)
	app.Get("/certificate/:enrollmentNo", controllers.GetCertificate)
}
