package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certController "certifica_backend/internals/features/certifications/certification/controller"
	helperOSS "certifica_backend/internals/helpers/oss"
	"certifica_backend/internals/middlewares"
)

// CertificationRoutes mounts the certification creation endpoint.
func CertificationRoutes(api fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := certController.NewCertificationController(db, blob)

	certs := api.Group("/certifications")
	certs.Post("/", middlewares.CreateCertificationRateLimiter(), ctrl.CreateCertification)
}
