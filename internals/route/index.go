package route

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"certifica_backend/internals/configs"
	certRoute "certifica_backend/internals/features/certifications/certification/route"
	ppRoute "certifica_backend/internals/features/users/profile_picture/route"
	helperOSS "certifica_backend/internals/helpers/oss"
)

// SetupRoutes wires every feature group under /api. The blob backend is
// shared: one OSS client serves both certification media and profile
// pictures, only the key prefix differs.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	var blob helperOSS.BlobService
	if svc, err := helperOSS.NewOSSBlobServiceFromEnv(configs.MediaBucketPrefix); err != nil {
		log.Printf("⚠️ OSS unavailable, media uploads will fail: %v", err)
		blob = helperOSS.UnavailableBlobService(err)
	} else {
		blob = svc
	}

	api := app.Group("/api")

	certRoute.CertificationRoutes(api, db, blob)
	ppRoute.ProfilePictureRoutes(api, db, blob)
}
