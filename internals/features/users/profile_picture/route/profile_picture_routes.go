package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	ppController "certifica_backend/internals/features/users/profile_picture/controller"
	helperOSS "certifica_backend/internals/helpers/oss"
)

func ProfilePictureRoutes(api fiber.Router, db *gorm.DB, blob helperOSS.BlobService) {
	ctrl := ppController.NewProfilePictureController(db, blob)

	users := api.Group("/users")
	users.Post("/profile-picture", ctrl.UploadProfilePicture)
}
