package controller

import (
	"encoding/base64"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "certifica_backend/internals/helpers"
	helperOSS "certifica_backend/internals/helpers/oss"
)

const profilePictureFolder = "profile-pictures"

type ProfilePictureController struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewProfilePictureController(db *gorm.DB, blob helperOSS.BlobService) *ProfilePictureController {
	return &ProfilePictureController{DB: db, Blob: blob}
}

type uploadProfilePictureRequest struct {
	File     string `json:"file"` // base64, data-URI prefix tolerated
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
	Folder   string `json:"folder"`
}

// UploadProfilePicture handles POST /api/users/profile-picture.
// The picture is re-encoded to a square WebP before storage, so client
// format and size are not trusted.
func (ctrl *ProfilePictureController) UploadProfilePicture(c *fiber.Ctx) error {
	var req uploadProfilePictureRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON payload")
	}
	if req.File == "" || req.FileName == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "file and fileName are required")
	}

	raw := req.File
	if i := strings.Index(raw, ";base64,"); i >= 0 {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "file is not valid base64")
	}

	webpBytes, err := helper.ConvertToWebP(data, helper.WebPOptions{
		MaxW: 512, MaxH: 512, Quality: 85, Square: 512,
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "unsupported image: "+err.Error())
	}

	folder := req.Folder
	if folder == "" {
		folder = profilePictureFolder
	}
	base := strings.TrimSuffix(helper.SanitizeFileName(req.FileName), ".webp")
	key := fmt.Sprintf("%s/%d_%s.webp", folder, time.Now().UnixNano(), base)

	if err := ctrl.Blob.Upload(c.UserContext(), key, webpBytes, "image/webp"); err != nil {
		log.Printf("profile picture upload failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to store profile picture")
	}

	return helper.JsonOK(c, fiber.Map{
		"success": true,
		"url":     ctrl.Blob.PublicURL(key),
		"path":    key,
	})
}
