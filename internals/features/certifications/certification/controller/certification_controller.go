package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	certDTO "certifica_backend/internals/features/certifications/certification/dto"
	"certifica_backend/internals/features/certifications/certification/service"
	helper "certifica_backend/internals/helpers"
	helperOSS "certifica_backend/internals/helpers/oss"
)

type CertificationController struct {
	DB      *gorm.DB
	Service *service.CertificationCreateService
}

func NewCertificationController(db *gorm.DB, blob helperOSS.BlobService) *CertificationController {
	return &CertificationController{
		DB:      db,
		Service: service.NewCertificationCreateService(db, blob),
	}
}

// CreateCertification handles POST /api/certifications.
//
// Two request shapes share this endpoint: application/json with optional
// base64 file payloads, and multipart/form-data with binary file parts.
// Both are normalized into the same request DTO before the workflow runs.
func (ctrl *CertificationController) CreateCertification(c *fiber.Ctx) error {
	reqID := requestID(c)

	var req *certDTO.CreateCertificationRequest
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))

	switch {
	case strings.HasPrefix(contentType, fiber.MIMEMultipartForm):
		parsed, err := certDTO.FromMultipartForm(c)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid multipart payload: "+err.Error())
		}
		req = parsed
	default:
		req = &certDTO.CreateCertificationRequest{}
		if err := c.BodyParser(req); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid JSON payload")
		}
		if err := req.Normalize(); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	result, err := ctrl.Service.Create(c.UserContext(), reqID, req)
	if err != nil {
		if wErr, ok := service.AsWorkflowError(err); ok {
			log.Printf("[%s] create failed (%d): %s", reqID, wErr.HTTPStatus(), wErr.Message)
			return helper.JsonError(c, wErr.HTTPStatus(), wErr.Message)
		}
		log.Printf("[%s] create failed: %v", reqID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return helper.JsonCreated(c, result)
}

func requestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("request_id").(string); ok && v != "" {
		return v
	}
	return "req_unknown"
}
