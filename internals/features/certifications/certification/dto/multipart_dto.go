package dto

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

/* =========================================================
   multipart/form-data -> CreateCertificationRequest
   Scalar certification fields come as form values, users as
   users_json (or a single id_user/id_otp pair), files as
   "files"/"file" parts with per-file is_user_media_<i> /
   user_id_<i> flags.
   ========================================================= */

func FromMultipartForm(c *fiber.Ctx) (*CreateCertificationRequest, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid multipart body")
	}

	req := &CreateCertificationRequest{}
	req.Certification = CertificationInput{
		IDCertifier:             formVal(form, "id_certifier"),
		IDLegalEntity:           formVal(form, "id_legal_entity"),
		IDLocation:              formVal(form, "id_location"),
		IDCertificationCategory: formVal(form, "id_certification_category"),
		Status:                  formVal(form, "status"),
	}
	if v := formVal(form, "n_users"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			req.Certification.NUsers = n
		}
	}
	req.Certification.DraftAt = formTime(form, "draft_at")
	req.Certification.SentAt = formTime(form, "sent_at")
	req.Certification.ClosedAt = formTime(form, "closed_at")
	req.Certification.StartTimestamp = formTime(form, "start_timestamp")
	req.Certification.EndTimestamp = formTime(form, "end_timestamp")
	if v := formVal(form, "duration_h"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			req.Certification.DurationH = &f
		}
	}

	// users: single pair fields and/or users_json
	if u, o := formVal(form, "id_user"), formVal(form, "id_otp"); u != "" && o != "" {
		entry := map[string]interface{}{"id_user": u, "id_otp": o}
		if r := formVal(form, "rejection_reason"); r != "" {
			entry["rejection_reason"] = r
		}
		req.CertificationUsers = append(req.CertificationUsers, entry)
	}
	if uj := formVal(form, "users_json"); uj != "" {
		var parsed []map[string]interface{}
		if err := json.Unmarshal([]byte(uj), &parsed); err == nil {
			req.CertificationUsers = append(req.CertificationUsers, parsed...)
		}
	}

	if mm := formVal(form, "media_metadata"); mm != "" {
		// best-effort: a malformed metadata field never fails the request
		_ = json.Unmarshal([]byte(mm), &req.MediaMetadata)
	}
	if iv := formVal(form, "certification_information_values"); iv != "" {
		_ = json.Unmarshal([]byte(iv), &req.InformationValues)
	}
	if v := formVal(form, "esito_value"); v != "" {
		req.EsitoValue = v
	}
	if v := formVal(form, "titolo_value"); v != "" {
		req.TitoloValue = v
	}

	if err := appendFormFiles(req, form); err != nil {
		return nil, err
	}
	if err := req.Normalize(); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return req, nil
}

func appendFormFiles(req *CreateCertificationRequest, form *multipart.Form) error {
	files := collectFiles(form)
	if len(files) == 0 {
		return nil
	}

	acquisitionType := formVal(form, "acquisition_type")
	if acquisitionType == "" {
		acquisitionType = "deferred"
	}
	fileTypeOverride := formVal(form, "file_type")
	capturedAt := formTime(form, "captured_at")
	description := formVal(form, "description")
	title := formVal(form, "title")
	var idLocation *string
	if v := formVal(form, "id_location_media"); v != "" {
		idLocation = &v
	}

	for i, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				fmt.Sprintf("Failed to read uploaded file %q", fh.Filename))
		}
		m := MediaInput{
			Name:            fh.Filename,
			AcquisitionType: acquisitionType,
			CapturedAt:      capturedAt,
			IDLocation:      idLocation,
			Bytes:           data,
		}
		if ct := fh.Header.Get("Content-Type"); ct != "" {
			m.MimeType = &ct
		}
		if fileTypeOverride != "" {
			ft := fileTypeOverride
			m.FileType = &ft
		}
		if description != "" {
			d := description
			m.Description = &d
		}
		if title != "" {
			t := title
			m.Title = &t
		}
		// participant-scoped attachment flags, positionally aligned
		if qbool(formVal(form, fmt.Sprintf("is_user_media_%d", i))) {
			if uid := formVal(form, fmt.Sprintf("user_id_%d", i)); uid != "" {
				m.IsUserMedia = true
				m.UserID = uid
			}
		}
		req.Media = append(req.Media, m)
	}
	return nil
}

// collectFiles gathers file parts, preferring "files" then "file".
func collectFiles(form *multipart.Form) []*multipart.FileHeader {
	if form == nil || form.File == nil {
		return nil
	}
	var out []*multipart.FileHeader
	for _, key := range []string{"files", "files[]", "file"} {
		for _, fh := range form.File[key] {
			if fh != nil && fh.Filename != "" {
				out = append(out, fh)
			}
		}
		if len(out) > 0 {
			break
		}
	}
	return out
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func formVal(form *multipart.Form, key string) string {
	if form == nil || form.Value == nil {
		return ""
	}
	if vs := form.Value[key]; len(vs) > 0 {
		return strings.TrimSpace(vs[0])
	}
	return ""
}

func formTime(form *multipart.Form, key string) *time.Time {
	v := formVal(form, key)
	if v == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil
	}
	return &t
}

func qbool(v string) bool {
	if v == "" {
		return false
	}
	return v == "1" || strings.EqualFold(v, "true")
}
