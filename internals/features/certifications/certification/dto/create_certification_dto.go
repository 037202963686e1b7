package dto

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

/* =========================================================
   CREATE CERTIFICATION - canonical request
   Both the JSON body and the multipart form are normalized
   into this one shape before the workflow ever sees them.
   ========================================================= */

type CreateCertificationRequest struct {
	Certification      CertificationInput       `json:"certification"`
	CertificationUsers []map[string]interface{} `json:"certification_users"`
	// Legacy alias still sent by older app builds.
	Users []map[string]interface{} `json:"users"`

	Media             []MediaInput            `json:"media"`
	MediaMetadata     []MediaMetadataInput    `json:"media_metadata"`
	InformationValues []InformationValueInput `json:"certification_information_values"`

	// Named-information shortcuts (resolved against the catalog by name).
	EsitoValue  interface{} `json:"esito_value"`
	TitoloValue interface{} `json:"titolo_value"`

	// Filled by Normalize().
	Participants []ParticipantInput `json:"-"`
}

type CertificationInput struct {
	IDCertifier             string     `json:"id_certifier" validate:"required"`
	IDLegalEntity           string     `json:"id_legal_entity" validate:"required"`
	IDLocation              string     `json:"id_location" validate:"required"`
	NUsers                  int        `json:"n_users" validate:"required"`
	IDCertificationCategory string     `json:"id_certification_category" validate:"required"`
	Status                  string     `json:"status"`
	DraftAt                 *time.Time `json:"draft_at"`
	SentAt                  *time.Time `json:"sent_at"`
	ClosedAt                *time.Time `json:"closed_at"`
	DurationH               *float64   `json:"duration_h"`
	StartTimestamp          *time.Time `json:"start_timestamp"`
	EndTimestamp            *time.Time `json:"end_timestamp"`
}

type ParticipantInput struct {
	IDUser          string
	IDOtp           string
	Status          string
	RejectionReason *string
	DurationH       *float64
	StartTimestamp  *time.Time
	EndTimestamp    *time.Time
}

// PairKey identifies a (user, otp) pair for dedup and idempotency checks.
func (p ParticipantInput) PairKey() string { return p.IDUser + "::" + p.IDOtp }

type MediaInput struct {
	IDMediaHash     *string    `json:"id_media_hash"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Title           *string    `json:"title"`
	AcquisitionType string     `json:"acquisition_type"`
	CapturedAt      *time.Time `json:"captured_at"`
	IDLocation      *string    `json:"id_location"`
	FileType        *string    `json:"file_type"`
	FileData        *string    `json:"file_data"` // base64
	MimeType        *string    `json:"mime_type"`

	// Filled at the parsing boundary, never from the wire directly.
	Bytes       []byte `json:"-"`
	IsUserMedia bool   `json:"-"`
	UserID      string `json:"-"`
}

type MediaMetadataInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

type InformationValueInput struct {
	IDCertificationInformation string      `json:"id_certification_information"`
	Value                      interface{} `json:"value"`
	IDCertificationUser        *string     `json:"id_certification_user"`
}

/* =========================================================
   Normalization
   ========================================================= */

// PickUserOtp maps the accepted spellings of the user/otp references
// (id_user, user_id, idUser, userId, nested user.id - same for otp) onto
// canonical fields. Returns nil when either reference is missing.
func PickUserOtp(m map[string]interface{}) *ParticipantInput {
	if m == nil {
		return nil
	}
	idUser := pickRef(m, "id_user", "user_id", "idUser", "userId", "user")
	idOtp := pickRef(m, "id_otp", "otp_id", "idOtp", "otpId", "otp")
	if idUser == "" || idOtp == "" {
		return nil
	}
	p := &ParticipantInput{
		IDUser: idUser,
		IDOtp:  idOtp,
		Status: "pending",
	}
	if s, ok := m["status"].(string); ok && s != "" {
		p.Status = s
	}
	if r, ok := m["rejection_reason"].(string); ok && r != "" {
		p.RejectionReason = &r
	}
	if d, ok := toFloat(m["duration_h"]); ok {
		p.DurationH = &d
	}
	if t, ok := toTime(m["start_timestamp"]); ok {
		p.StartTimestamp = &t
	}
	if t, ok := toTime(m["end_timestamp"]); ok {
		p.EndTimestamp = &t
	}
	return p
}

func pickRef(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]interface{}:
			// nested object form: {"user": {"id": "..."}}
			if id, ok := v["id"].(string); ok && id != "" {
				return id
			}
		}
	}
	return ""
}

func toFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case string:
		if f, err := strconv.ParseFloat(x, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func toTime(v interface{}) (time.Time, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StringValue renders a loosely-typed wire value ("3", 3, 3.0, true) as the
// string stored in certification_information_value.
func StringValue(v interface{}) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, true
	case float64:
		if x == float64(int64(x)) {
			return strconv.FormatInt(int64(x), 10), true
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return fmt.Sprintf("%v", x), true
	}
}

// Normalize folds the legacy users alias into certification_users, maps
// every entry through PickUserOtp, dedups (user, otp) pairs and decodes
// inline base64 media bytes. Call once, right after parsing.
func (r *CreateCertificationRequest) Normalize() error {
	raw := r.CertificationUsers
	if len(raw) == 0 {
		raw = r.Users
	}

	seen := map[string]bool{}
	r.Participants = r.Participants[:0]
	for _, m := range raw {
		p := PickUserOtp(m)
		if p == nil {
			continue
		}
		if seen[p.PairKey()] {
			continue
		}
		seen[p.PairKey()] = true
		r.Participants = append(r.Participants, *p)
	}

	for i := range r.Media {
		m := &r.Media[i]
		m.Name = strings.TrimSpace(m.Name)
		if m.AcquisitionType == "" {
			m.AcquisitionType = "realtime"
		}
		if m.FileData != nil && len(m.Bytes) == 0 {
			b, err := base64.StdEncoding.DecodeString(*m.FileData)
			if err != nil {
				return fmt.Errorf("media[%d]: invalid base64 file_data: %w", i, err)
			}
			m.Bytes = b
			m.FileData = nil
		}
	}
	return nil
}
