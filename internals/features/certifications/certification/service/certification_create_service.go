package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	certDTO "certifica_backend/internals/features/certifications/certification/dto"
	certModel "certifica_backend/internals/features/certifications/certification/model"
	infoModel "certifica_backend/internals/features/certifications/information/model"
	identityModel "certifica_backend/internals/features/identity/model"
	helper "certifica_backend/internals/helpers"
	helperOSS "certifica_backend/internals/helpers/oss"

	"certifica_backend/internals/constants"
)

/*
CertificationCreateService drives the whole creation pipeline:

  shape validation -> FK prechecks -> certifier ensure -> certification
  insert -> participants + OTP claim -> media -> information values

The store gives no cross-table transaction here (PgBouncer transaction
pooling), so consistency is kept with explicit compensation: every
durable row pushes an undo onto a stack that is unwound in reverse order
when a later stage fails. The single exception is the OTP claim, which
is permanent once it succeeds.
*/

// failPolicy names how a stage reacts to a single failed item.
type failPolicy int

const (
	failStrict  failPolicy = iota // abort the stage and compensate everything
	failLenient                   // log, skip the item, keep going
)

// Pinned per-stage policies (behavior of the original flows).
const (
	participantsPolicy = failStrict
	mediaPolicy        = failStrict
	informationPolicy  = failLenient
)

var validate = validator.New()

type CertificationCreateService struct {
	DB   *gorm.DB
	Blob helperOSS.BlobService
}

func NewCertificationCreateService(db *gorm.DB, blob helperOSS.BlobService) *CertificationCreateService {
	return &CertificationCreateService{DB: db, Blob: blob}
}

// CreateResult is the 201 payload: the certification row spread at the
// top level plus the dependent rows created in this run.
type CreateResult struct {
	certModel.CertificationModel
	CertificationUsers []certModel.CertificationUserModel             `json:"certification_users"`
	Media              []certModel.CertificationMediaModel            `json:"media"`
	InformationValues  []infoModel.CertificationInformationValueModel `json:"certification_information_values"`
}

func (s *CertificationCreateService) Create(ctx context.Context, reqID string, req *certDTO.CreateCertificationRequest) (*CreateResult, error) {
	// ---- Stage 1: shape validation (no side effects) ----
	if err := validate.Struct(&req.Certification); err != nil {
		return nil, validationErr("Missing required fields in certification")
	}
	certifierID, err := uuid.Parse(req.Certification.IDCertifier)
	if err != nil {
		return nil, validationErr("Invalid id_certifier")
	}
	legalEntityID, err := uuid.Parse(req.Certification.IDLegalEntity)
	if err != nil {
		return nil, validationErr("Invalid id_legal_entity")
	}
	locationID, err := uuid.Parse(req.Certification.IDLocation)
	if err != nil {
		return nil, validationErr("Invalid id_location")
	}
	categoryID, err := uuid.Parse(req.Certification.IDCertificationCategory)
	if err != nil {
		return nil, validationErr("Invalid id_certification_category")
	}

	// ---- Stage 2: FK prechecks, in parallel, before any write ----
	if err := s.precheckRefs(ctx, legalEntityID, locationID, categoryID); err != nil {
		return nil, err
	}
	log.Printf("[%s] FK prechecks OK", reqID)

	// ---- Stage 3: certifier ensure (get-then-insert, safely retryable) ----
	if err := s.ensureCertifier(ctx, reqID, certifierID, legalEntityID); err != nil {
		return nil, err
	}

	comp := newCompensator(reqID)

	// ---- Stage 4: certification insert ----
	cert, err := s.insertCertification(ctx, req, certifierID, legalEntityID, locationID, categoryID)
	if err != nil {
		return nil, err
	}
	comp.Push("certification row", func() error {
		return s.DB.Delete(&certModel.CertificationModel{}, "id_certification = ?", cert.IDCertification).Error
	})
	log.Printf("[%s] certification created: %s", reqID, cert.IDCertification)

	result := &CreateResult{
		CertificationModel: *cert,
		CertificationUsers: []certModel.CertificationUserModel{},
		Media:              []certModel.CertificationMediaModel{},
		InformationValues:  []infoModel.CertificationInformationValueModel{},
	}

	// ---- Stage 5: participants & OTP claim ----
	if len(req.Participants) > 0 {
		cuRows, err := s.processParticipants(ctx, reqID, cert, req.Participants)
		if err != nil {
			comp.Unwind()
			return nil, err
		}
		comp.Push("certification_user rows", func() error {
			return s.DB.Delete(&certModel.CertificationUserModel{}, "id_certification = ?", cert.IDCertification).Error
		})
		result.CertificationUsers = cuRows
	}

	// ---- Stage 6: media ----
	if len(req.Media) > 0 {
		comp.Push("certification_media rows", func() error {
			return s.DB.Delete(&certModel.CertificationMediaModel{}, "id_certification = ?", cert.IDCertification).Error
		})
		comp.Push("certification_has_media rows", func() error {
			return s.DB.Delete(&certModel.CertificationHasMediaModel{}, "id_certification = ?", cert.IDCertification).Error
		})
		mediaRows, err := s.processMedia(ctx, reqID, cert, req, result.CertificationUsers)
		if err != nil {
			comp.Unwind()
			return nil, err
		}
		result.Media = mediaRows
	}

	// ---- Stage 7: information values ----
	values, err := s.processInformationValues(ctx, reqID, cert, legalEntityID, req, result.CertificationUsers)
	if err != nil {
		comp.Unwind()
		return nil, err
	}
	result.InformationValues = values

	// ---- Stage 8: done ----
	log.Printf("[%s] SUCCESS certification=%s users=%d media=%d values=%d",
		reqID, cert.IDCertification, len(result.CertificationUsers), len(result.Media), len(result.InformationValues))
	return result, nil
}

/* =========================================================
   Stage 2 - FK prechecks
   ========================================================= */

func (s *CertificationCreateService) precheckRefs(ctx context.Context, legalEntityID, locationID, categoryID uuid.UUID) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var m identityModel.LegalEntityModel
		return s.refExists(gctx, &m, "id_legal_entity = ?", legalEntityID, "id_legal_entity")
	})
	g.Go(func() error {
		var m identityModel.LocationModel
		return s.refExists(gctx, &m, "id_location = ?", locationID, "id_location")
	})
	g.Go(func() error {
		var m identityModel.CertificationCategoryModel
		return s.refExists(gctx, &m, "id_certification_category = ?", categoryID, "id_certification_category")
	})
	return g.Wait()
}

func (s *CertificationCreateService) refExists(ctx context.Context, dest interface{}, cond string, id uuid.UUID, label string) error {
	err := s.DB.WithContext(ctx).First(dest, cond, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return refNotFound(fmt.Sprintf("Invalid %s: not found", label))
	}
	if err != nil {
		return internalErr(fmt.Sprintf("%s precheck failed", label), err)
	}
	return nil
}

/* =========================================================
   Stage 3 - certifier ensure
   ========================================================= */

func (s *CertificationCreateService) ensureCertifier(ctx context.Context, reqID string, certifierID, legalEntityID uuid.UUID) error {
	var certifier identityModel.CertifierModel
	err := s.DB.WithContext(ctx).First(&certifier, "id_certifier = ?", certifierID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return internalErr("Certifier precheck failed", err)
	}

	log.Printf("[%s] certifier %s not found, provisioning", reqID, certifierID)
	row := identityModel.CertifierModel{
		IDCertifier:     certifierID,
		IDCertifierHash: uuid.NewString(),
		IDLegalEntity:   legalEntityID,
		Active:          true,
		Role:            "Certificatore",
	}
	if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
		return persistenceErr("Failed to create certifier: "+err.Error(), err)
	}
	return nil
}

/* =========================================================
   Stage 4 - certification insert
   ========================================================= */

func (s *CertificationCreateService) insertCertification(ctx context.Context, req *certDTO.CreateCertificationRequest, certifierID, legalEntityID, locationID, categoryID uuid.UUID) (*certModel.CertificationModel, error) {
	now := time.Now().UTC()
	in := req.Certification

	cert := certModel.CertificationModel{
		IDCertifier:             certifierID,
		IDLegalEntity:           legalEntityID,
		IDLocation:              locationID,
		IDCertificationCategory: categoryID,
		NUsers:                  in.NUsers,
		Status:                  in.Status,
		DraftAt:                 now,
		SentAt:                  now,
		ClosedAt:                in.ClosedAt,
		DurationH:               in.DurationH,
		StartTimestamp:          in.StartTimestamp,
		EndTimestamp:            in.EndTimestamp,
	}
	if cert.Status == "" {
		cert.Status = certModel.StatusSent
	}
	if in.DraftAt != nil {
		cert.DraftAt = *in.DraftAt
	}
	if in.SentAt != nil {
		cert.SentAt = *in.SentAt
	}

	if err := s.DB.WithContext(ctx).Create(&cert).Error; err != nil {
		return nil, persistenceErr(err.Error(), err)
	}
	return &cert, nil
}

/* =========================================================
   Stage 5 - participants & OTP claim
   ========================================================= */

func (s *CertificationCreateService) processParticipants(ctx context.Context, reqID string, cert *certModel.CertificationModel, participants []certDTO.ParticipantInput) ([]certModel.CertificationUserModel, error) {
	userIDs := make([]uuid.UUID, 0, len(participants))
	otpIDs := make([]uuid.UUID, 0, len(participants))
	seenUser := map[uuid.UUID]bool{}
	seenOtp := map[uuid.UUID]bool{}
	for _, p := range participants {
		uid, err := uuid.Parse(p.IDUser)
		if err != nil {
			return nil, refNotFound("Invalid id_user or id_otp in certification_users")
		}
		oid, err := uuid.Parse(p.IDOtp)
		if err != nil {
			return nil, refNotFound("Invalid id_user or id_otp in certification_users")
		}
		if !seenUser[uid] {
			seenUser[uid] = true
			userIDs = append(userIDs, uid)
		}
		if !seenOtp[oid] {
			seenOtp[oid] = true
			otpIDs = append(otpIDs, oid)
		}
	}

	// batch existence checks, issued together
	var (
		users []identityModel.UserModel
		otps  []identityModel.OtpModel
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.DB.WithContext(gctx).Where(`"idUser" IN ?`, userIDs).Find(&users).Error
	})
	g.Go(func() error {
		return s.DB.WithContext(gctx).Where("id_otp IN ?", otpIDs).Find(&otps).Error
	})
	if err := g.Wait(); err != nil {
		return nil, persistenceErr("FK check failed: "+err.Error(), err)
	}

	okUsers := map[uuid.UUID]bool{}
	for _, u := range users {
		okUsers[u.IDUser] = true
	}
	okOtps := map[uuid.UUID]bool{}
	for _, o := range otps {
		okOtps[o.IDOtp] = true
	}
	for _, p := range participants {
		uid, _ := uuid.Parse(p.IDUser)
		oid, _ := uuid.Parse(p.IDOtp)
		if !okUsers[uid] || !okOtps[oid] {
			return nil, refNotFound("Invalid id_user or id_otp in certification_users")
		}
	}

	// OTP claim: one conditional update per distinct OTP. Only existence
	// is checked above; availability is decided by the compare-and-set
	// itself, so a burned or already-used OTP surfaces as a claim
	// conflict, same as losing a race.
	if err := s.claimOtps(ctx, reqID, cert, participants); err != nil {
		return nil, err
	}

	// idempotent re-entry: pairs already recorded for this certification
	// are treated as applied, not duplicated
	var existing []certModel.CertificationUserModel
	if err := s.DB.WithContext(ctx).
		Where("id_certification = ?", cert.IDCertification).
		Find(&existing).Error; err != nil {
		return nil, persistenceErr("Failed to check existing certification_user: "+err.Error(), err)
	}
	existingPairs := map[string]bool{}
	for _, r := range existing {
		existingPairs[r.IDUser.String()+"::"+r.IDOtp.String()] = true
	}

	toInsert := make([]certModel.CertificationUserModel, 0, len(participants))
	for _, p := range participants {
		if existingPairs[p.PairKey()] {
			continue
		}
		existingPairs[p.PairKey()] = true
		uid, _ := uuid.Parse(p.IDUser)
		oid, _ := uuid.Parse(p.IDOtp)
		row := certModel.CertificationUserModel{
			IDCertification: cert.IDCertification,
			IDUser:          uid,
			IDOtp:           oid,
			Status:          p.Status,
			RejectionReason: p.RejectionReason,
			DurationH:       p.DurationH,
			StartTimestamp:  p.StartTimestamp,
			EndTimestamp:    p.EndTimestamp,
		}
		if row.Status == "" {
			row.Status = certModel.UserStatusPending
		}
		toInsert = append(toInsert, row)
	}
	if len(toInsert) > 0 {
		if err := s.DB.WithContext(ctx).Create(&toInsert).Error; err != nil {
			if !isDuplicateErr(err) {
				return nil, persistenceErr("Failed to insert certification_user: "+err.Error(), err)
			}
			// a concurrent retry won the batch; re-insert row by row,
			// skipping the pairs it already recorded
			kept := toInsert[:0]
			for i := range toInsert {
				if err := s.DB.WithContext(ctx).Create(&toInsert[i]).Error; err != nil {
					if isDuplicateErr(err) {
						continue
					}
					return nil, persistenceErr("Failed to insert certification_user: "+err.Error(), err)
				}
				kept = append(kept, toInsert[i])
			}
			toInsert = kept
		}
	}

	rows := append(existing, toInsert...)
	log.Printf("[%s] participants OK rows=%d (reused=%d)", reqID, len(rows), len(existing))
	return rows, nil
}

func (s *CertificationCreateService) claimOtps(ctx context.Context, reqID string, cert *certModel.CertificationModel, participants []certDTO.ParticipantInput) error {
	claimed := map[string]bool{}
	now := time.Now().UTC()
	for _, p := range participants {
		if claimed[p.IDOtp] {
			continue
		}
		claimed[p.IDOtp] = true

		res := s.DB.WithContext(ctx).
			Model(&identityModel.OtpModel{}).
			Where("id_otp = ? AND used_at IS NULL AND burned_at IS NULL", p.IDOtp).
			Updates(map[string]interface{}{
				"used_at":         now,
				"burned_at":       now,
				"used_by_id_user": p.IDUser,
				"id_legal_entity": cert.IDLegalEntity,
			})
		if res.Error != nil {
			return persistenceErr(fmt.Sprintf("Failed to claim OTP %s: %v", p.IDOtp, res.Error), res.Error)
		}
		if res.RowsAffected != 1 {
			return conflictErr(fmt.Sprintf("OTP %s could not be claimed (race or unavailable)", p.IDOtp))
		}
		log.Printf("[%s] OTP claimed: %s -> user %s", reqID, p.IDOtp, p.IDUser)
	}
	return nil
}

/* =========================================================
   Stage 6 - media
   ========================================================= */

func (s *CertificationCreateService) processMedia(ctx context.Context, reqID string, cert *certModel.CertificationModel, req *certDTO.CreateCertificationRequest, cuRows []certModel.CertificationUserModel) ([]certModel.CertificationMediaModel, error) {
	cuByUser := map[string]uuid.UUID{}
	for _, cu := range cuRows {
		cuByUser[cu.IDUser.String()] = cu.IDCertificationUser
	}

	now := time.Now().UTC()
	rows := make([]certModel.CertificationMediaModel, 0, len(req.Media))
	for i := range req.Media {
		m := &req.Media[i]

		hash := ""
		if m.IDMediaHash != nil && strings.TrimSpace(*m.IDMediaHash) != "" {
			hash = strings.TrimSpace(*m.IDMediaHash)
		} else if len(m.Bytes) > 0 {
			sum := sha256.Sum256(m.Bytes)
			hash = hex.EncodeToString(sum[:])
		} else {
			hash = uuid.NewString()
		}

		contentType := "application/octet-stream"
		if m.MimeType != nil && *m.MimeType != "" {
			contentType = *m.MimeType
		}

		// upload only when bytes are present; duplicate content for the
		// same key is tolerated by the blob facade
		var storedName *string
		if len(m.Bytes) > 0 {
			key := helper.MediaObjectKey(cert.IDCertification.String(), hash, m.Name)
			if err := s.Blob.Upload(ctx, key, m.Bytes, contentType); err != nil {
				return nil, persistenceErr("Failed to process media: "+err.Error(), err)
			}
			storedName = &key
		} else if m.Name != "" {
			n := m.Name
			storedName = &n
		}

		var fileType *string
		if m.FileType != nil && constants.IsValidFileType(*m.FileType) {
			fileType = m.FileType
		} else if ft := constants.DetectFileType(contentType, m.Name); ft != "" {
			fileType = &ft
		}

		description := m.Description
		title := m.Title
		if i < len(req.MediaMetadata) {
			meta := req.MediaMetadata[i]
			if meta.Description != nil && *meta.Description != "" {
				description = meta.Description
			}
			if title == nil && meta.Title != nil && *meta.Title != "" {
				title = meta.Title
			}
		}

		capturedAt := now
		if m.CapturedAt != nil {
			capturedAt = *m.CapturedAt
		}
		var idLocation *uuid.UUID
		if m.IDLocation != nil {
			if loc, err := uuid.Parse(*m.IDLocation); err == nil {
				idLocation = &loc
			}
		}

		row := certModel.CertificationMediaModel{
			IDMediaHash:     hash,
			IDCertification: cert.IDCertification,
			Name:            storedName,
			Description:     description,
			Title:           title,
			AcquisitionType: m.AcquisitionType,
			CapturedAt:      capturedAt,
			IDLocation:      idLocation,
			FileType:        fileType,
		}
		if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
			return nil, persistenceErr("Failed to process media: "+err.Error(), err)
		}

		link := certModel.CertificationHasMediaModel{
			IDCertification:      cert.IDCertification,
			IDCertificationMedia: row.IDCertificationMedia,
		}
		if m.IsUserMedia && m.UserID != "" {
			if cuID, ok := cuByUser[m.UserID]; ok {
				link.IDCertificationUser = &cuID
			} else {
				// fallback: unknown participant, keep it as context media
				log.Printf("[%s] no certification_user for user %s, linking media as context", reqID, m.UserID)
			}
		}
		if err := s.DB.WithContext(ctx).Create(&link).Error; err != nil {
			return nil, persistenceErr("Failed to process media: "+err.Error(), err)
		}

		rows = append(rows, row)
	}

	log.Printf("[%s] media OK rows=%d", reqID, len(rows))
	return rows, nil
}

/* =========================================================
   Stage 7 - information values
   ========================================================= */

type pendingValue struct {
	infoID uuid.UUID
	cuID   *uuid.UUID
	value  string
}

func (s *CertificationCreateService) processInformationValues(ctx context.Context, reqID string, cert *certModel.CertificationModel, legalEntityID uuid.UUID, req *certDTO.CreateCertificationRequest, cuRows []certModel.CertificationUserModel) ([]infoModel.CertificationInformationValueModel, error) {
	pending := make([]pendingValue, 0)

	// explicit values referencing catalog entries by id
	if len(req.InformationValues) > 0 {
		vals, err := s.resolveExplicitValues(ctx, legalEntityID, req.InformationValues, cuRows)
		if err != nil {
			return nil, err
		}
		pending = append(pending, vals...)
	}

	// named shortcuts: esito (per participant), titolo (certification
	// level), media_title (one per metadata item). Unresolvable names are
	// skipped, not fatal.
	if len(cuRows) > 0 {
		if info := s.lookupInformationByName(ctx, reqID, legalEntityID, infoModel.InformationEsito); info != nil {
			esito := "0"
			if v, ok := certDTO.StringValue(req.EsitoValue); ok {
				esito = v
			}
			for i := range cuRows {
				cuID := cuRows[i].IDCertificationUser
				pending = append(pending, pendingValue{infoID: info.IDCertificationInformation, cuID: &cuID, value: esito})
			}
		}
		if info := s.lookupInformationByName(ctx, reqID, legalEntityID, infoModel.InformationTitolo); info != nil {
			titolo := ""
			if v, ok := certDTO.StringValue(req.TitoloValue); ok {
				titolo = v
			}
			pending = append(pending, pendingValue{infoID: info.IDCertificationInformation, value: titolo})
		}
	}
	if len(req.MediaMetadata) > 0 {
		if info := s.lookupInformationByName(ctx, reqID, legalEntityID, infoModel.InformationMediaTitle); info != nil {
			for _, meta := range req.MediaMetadata {
				title := ""
				if meta.Title != nil {
					title = *meta.Title
				}
				pending = append(pending, pendingValue{infoID: info.IDCertificationInformation, value: title})
			}
		}
	}

	inserted := make([]infoModel.CertificationInformationValueModel, 0, len(pending))
	for i, pv := range pending {
		row := infoModel.CertificationInformationValueModel{
			IDCertificationInformation: pv.infoID,
			IDCertification:            cert.IDCertification,
			IDCertificationUser:        pv.cuID,
			Value:                      pv.value,
		}
		if err := s.DB.WithContext(ctx).Create(&row).Error; err != nil {
			if informationPolicy == failLenient {
				log.Printf("[%s] information value %d/%d insert failed, skipping: %v", reqID, i+1, len(pending), err)
				continue
			}
			return nil, persistenceErr("Failed to insert certification_information_values: "+err.Error(), err)
		}
		inserted = append(inserted, row)
	}

	if len(pending) > 0 {
		log.Printf("[%s] information values OK rows=%d/%d", reqID, len(inserted), len(pending))
	}
	return inserted, nil
}

func (s *CertificationCreateService) resolveExplicitValues(ctx context.Context, legalEntityID uuid.UUID, inputs []certDTO.InformationValueInput, cuRows []certModel.CertificationUserModel) ([]pendingValue, error) {
	infoIDs := make([]uuid.UUID, 0, len(inputs))
	seen := map[uuid.UUID]bool{}
	for _, in := range inputs {
		id, err := uuid.Parse(in.IDCertificationInformation)
		if err != nil {
			return nil, validationErr("Invalid certification_information_ids: " + in.IDCertificationInformation)
		}
		if !seen[id] {
			seen[id] = true
			infoIDs = append(infoIDs, id)
		}
	}

	var infos []infoModel.CertificationInformationModel
	if err := s.DB.WithContext(ctx).
		Where("id_certification_information IN ? AND (id_legal_entity = ? OR id_legal_entity IS NULL)", infoIDs, legalEntityID).
		Find(&infos).Error; err != nil {
		return nil, persistenceErr("Failed to validate certification_information_ids: "+err.Error(), err)
	}
	valid := map[uuid.UUID]bool{}
	for _, info := range infos {
		valid[info.IDCertificationInformation] = true
	}
	var missing []string
	for _, id := range infoIDs {
		if !valid[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return nil, validationErr("Invalid certification_information_ids: " + strings.Join(missing, ", "))
	}

	// id_certification_user on the wire carries the participant's user id
	cuByUser := map[string]uuid.UUID{}
	for _, cu := range cuRows {
		cuByUser[cu.IDUser.String()] = cu.IDCertificationUser
	}

	out := make([]pendingValue, 0, len(inputs))
	for _, in := range inputs {
		id, _ := uuid.Parse(in.IDCertificationInformation)
		v, _ := certDTO.StringValue(in.Value)
		pv := pendingValue{infoID: id, value: v}
		if in.IDCertificationUser != nil && *in.IDCertificationUser != "" {
			cuID, ok := cuByUser[*in.IDCertificationUser]
			if !ok {
				return nil, validationErr("Invalid id_certification_user: " + *in.IDCertificationUser)
			}
			pv.cuID = &cuID
		}
		out = append(out, pv)
	}
	return out, nil
}

func isDuplicateErr(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate") || strings.Contains(s, "unique")
}

func (s *CertificationCreateService) lookupInformationByName(ctx context.Context, reqID string, legalEntityID uuid.UUID, name string) *infoModel.CertificationInformationModel {
	var info infoModel.CertificationInformationModel
	err := s.DB.WithContext(ctx).
		Where("name = ? AND (id_legal_entity = ? OR id_legal_entity IS NULL)", name, legalEntityID).
		First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("[%s] lookup of information %q failed: %v", reqID, name, err)
		return nil
	}
	return &info
}
