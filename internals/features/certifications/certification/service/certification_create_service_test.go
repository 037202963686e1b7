package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"testing"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	certDTO "certifica_backend/internals/features/certifications/certification/dto"
	certModel "certifica_backend/internals/features/certifications/certification/model"
	infoModel "certifica_backend/internals/features/certifications/information/model"
	identityModel "certifica_backend/internals/features/identity/model"
	helperOSS "certifica_backend/internals/helpers/oss"
)

// memBlob is an in-memory BlobService for tests.
type memBlob struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemBlob() *memBlob {
	return &memBlob{objects: map[string][]byte{}, types: map[string]string{}}
}

func (b *memBlob) Upload(_ context.Context, key string, data []byte, contentType string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = data
	b.types[key] = contentType
	return nil
}

func (b *memBlob) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memBlob) PublicURL(key string) string { return "https://blob.test/" + key }

// ossLikeBlob mimics a no-overwrite bucket: re-uploading an existing key
// is rejected the way OSS rejects it, and the tolerance the production
// facade applies on top turns that rejection into success.
type ossLikeBlob struct {
	inner      *memBlob
	duplicates int
}

func (b *ossLikeBlob) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	b.inner.mu.Lock()
	_, exists := b.inner.objects[key]
	b.inner.mu.Unlock()
	if exists {
		err := oss.ServiceError{Code: "FileAlreadyExists", StatusCode: 409}
		if !helperOSS.IsAlreadyExists(err) {
			return err
		}
		b.duplicates++
		return nil
	}
	return b.inner.Upload(ctx, key, data, contentType)
}

func (b *ossLikeBlob) Delete(ctx context.Context, key string) error { return b.inner.Delete(ctx, key) }
func (b *ossLikeBlob) PublicURL(key string) string                  { return b.inner.PublicURL(key) }

type fixture struct {
	db   *gorm.DB
	blob *memBlob
	svc  *CertificationCreateService

	legalEntity uuid.UUID
	location    uuid.UUID
	category    uuid.UUID
	certifier   uuid.UUID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&identityModel.UserModel{},
		&identityModel.OtpModel{},
		&identityModel.LegalEntityModel{},
		&identityModel.LocationModel{},
		&identityModel.CertificationCategoryModel{},
		&identityModel.CertifierModel{},
		&certModel.CertificationModel{},
		&certModel.CertificationUserModel{},
		&certModel.CertificationMediaModel{},
		&certModel.CertificationHasMediaModel{},
		&infoModel.CertificationInformationValueModel{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	// options is text[] on postgres, created by hand here
	if err := db.Exec(`CREATE TABLE certification_information (
		id_certification_information TEXT PRIMARY KEY,
		name TEXT, label TEXT, type TEXT, scope TEXT,
		id_legal_entity TEXT, options TEXT, created_at DATETIME
	)`).Error; err != nil {
		t.Fatalf("create certification_information: %v", err)
	}

	f := &fixture{
		db:          db,
		blob:        newMemBlob(),
		legalEntity: uuid.New(),
		location:    uuid.New(),
		category:    uuid.New(),
		certifier:   uuid.New(),
	}
	f.svc = NewCertificationCreateService(db, f.blob)

	mustCreate(t, db, &identityModel.LegalEntityModel{IDLegalEntity: f.legalEntity, Name: "ACME Srl"})
	mustCreate(t, db, &identityModel.LocationModel{IDLocation: f.location, Name: "Cantiere Nord"})
	mustCreate(t, db, &identityModel.CertificationCategoryModel{IDCertificationCategory: f.category, Name: "Collaudo"})
	mustCreate(t, db, &identityModel.CertifierModel{
		IDCertifier:     f.certifier,
		IDCertifierHash: uuid.NewString(),
		IDLegalEntity:   f.legalEntity,
		Active:          true,
		Role:            "Certificatore",
	})
	return f
}

func mustCreate(t *testing.T, db *gorm.DB, row interface{}) {
	t.Helper()
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("seed %T: %v", row, err)
	}
}

func (f *fixture) seedUser(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	mustCreate(t, f.db, &identityModel.UserModel{
		IDUser:     id,
		IDUserHash: uuid.NewString(),
		FirstName:  "Mario",
		LastName:   "Rossi",
		FullName:   "Mario Rossi",
		Email:      id.String() + "@example.test",
	})
	return id
}

func (f *fixture) seedOtp(t *testing.T) uuid.UUID {
	t.Helper()
	id := uuid.New()
	mustCreate(t, f.db, &identityModel.OtpModel{IDOtp: id})
	return id
}

func (f *fixture) seedInformation(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	le := f.legalEntity
	mustCreate(t, f.db, &infoModel.CertificationInformationModel{
		IDCertificationInformation: id,
		Name:                       name,
		Label:                      name,
		Type:                       "text",
		Scope:                      "certification",
		IDLegalEntity:              &le,
	})
	return id
}

func (f *fixture) baseRequest() *certDTO.CreateCertificationRequest {
	return &certDTO.CreateCertificationRequest{
		Certification: certDTO.CertificationInput{
			IDCertifier:             f.certifier.String(),
			IDLegalEntity:           f.legalEntity.String(),
			IDLocation:              f.location.String(),
			IDCertificationCategory: f.category.String(),
			NUsers:                  1,
		},
	}
}

func (f *fixture) count(t *testing.T, model interface{}, cond ...interface{}) int64 {
	t.Helper()
	var n int64
	q := f.db.Model(model)
	if len(cond) > 0 {
		q = q.Where(cond[0], cond[1:]...)
	}
	if err := q.Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

func wantKind(t *testing.T, err error, kind ErrorKind) *WorkflowError {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	wErr, ok := AsWorkflowError(err)
	if !ok {
		t.Fatalf("expected WorkflowError, got %T: %v", err, err)
	}
	if wErr.Kind != kind {
		t.Fatalf("expected kind %d, got %d (%s)", kind, wErr.Kind, wErr.Message)
	}
	return wErr
}

func TestCreateMinimal(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Create(context.Background(), "req_test", f.baseRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if res.IDCertification == uuid.Nil {
		t.Fatal("certification id not assigned")
	}
	if res.Status != certModel.StatusSent {
		t.Fatalf("status = %q, want %q", res.Status, certModel.StatusSent)
	}
	if res.IDCertificationHash == "" {
		t.Fatal("hash not assigned")
	}
	if len(res.CertificationUsers) != 0 || len(res.Media) != 0 || len(res.InformationValues) != 0 {
		t.Fatal("expected empty dependent collections")
	}
	if got := f.count(t, &certModel.CertificationModel{}); got != 1 {
		t.Fatalf("certification rows = %d, want 1", got)
	}
}

func TestCreateMissingRequiredField(t *testing.T) {
	f := newFixture(t)
	req := f.baseRequest()
	req.Certification.IDCertifier = ""

	_, err := f.svc.Create(context.Background(), "req_test", req)
	wErr := wantKind(t, err, KindValidation)
	if wErr.HTTPStatus() != 400 {
		t.Fatalf("status = %d, want 400", wErr.HTTPStatus())
	}
	if got := f.count(t, &certModel.CertificationModel{}); got != 0 {
		t.Fatalf("certification rows = %d, want 0", got)
	}
}

func TestCreateUnknownReference(t *testing.T) {
	f := newFixture(t)
	req := f.baseRequest()
	req.Certification.IDLegalEntity = uuid.NewString()

	_, err := f.svc.Create(context.Background(), "req_test", req)
	wErr := wantKind(t, err, KindReferenceNotFound)
	if wErr.Message != "Invalid id_legal_entity: not found" {
		t.Fatalf("message = %q", wErr.Message)
	}
	if got := f.count(t, &certModel.CertificationModel{}); got != 0 {
		t.Fatalf("certification rows = %d, want 0", got)
	}
}

func TestCreateProvisionsUnknownCertifier(t *testing.T) {
	f := newFixture(t)
	req := f.baseRequest()
	newCertifier := uuid.New()
	req.Certification.IDCertifier = newCertifier.String()

	if _, err := f.svc.Create(context.Background(), "req_test", req); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := f.count(t, &identityModel.CertifierModel{}, "id_certifier = ?", newCertifier); got != 1 {
		t.Fatalf("certifier rows = %d, want 1", got)
	}
}

func TestCreateWithParticipantsClaimsOtps(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.seedUser(t), f.seedUser(t)
	o1, o2 := f.seedOtp(t), f.seedOtp(t)

	req := f.baseRequest()
	req.Certification.NUsers = 2
	req.Participants = []certDTO.ParticipantInput{
		{IDUser: u1.String(), IDOtp: o1.String()},
		{IDUser: u2.String(), IDOtp: o2.String()},
	}

	res, err := f.svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.CertificationUsers) != 2 {
		t.Fatalf("certification_users = %d, want 2", len(res.CertificationUsers))
	}
	for _, cu := range res.CertificationUsers {
		if cu.Status != certModel.UserStatusPending {
			t.Fatalf("status = %q, want pending", cu.Status)
		}
	}

	var otp identityModel.OtpModel
	if err := f.db.First(&otp, "id_otp = ?", o1).Error; err != nil {
		t.Fatalf("reload otp: %v", err)
	}
	if otp.UsedAt == nil || otp.BurnedAt == nil {
		t.Fatal("otp not claimed")
	}
	if otp.Available() {
		t.Fatal("claimed otp still reports available")
	}
	if otp.UsedByIDUser == nil || *otp.UsedByIDUser != u1 {
		t.Fatal("otp not attributed to the participant")
	}
}

func TestCreateDuplicatePairInsertedOnce(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	o := f.seedOtp(t)

	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{
		{IDUser: u.String(), IDOtp: o.String()},
		{IDUser: u.String(), IDOtp: o.String()},
	}

	res, err := f.svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.CertificationUsers) != 1 {
		t.Fatalf("certification_users = %d, want 1", len(res.CertificationUsers))
	}
}

func TestCreateBurnedOtpConflictAndCompensated(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	burned := uuid.New()
	now := time.Now().UTC()
	mustCreate(t, f.db, &identityModel.OtpModel{IDOtp: burned, BurnedAt: &now})

	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: burned.String()}}

	// the row exists, so the existence check passes; the compare-and-set
	// claim is what rejects it
	_, err := f.svc.Create(context.Background(), "req_test", req)
	wErr := wantKind(t, err, KindConflict)
	if wErr.HTTPStatus() != 409 {
		t.Fatalf("status = %d, want 409", wErr.HTTPStatus())
	}

	// the certification inserted before the participant stage must be gone
	if got := f.count(t, &certModel.CertificationModel{}); got != 0 {
		t.Fatalf("certification rows = %d, want 0 after compensation", got)
	}
	if got := f.count(t, &certModel.CertificationUserModel{}); got != 0 {
		t.Fatalf("certification_user rows = %d, want 0", got)
	}
}

func TestCreateMissingOtpRowRejected(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)

	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: uuid.NewString()}}

	_, err := f.svc.Create(context.Background(), "req_test", req)
	wErr := wantKind(t, err, KindReferenceNotFound)
	if wErr.HTTPStatus() != 400 {
		t.Fatalf("status = %d, want 400", wErr.HTTPStatus())
	}
	if got := f.count(t, &certModel.CertificationModel{}); got != 0 {
		t.Fatalf("certification rows = %d, want 0 after compensation", got)
	}
}

func TestClaimOtpConflictWhenAlreadyUsed(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	used := uuid.New()
	now := time.Now().UTC()
	mustCreate(t, f.db, &identityModel.OtpModel{IDOtp: used, UsedAt: &now})

	cert := &certModel.CertificationModel{IDLegalEntity: f.legalEntity}
	err := f.svc.claimOtps(context.Background(), "req_test", cert,
		[]certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: used.String()}})
	wErr := wantKind(t, err, KindConflict)
	if wErr.HTTPStatus() != 409 {
		t.Fatalf("status = %d, want 409", wErr.HTTPStatus())
	}
}

func TestCreateWithMediaUploadAndLinks(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	o := f.seedOtp(t)

	content := []byte("%PDF-1.4 fake report")
	sum := sha256.Sum256(content)
	hash := hex.EncodeToString(sum[:])
	mime := "application/pdf"

	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: o.String()}}
	req.Media = []certDTO.MediaInput{
		{Name: "report.pdf", MimeType: &mime, Bytes: content, AcquisitionType: "deferred", IsUserMedia: true, UserID: u.String()},
	}

	res, err := f.svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.Media) != 1 {
		t.Fatalf("media rows = %d, want 1", len(res.Media))
	}
	m := res.Media[0]
	if m.IDMediaHash != hash {
		t.Fatalf("hash = %q, want sha256 of content", m.IDMediaHash)
	}
	wantKey := res.IDCertification.String() + "/" + hash + "-report.pdf"
	if m.Name == nil || *m.Name != wantKey {
		t.Fatalf("stored name = %v, want %q", m.Name, wantKey)
	}
	if m.FileType == nil || *m.FileType != "document" {
		t.Fatalf("file_type = %v, want document", m.FileType)
	}
	if _, ok := f.blob.objects[wantKey]; !ok {
		t.Fatalf("object %q not uploaded", wantKey)
	}

	var link certModel.CertificationHasMediaModel
	if err := f.db.First(&link, "id_certification_media = ?", m.IDCertificationMedia).Error; err != nil {
		t.Fatalf("load link: %v", err)
	}
	if link.IDCertificationUser == nil {
		t.Fatal("user media should be linked to the participant row")
	}
	if *link.IDCertificationUser != res.CertificationUsers[0].IDCertificationUser {
		t.Fatal("link points at the wrong certification_user")
	}
}

func TestCreateDuplicateMediaUploadTolerated(t *testing.T) {
	f := newFixture(t)
	blob := &ossLikeBlob{inner: newMemBlob()}
	svc := NewCertificationCreateService(f.db, blob)

	content := []byte("identical bytes")
	req := f.baseRequest()
	req.Media = []certDTO.MediaInput{
		{Name: "foto.jpg", Bytes: content},
		{Name: "foto.jpg", Bytes: content}, // same bytes, same key
	}

	res, err := svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.Media) != 2 {
		t.Fatalf("media rows = %d, want 2", len(res.Media))
	}
	if blob.duplicates != 1 {
		t.Fatalf("tolerated duplicates = %d, want 1", blob.duplicates)
	}
	if len(blob.inner.objects) != 1 {
		t.Fatalf("stored objects = %d, want 1", len(blob.inner.objects))
	}
	if *res.Media[0].Name != *res.Media[1].Name {
		t.Fatal("identical content should address the same object key")
	}
}

func TestCreateMediaMetadataOverlay(t *testing.T) {
	f := newFixture(t)
	title := "Verbale"
	desc := "Foto del collaudo"

	req := f.baseRequest()
	req.Media = []certDTO.MediaInput{{Name: "foto.jpg", Bytes: []byte("jpegbytes"), AcquisitionType: "realtime"}}
	req.MediaMetadata = []certDTO.MediaMetadataInput{{Title: &title, Description: &desc}}

	res, err := f.svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	m := res.Media[0]
	if m.Title == nil || *m.Title != title {
		t.Fatalf("title = %v, want %q", m.Title, title)
	}
	if m.Description == nil || *m.Description != desc {
		t.Fatalf("description = %v, want %q", m.Description, desc)
	}
	if m.FileType == nil || *m.FileType != "image" {
		t.Fatalf("file_type = %v, want image (from extension)", m.FileType)
	}
}

func TestCreateUnknownInformationCompensatesEverything(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	o := f.seedOtp(t)

	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: o.String()}}
	req.Media = []certDTO.MediaInput{{Name: "foto.jpg", Bytes: []byte("jpegbytes")}}
	req.InformationValues = []certDTO.InformationValueInput{
		{IDCertificationInformation: uuid.NewString(), Value: "x"},
	}

	_, err := f.svc.Create(context.Background(), "req_test", req)
	wantKind(t, err, KindValidation)

	if got := f.count(t, &certModel.CertificationModel{}); got != 0 {
		t.Fatalf("certification rows = %d, want 0", got)
	}
	if got := f.count(t, &certModel.CertificationUserModel{}); got != 0 {
		t.Fatalf("certification_user rows = %d, want 0", got)
	}
	if got := f.count(t, &certModel.CertificationMediaModel{}); got != 0 {
		t.Fatalf("certification_media rows = %d, want 0", got)
	}
	if got := f.count(t, &certModel.CertificationHasMediaModel{}); got != 0 {
		t.Fatalf("certification_has_media rows = %d, want 0", got)
	}

	// the claim is permanent even when everything else rolls back
	var otp identityModel.OtpModel
	if err := f.db.First(&otp, "id_otp = ?", o).Error; err != nil {
		t.Fatalf("reload otp: %v", err)
	}
	if otp.UsedAt == nil {
		t.Fatal("otp claim should survive compensation")
	}
}

func TestCreateExplicitInformationValues(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	o := f.seedOtp(t)
	infoID := f.seedInformation(t, "note")

	userRef := u.String()
	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: o.String()}}
	req.InformationValues = []certDTO.InformationValueInput{
		{IDCertificationInformation: infoID.String(), Value: "tutto ok", IDCertificationUser: &userRef},
	}

	res, err := f.svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.InformationValues) != 1 {
		t.Fatalf("values = %d, want 1", len(res.InformationValues))
	}
	v := res.InformationValues[0]
	if v.Value != "tutto ok" {
		t.Fatalf("value = %q", v.Value)
	}
	if v.IDCertificationUser == nil || *v.IDCertificationUser != res.CertificationUsers[0].IDCertificationUser {
		t.Fatal("value not scoped to the participant row")
	}
}

func TestCreateNamedInformationDefaults(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	o := f.seedOtp(t)
	esitoID := f.seedInformation(t, infoModel.InformationEsito)
	titoloID := f.seedInformation(t, infoModel.InformationTitolo)

	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: o.String()}}
	req.TitoloValue = "Collaudo impianto"

	res, err := f.svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.InformationValues) != 2 {
		t.Fatalf("values = %d, want 2 (esito + titolo)", len(res.InformationValues))
	}
	byInfo := map[uuid.UUID]infoModel.CertificationInformationValueModel{}
	for _, v := range res.InformationValues {
		byInfo[v.IDCertificationInformation] = v
	}
	if v, ok := byInfo[esitoID]; !ok || v.Value != "0" {
		t.Fatalf("esito = %+v, want default %q", v, "0")
	}
	if v, ok := byInfo[titoloID]; !ok || v.Value != "Collaudo impianto" {
		t.Fatalf("titolo = %+v", v)
	}
}

func TestCreateNamedInformationMissingCatalogIsSkipped(t *testing.T) {
	f := newFixture(t)
	u := f.seedUser(t)
	o := f.seedOtp(t)

	req := f.baseRequest()
	req.Participants = []certDTO.ParticipantInput{{IDUser: u.String(), IDOtp: o.String()}}
	req.EsitoValue = "1"

	res, err := f.svc.Create(context.Background(), "req_test", req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(res.InformationValues) != 0 {
		t.Fatalf("values = %d, want 0 when catalog has no named entries", len(res.InformationValues))
	}
}
