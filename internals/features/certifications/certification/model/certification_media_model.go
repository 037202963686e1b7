package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Acquisition modes of a media item.
const (
	AcquisitionRealtime = "realtime"
	AcquisitionDeferred = "deferred"
)

// CertificationMediaModel is one uploaded or referenced file. Name holds
// the storage key when bytes were uploaded, otherwise the declared name.
type CertificationMediaModel struct {
	IDCertificationMedia uuid.UUID  `json:"id_certification_media" gorm:"column:id_certification_media;primaryKey"`
	IDMediaHash          string     `json:"id_media_hash" gorm:"column:id_media_hash"`
	IDCertification      uuid.UUID  `json:"id_certification" gorm:"column:id_certification"`
	Name                 *string    `json:"name,omitempty" gorm:"column:name"`
	Description          *string    `json:"description,omitempty" gorm:"column:description"`
	Title                *string    `json:"title,omitempty" gorm:"column:title"`
	AcquisitionType      string     `json:"acquisition_type" gorm:"column:acquisition_type;default:realtime"`
	CapturedAt           time.Time  `json:"captured_at" gorm:"column:captured_at"`
	IDLocation           *uuid.UUID `json:"id_location,omitempty" gorm:"column:id_location"`
	FileType             *string    `json:"file_type,omitempty" gorm:"column:file_type"`
	CreatedAt            time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (CertificationMediaModel) TableName() string { return "certification_media" }

func (m *CertificationMediaModel) BeforeCreate(_ *gorm.DB) error {
	if m.IDCertificationMedia == uuid.Nil {
		m.IDCertificationMedia = uuid.New()
	}
	return nil
}

// CertificationHasMediaModel associates a media row with a certification
// and, for participant-scoped media, with one certification_user.
type CertificationHasMediaModel struct {
	IDCertification      uuid.UUID  `json:"id_certification" gorm:"column:id_certification;primaryKey"`
	IDCertificationMedia uuid.UUID  `json:"id_certification_media" gorm:"column:id_certification_media;primaryKey"`
	IDCertificationUser  *uuid.UUID `json:"id_certification_user,omitempty" gorm:"column:id_certification_user"`
}

func (CertificationHasMediaModel) TableName() string { return "certification_has_media" }
