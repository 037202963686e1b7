package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Well-known catalog entry names handled by the creation workflow.
const (
	InformationEsito      = "esito"       // per-participant outcome
	InformationTitolo     = "titolo"      // certification-level title
	InformationMediaTitle = "media_title" // one value per media metadata item
)

// CertificationInformationModel is a catalog entry describing a named,
// typed attribute certifications may carry. IDLegalEntity NULL means the
// entry is global; otherwise it is scoped to that legal entity.
type CertificationInformationModel struct {
	IDCertificationInformation uuid.UUID      `json:"id_certification_information" gorm:"column:id_certification_information;primaryKey"`
	Name                       string         `json:"name" gorm:"column:name"`
	Label                      string         `json:"label" gorm:"column:label"`
	Type                       string         `json:"type" gorm:"column:type"`
	Scope                      string         `json:"scope" gorm:"column:scope"`
	IDLegalEntity              *uuid.UUID     `json:"id_legal_entity,omitempty" gorm:"column:id_legal_entity"`
	Options                    pq.StringArray `json:"options,omitempty" gorm:"column:options;type:text[]"`
	CreatedAt                  time.Time      `json:"created_at" gorm:"column:created_at"`
}

func (CertificationInformationModel) TableName() string { return "certification_information" }

func (m *CertificationInformationModel) BeforeCreate(_ *gorm.DB) error {
	if m.IDCertificationInformation == uuid.Nil {
		m.IDCertificationInformation = uuid.New()
	}
	return nil
}

// CertificationInformationValueModel is one concrete value of a catalog
// entry for a certification; IDCertificationUser NULL means the value
// applies to the certification as a whole.
type CertificationInformationValueModel struct {
	IDCertificationInformationValue uuid.UUID  `json:"id_certification_information_value" gorm:"column:id_certification_information_value;primaryKey"`
	IDCertificationInformation      uuid.UUID  `json:"id_certification_information" gorm:"column:id_certification_information"`
	IDCertification                 uuid.UUID  `json:"id_certification" gorm:"column:id_certification"`
	IDCertificationUser             *uuid.UUID `json:"id_certification_user,omitempty" gorm:"column:id_certification_user"`
	Value                           string     `json:"value" gorm:"column:value"`
	CreatedAt                       time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt                       *time.Time `json:"updated_at,omitempty" gorm:"column:updated_at"`
}

func (CertificationInformationValueModel) TableName() string {
	return "certification_information_value"
}

func (m *CertificationInformationValueModel) BeforeCreate(_ *gorm.DB) error {
	if m.IDCertificationInformationValue == uuid.Nil {
		m.IDCertificationInformationValue = uuid.New()
	}
	return nil
}
