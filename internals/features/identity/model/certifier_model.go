package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CertifierModel is the actor authorized to issue certifications for a
// legal entity. Rows may be implicitly provisioned the first time an
// unknown certifier issues a certification (see the workflow's ensure step).
type CertifierModel struct {
	IDCertifier     uuid.UUID  `json:"id_certifier" gorm:"column:id_certifier;primaryKey"`
	IDCertifierHash string     `json:"id_certifier_hash" gorm:"column:id_certifier_hash"`
	IDLegalEntity   uuid.UUID  `json:"id_legal_entity" gorm:"column:id_legal_entity"`
	IDUser          *uuid.UUID `json:"id_user,omitempty" gorm:"column:id_user"`
	Active          bool       `json:"active" gorm:"column:active;default:true"`
	Role            string     `json:"role" gorm:"column:role;default:Certificatore"`
	InvitationToken *string    `json:"invitation_token,omitempty" gorm:"column:invitation_token"`
	KycPassed       *bool      `json:"kyc_passed,omitempty" gorm:"column:kyc_passed"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       *time.Time `json:"updated_at,omitempty" gorm:"column:updated_at"`
}

func (CertifierModel) TableName() string { return "certifier" }

func (m *CertifierModel) BeforeCreate(_ *gorm.DB) error {
	if m.IDCertifier == uuid.Nil {
		m.IDCertifier = uuid.New()
	}
	if m.IDCertifierHash == "" {
		m.IDCertifierHash = uuid.NewString()
	}
	return nil
}
