package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certification lifecycle statuses.
const (
	StatusDraft  = "draft"
	StatusSent   = "sent"
	StatusClosed = "closed"
)

type CertificationModel struct {
	IDCertification         uuid.UUID  `json:"id_certification" gorm:"column:id_certification;primaryKey"`
	IDCertificationHash     string     `json:"id_certification_hash" gorm:"column:id_certification_hash"`
	IDCertifier             uuid.UUID  `json:"id_certifier" gorm:"column:id_certifier"`
	IDLegalEntity           uuid.UUID  `json:"id_legal_entity" gorm:"column:id_legal_entity"`
	IDLocation              uuid.UUID  `json:"id_location" gorm:"column:id_location"`
	IDCertificationCategory uuid.UUID  `json:"id_certification_category" gorm:"column:id_certification_category"`
	NUsers                  int        `json:"n_users" gorm:"column:n_users"`
	Status                  string     `json:"status" gorm:"column:status;default:sent"`
	DraftAt                 time.Time  `json:"draft_at" gorm:"column:draft_at"`
	SentAt                  time.Time  `json:"sent_at" gorm:"column:sent_at"`
	ClosedAt                *time.Time `json:"closed_at,omitempty" gorm:"column:closed_at"`
	DurationH               *float64   `json:"duration_h,omitempty" gorm:"column:duration_h"`
	StartTimestamp          *time.Time `json:"start_timestamp,omitempty" gorm:"column:start_timestamp"`
	EndTimestamp            *time.Time `json:"end_timestamp,omitempty" gorm:"column:end_timestamp"`
	CreatedAt               time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (CertificationModel) TableName() string { return "certification" }

func (m *CertificationModel) BeforeCreate(_ *gorm.DB) error {
	if m.IDCertification == uuid.Nil {
		m.IDCertification = uuid.New()
	}
	if m.IDCertificationHash == "" {
		m.IDCertificationHash = uuid.NewString()
	}
	return nil
}
