package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participation statuses of a certification user.
const (
	UserStatusPending  = "pending"
	UserStatusAccepted = "accepted"
	UserStatusRejected = "rejected"
)

// CertificationUserModel links one participant (user + claimed OTP) to a
// certification. The (id_certification, id_user, id_otp) triple is unique.
type CertificationUserModel struct {
	IDCertificationUser uuid.UUID  `json:"id_certification_user" gorm:"column:id_certification_user;primaryKey"`
	IDCertification     uuid.UUID  `json:"id_certification" gorm:"column:id_certification;uniqueIndex:uq_certification_user_pair"`
	IDUser              uuid.UUID  `json:"id_user" gorm:"column:id_user;uniqueIndex:uq_certification_user_pair"`
	IDOtp               uuid.UUID  `json:"id_otp" gorm:"column:id_otp;uniqueIndex:uq_certification_user_pair"`
	Status              string     `json:"status" gorm:"column:status;default:pending"`
	RejectionReason     *string    `json:"rejection_reason,omitempty" gorm:"column:rejection_reason"`
	DurationH           *float64   `json:"duration_h,omitempty" gorm:"column:duration_h"`
	StartTimestamp      *time.Time `json:"start_timestamp,omitempty" gorm:"column:start_timestamp"`
	EndTimestamp        *time.Time `json:"end_timestamp,omitempty" gorm:"column:end_timestamp"`
	CreatedAt           time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (CertificationUserModel) TableName() string { return "certification_user" }

func (m *CertificationUserModel) BeforeCreate(_ *gorm.DB) error {
	if m.IDCertificationUser == uuid.Nil {
		m.IDCertificationUser = uuid.New()
	}
	return nil
}
