package model

import (
	"time"

	"github.com/google/uuid"
)

// OtpModel is a single-use credential. An OTP is available while both
// used_at and burned_at are NULL; claiming sets both plus the claiming
// user and owning legal entity in one conditional update. Once claimed it
// stays claimed - there is no un-claim path.
type OtpModel struct {
	IDOtp         uuid.UUID  `json:"id_otp" gorm:"column:id_otp;primaryKey"`
	UsedAt        *time.Time `json:"used_at,omitempty" gorm:"column:used_at"`
	BurnedAt      *time.Time `json:"burned_at,omitempty" gorm:"column:burned_at"`
	UsedByIDUser  *uuid.UUID `json:"used_by_id_user,omitempty" gorm:"column:used_by_id_user"`
	IDLegalEntity *uuid.UUID `json:"id_legal_entity,omitempty" gorm:"column:id_legal_entity"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty" gorm:"column:expires_at"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
}

func (OtpModel) TableName() string { return "otp" }

// Available reports whether the OTP can still be claimed. Informational
// only: the conditional claim update is the real arbiter under races.
func (m *OtpModel) Available() bool {
	return m.UsedAt == nil && m.BurnedAt == nil
}
