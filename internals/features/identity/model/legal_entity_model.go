package model

import (
	"time"

	"github.com/google/uuid"
)

type LegalEntityModel struct {
	IDLegalEntity uuid.UUID `json:"id_legal_entity" gorm:"column:id_legal_entity;primaryKey"`
	Name          string    `json:"name" gorm:"column:name"`
	VATNumber     *string   `json:"vat_number,omitempty" gorm:"column:vat_number"`
	CreatedAt     time.Time `json:"created_at" gorm:"column:created_at"`
}

func (LegalEntityModel) TableName() string { return "legal_entity" }

type LocationModel struct {
	IDLocation uuid.UUID `json:"id_location" gorm:"column:id_location;primaryKey"`
	Name       string    `json:"name" gorm:"column:name"`
	Latitude   *float64  `json:"latitude,omitempty" gorm:"column:latitude"`
	Longitude  *float64  `json:"longitude,omitempty" gorm:"column:longitude"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

func (LocationModel) TableName() string { return "location" }

type CertificationCategoryModel struct {
	IDCertificationCategory uuid.UUID `json:"id_certification_category" gorm:"column:id_certification_category;primaryKey"`
	Name                    string    `json:"name" gorm:"column:name"`
	CreatedAt               time.Time `json:"created_at" gorm:"column:created_at"`
}

func (CertificationCategoryModel) TableName() string { return "certification_category" }
