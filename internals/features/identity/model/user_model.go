package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel maps the legacy "user" table. Column names are camelCase in the
// database (idUser, firstName, ...), kept as-is for compatibility.
type UserModel struct {
	IDUser         uuid.UUID  `json:"idUser" gorm:"column:idUser;primaryKey"`
	IDUserHash     string     `json:"idUserHash" gorm:"column:idUserHash"`
	FirstName      string     `json:"firstName" gorm:"column:firstName"`
	LastName       string     `json:"lastName" gorm:"column:lastName"`
	FullName       string     `json:"fullName" gorm:"column:fullName"`
	Email          string     `json:"email" gorm:"column:email;uniqueIndex"`
	Phone          *string    `json:"phone,omitempty" gorm:"column:phone"`
	ProfilePicture *string    `json:"profilePicture,omitempty" gorm:"column:profilePicture"`
	Type           string     `json:"type" gorm:"column:type;default:certifier"`
	LanguageCode   string     `json:"languageCodeApp" gorm:"column:languageCodeApp;default:it"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"column:createdAt"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty" gorm:"column:updatedAt"`
}

func (UserModel) TableName() string { return "user" }
