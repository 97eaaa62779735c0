package patient

import (
	"time"

	"github.com/google/uuid"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

type Patient struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name   string `gorm:"column:name;type:varchar(120);not null"`
	Email  string `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Age    *int   `gorm:"column:age"`
	Gender Gender `gorm:"column:gender;type:varchar(10);default:'unknown'"`

	// A blacklisted patient cannot log in or book.
	IsBlacklisted bool `gorm:"column:is_blacklisted;not null;default:false;index"`
}

func (Patient) TableName() string {
	return "clinical.patients"
}

type CreatePatientCommand struct {
	Name   string
	Email  string
	Age    *int
	Gender Gender
}
