package doctor

import (
	"time"

	"github.com/google/uuid"
)

// Department groups doctors by specialty area.
type Department struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name        string `gorm:"column:name;type:varchar(100);uniqueIndex;not null"`
	Description string `gorm:"column:description;type:text"`
}

func (Department) TableName() string {
	return "clinical.departments"
}

type Doctor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Name           string     `gorm:"column:name;type:varchar(120);not null"`
	Email          string     `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	Specialization string     `gorm:"column:specialization;type:varchar(120)"`
	DepartmentID   *uuid.UUID `gorm:"column:department_id;type:uuid;index"`
	ExperienceYrs  *int       `gorm:"column:experience_yrs"`

	// A blacklisted doctor is hidden from patients and rejected by the
	// booking engine; existing appointments are untouched.
	IsBlacklisted bool `gorm:"column:is_blacklisted;not null;default:false;index"`
}

func (Doctor) TableName() string {
	return "clinical.doctors"
}

type CreateDoctorCommand struct {
	Name           string
	Email          string
	Specialization string
	DepartmentID   *uuid.UUID
	ExperienceYrs  *int
}

type UpdateDoctorCommand struct {
	Name           *string
	Email          *string
	Specialization *string
	DepartmentID   *uuid.UUID
	ExperienceYrs  *int
}
