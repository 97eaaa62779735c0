package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/clinicbook/clinicbook/internal/domain/doctor"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepository(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

var _ doctor.Repository = (*DoctorRepository)(nil)

func (r *DoctorRepository) Create(ctx context.Context, d *doctor.Doctor) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return doctor.ErrEmailInUse
		}
		return err
	}
	return nil
}

func (r *DoctorRepository) GetByID(ctx context.Context, id uuid.UUID) (*doctor.Doctor, error) {
	var d doctor.Doctor
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, doctor.ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) GetByEmail(ctx context.Context, email string) (*doctor.Doctor, error) {
	var d doctor.Doctor
	if err := r.db.WithContext(ctx).First(&d, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, doctor.ErrDoctorNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *DoctorRepository) Update(ctx context.Context, id uuid.UUID, cmd *doctor.UpdateDoctorCommand) (*doctor.Doctor, error) {
	d, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cmd.Name != nil {
		d.Name = *cmd.Name
	}
	if cmd.Email != nil {
		d.Email = *cmd.Email
	}
	if cmd.Specialization != nil {
		d.Specialization = *cmd.Specialization
	}
	if cmd.DepartmentID != nil {
		d.DepartmentID = cmd.DepartmentID
	}
	if cmd.ExperienceYrs != nil {
		d.ExperienceYrs = cmd.ExperienceYrs
	}

	if err := r.db.WithContext(ctx).Save(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, doctor.ErrEmailInUse
		}
		return nil, err
	}
	return d, nil
}

func (r *DoctorRepository) SetBlacklisted(ctx context.Context, id uuid.UUID, blacklisted bool) error {
	res := r.db.WithContext(ctx).
		Model(&doctor.Doctor{}).
		Where("id = ?", id).
		Update("is_blacklisted", blacklisted)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&doctor.Doctor{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return doctor.ErrDoctorNotFound
	}
	return nil
}

func (r *DoctorRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID, includeBlacklisted bool) ([]*doctor.Doctor, error) {
	tx := r.db.WithContext(ctx).Where("department_id = ?", departmentID)
	if !includeBlacklisted {
		tx = tx.Where("is_blacklisted = ?", false)
	}
	var docs []*doctor.Doctor
	err := tx.Order("name ASC").Find(&docs).Error
	return docs, err
}

func (r *DoctorRepository) List(ctx context.Context) ([]*doctor.Doctor, error) {
	var docs []*doctor.Doctor
	err := r.db.WithContext(ctx).Order("name ASC").Find(&docs).Error
	return docs, err
}

func (r *DoctorRepository) CreateDepartment(ctx context.Context, d *doctor.Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *DoctorRepository) GetDepartment(ctx context.Context, id uuid.UUID) (*doctor.Department, error) {
	var dep doctor.Department
	if err := r.db.WithContext(ctx).First(&dep, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, doctor.ErrDepartmentNotFound
		}
		return nil, err
	}
	return &dep, nil
}

func (r *DoctorRepository) ListDepartments(ctx context.Context) ([]*doctor.Department, error) {
	var deps []*doctor.Department
	err := r.db.WithContext(ctx).Order("name ASC").Find(&deps).Error
	return deps, err
}
