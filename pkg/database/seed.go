package database

import (
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clinicbook/clinicbook/internal/domain"
	"github.com/clinicbook/clinicbook/internal/domain/appointment"
	"github.com/clinicbook/clinicbook/internal/domain/doctor"
	"github.com/clinicbook/clinicbook/internal/domain/patient"
	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

// SeedDemo loads a small demo clinic for development environments. It is
// a no-op when departments already exist.
func SeedDemo(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&doctor.Department{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	log.Info("seeding demo data")

	cardiology := &doctor.Department{Name: "Cardiology", Description: "Specializing in heart-related issues."}
	oncology := &doctor.Department{Name: "Oncology", Description: "Diagnosis, treatment, and care of patients with cancer."}
	general := &doctor.Department{Name: "General", Description: "General health checkups and primary care."}
	for _, d := range []*doctor.Department{cardiology, oncology, general} {
		if err := db.Create(d).Error; err != nil {
			return err
		}
	}

	ten, five, eight := 10, 5, 8
	docs := []*doctor.Doctor{
		{Name: "Dr. Abcde", Email: "abcde@hospital.com", Specialization: "Cardiologist", DepartmentID: &cardiology.ID, ExperienceYrs: &ten},
		{Name: "Dr. Pqrst", Email: "pqrst@hospital.com", Specialization: "Cardiologist", DepartmentID: &cardiology.ID, ExperienceYrs: &five},
		{Name: "Dr. Mnop", Email: "mnop@hospital.com", Specialization: "Medical Oncologist", DepartmentID: &oncology.ID, ExperienceYrs: &eight},
	}
	for _, d := range docs {
		if err := db.Create(d).Error; err != nil {
			return err
		}
	}

	age := 30
	demoPatient := &patient.Patient{Name: "Pqrst", Email: "pqrst@test.com", Age: &age, Gender: patient.GenderMale}
	if err := db.Create(demoPatient).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := db.Create(&domain.User{
		Email:        demoPatient.Email,
		PasswordHash: string(hash),
		Name:         demoPatient.Name,
		Role:         domain.RolePatient,
		PatientID:    &demoPatient.ID,
	}).Error; err != nil {
		return err
	}

	// One working week for the first doctor, morning shifts only.
	for _, day := range schedule.Horizon(time.Now(), 7) {
		if err := db.Create(&schedule.AvailabilityRecord{
			DoctorID:    docs[0].ID,
			Day:         day,
			MorningOpen: true,
		}).Error; err != nil {
			return err
		}
	}

	inTwoDays := schedule.DateOnly(time.Now()).AddDate(0, 0, 2)
	booked := &appointment.Appointment{
		PatientID: demoPatient.ID,
		DoctorID:  docs[0].ID,
		Day:       inTwoDays,
		StartTime: schedule.ShiftMorning.StartTime(inTwoDays),
		Shift:     schedule.ShiftMorning,
		Status:    appointment.StatusBooked,
	}
	if err := db.Create(booked).Error; err != nil {
		return err
	}

	past := schedule.DateOnly(time.Now()).AddDate(0, 0, -14)
	done := &appointment.Appointment{
		PatientID: demoPatient.ID,
		DoctorID:  docs[0].ID,
		Day:       past,
		StartTime: schedule.ShiftMorning.StartTime(past),
		Shift:     schedule.ShiftMorning,
		Status:    appointment.StatusCompleted,
	}
	if err := db.Create(done).Error; err != nil {
		return err
	}
	if err := db.Create(&appointment.Treatment{
		AppointmentID: done.ID,
		Diagnosis:     "Abnormal heartbeats",
		Prescription:  "Exercise daily",
		Notes:         "Patient is recovering well.",
	}).Error; err != nil {
		return err
	}

	log.Info("demo data created", zap.String("patient_login", demoPatient.Email))
	return nil
}
