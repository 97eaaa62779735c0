package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/clinicbook/clinicbook/internal/domain/schedule"
)

// State transitions are one-directional:
//
//	booked → cancelled
//	booked → completed
//
// Nothing leaves cancelled or completed; a slot freed by cancellation is
// reopened by the absence of a booked row, never by reviving the old one.
type Status string

const (
	StatusBooked    Status = "booked"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBooked, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Appointment is one visit slot claimed by a patient. At most one row per
// (doctor, day, start time) may hold status booked at any time; cancelled
// and completed rows may pile up on the same tuple.
type Appointment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	PatientID uuid.UUID `gorm:"column:patient_id;type:uuid;not null;index"`
	DoctorID  uuid.UUID `gorm:"column:doctor_id;type:uuid;not null;index"`

	Day       time.Time      `gorm:"column:visit_date;type:date;not null;index"`
	StartTime time.Time      `gorm:"column:visit_time;not null"`
	Shift     schedule.Shift `gorm:"column:shift;type:varchar(10);not null"`
	Status    Status         `gorm:"column:status;type:varchar(20);not null;default:'booked';index"`

	CancelledAt *time.Time `gorm:"column:cancelled_at"`
	CancelledBy *uuid.UUID `gorm:"column:cancelled_by;type:uuid"`
	CompletedAt *time.Time `gorm:"column:completed_at"`

	// Treatment is the optional 1:1 outcome record; it is deleted with
	// its appointment.
	Treatment *Treatment `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE"`
}

func (Appointment) TableName() string {
	return "clinical.appointments"
}

func (a *Appointment) CanTransitionTo(newStatus Status) bool {
	allowed := map[Status][]Status{
		StatusBooked:    {StatusCancelled, StatusCompleted},
		StatusCancelled: {},
		StatusCompleted: {},
	}
	for _, s := range allowed[a.Status] {
		if s == newStatus {
			return true
		}
	}
	return false
}

func (a *Appointment) Cancel(cancelledBy uuid.UUID) error {
	if !a.CanTransitionTo(StatusCancelled) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	a.Status = StatusCancelled
	a.CancelledAt = &now
	a.CancelledBy = &cancelledBy
	return nil
}

func (a *Appointment) Complete() error {
	if !a.CanTransitionTo(StatusCompleted) {
		return ErrInvalidStatusTransition
	}
	now := time.Now()
	a.Status = StatusCompleted
	a.CompletedAt = &now
	return nil
}

// Treatment carries the doctor's recorded outcome for one appointment.
// Recording a treatment is what marks the visit done.
type Treatment struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	AppointmentID uuid.UUID `gorm:"column:appointment_id;type:uuid;not null;uniqueIndex"`

	Diagnosis    string `gorm:"column:diagnosis;type:text;not null"`
	Prescription string `gorm:"column:prescription;type:text"`
	TestsOrdered string `gorm:"column:tests_ordered;type:text"`
	Medicines    string `gorm:"column:medicines;type:text"`
	Notes        string `gorm:"column:notes;type:text"`
}

func (Treatment) TableName() string {
	return "clinical.treatments"
}

type TreatmentInput struct {
	Diagnosis    string
	Prescription string
	TestsOrdered string
	Medicines    string
	Notes        string
}

// ListOrder selects the sort direction for appointment list queries.
type ListOrder string

const (
	// OrderUpcoming sorts (day asc, time asc) for forward-looking views.
	OrderUpcoming ListOrder = "upcoming"
	// OrderHistory sorts (day desc, time desc) for past views.
	OrderHistory ListOrder = "history"
)

type ListQuery struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Statuses  []Status
	FromDay   *time.Time
	Order     ListOrder
}
