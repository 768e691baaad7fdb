package scheduling

import (
	"time"

	"github.com/google/uuid"
)

// Appointment statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
)

// Appointment types offered by the front desk.
const (
	TypeConsultation = "Consultation"
	TypeFollowUp     = "Follow-up"
	TypeCheckup      = "Check-up"
	TypeEmergency    = "Emergency"
)

// Appointment maps to the appointments table. Date is the calendar day in
// ISO form (2006-01-02) and Time is the wall-clock start (15:04); they are
// kept separate because the front desk books and filters by day.
type Appointment struct {
	ID          uuid.UUID `db:"id" json:"id"`
	PatientName string    `db:"patient_name" json:"patient_name"`
	Doctor      string    `db:"doctor" json:"doctor"`
	Type        string    `db:"type" json:"type"`
	Date        string    `db:"date" json:"date"`
	Time        string    `db:"time" json:"time"`
	Duration    int       `db:"duration" json:"duration"`
	IsOnline    bool      `db:"is_online" json:"is_online"`
	Status      string    `db:"status" json:"status"`
	Notes       string    `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
