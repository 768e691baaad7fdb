package staff

import (
	"time"

	"github.com/google/uuid"
)

// Doctor availability states.
const (
	AvailabilityAvailable    = "Available"
	AvailabilityInSurgery    = "In Surgery"
	AvailabilityConsultation = "In Consultation"
	AvailabilityOnLeave      = "On Leave"
)

// Availabilities lists the valid availability states.
var Availabilities = []string{
	AvailabilityAvailable, AvailabilityInSurgery, AvailabilityConsultation, AvailabilityOnLeave,
}

// ValidAvailability reports whether a is a recognized availability state.
func ValidAvailability(a string) bool {
	for _, v := range Availabilities {
		if v == a {
			return true
		}
	}
	return false
}

// Doctor maps to the doctors table.
type Doctor struct {
	ID             uuid.UUID `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Department     string    `db:"department" json:"department"`
	Experience     int       `db:"experience" json:"experience"`
	Education      string    `db:"education" json:"education"`
	Rating         float64   `db:"rating" json:"rating"`
	PatientCount   int       `db:"patient_count" json:"patient_count"`
	Availability   string    `db:"availability" json:"availability"`
	Phone          string    `db:"phone" json:"phone"`
	Email          string    `db:"email" json:"email"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
