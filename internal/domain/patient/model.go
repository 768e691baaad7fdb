package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient admission statuses.
const (
	StatusStable      = "Stable"
	StatusInTreatment = "In Treatment"
	StatusCritical    = "Critical"
	StatusDischarged  = "Discharged"
)

// Statuses lists the valid admission statuses.
var Statuses = []string{StatusStable, StatusInTreatment, StatusCritical, StatusDischarged}

// ValidStatus reports whether s is a recognized admission status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Patient maps to the patient table.
type Patient struct {
	ID         uuid.UUID  `db:"id" json:"id"`
	Name       string     `db:"name" json:"name"`
	Age        int        `db:"age" json:"age"`
	Gender     string     `db:"gender" json:"gender"`
	Phone      string     `db:"phone" json:"phone"`
	Email      string     `db:"email" json:"email"`
	BloodType  string     `db:"blood_type" json:"blood_type"`
	Department string     `db:"department" json:"department"`
	Status     string     `db:"status" json:"status"`
	LastVisit  *time.Time `db:"last_visit" json:"last_visit,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}
