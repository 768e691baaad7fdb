package emergency

import (
	"time"

	"github.com/google/uuid"
)

// Triage levels, most urgent first.
const (
	TriageRed    = "Red"
	TriageOrange = "Orange"
	TriageYellow = "Yellow"
	TriageGreen  = "Green"
)

// triageRank orders the queue: lower rank is seen first.
var triageRank = map[string]int{
	TriageRed:    0,
	TriageOrange: 1,
	TriageYellow: 2,
	TriageGreen:  3,
}

// ValidTriage reports whether t is a recognized triage level.
func ValidTriage(t string) bool {
	_, ok := triageRank[t]
	return ok
}

// TriageRank returns the queue rank for a triage level; unknown levels sort
// last.
func TriageRank(t string) int {
	if r, ok := triageRank[t]; ok {
		return r
	}
	return len(triageRank)
}

// Emergency case statuses.
const (
	StatusWaiting     = "Waiting"
	StatusInTreatment = "In Treatment"
	StatusStabilized  = "Stabilized"
	StatusDischarged  = "Discharged"
)

// Statuses lists the valid case statuses.
var Statuses = []string{StatusWaiting, StatusInTreatment, StatusStabilized, StatusDischarged}

// ValidStatus reports whether s is a recognized case status.
func ValidStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// Vitals captured at intake. BP is recorded as written ("120/80"), heart
// rate in bpm, SpO2 as a percentage.
type Vitals struct {
	BP   string `db:"bp" json:"bp"`
	HR   int    `db:"hr" json:"hr"`
	SpO2 int    `db:"spo2" json:"spo2"`
}

// Case maps to the emergency_cases table.
type Case struct {
	ID         uuid.UUID `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Age        int       `db:"age" json:"age"`
	Gender     string    `db:"gender" json:"gender"`
	Condition  string    `db:"condition" json:"condition"`
	Symptoms   []string  `db:"symptoms" json:"symptoms"`
	Triage     string    `db:"triage" json:"triage"`
	Vitals     Vitals    `db:"vitals" json:"vitals"`
	AssignedTo string    `db:"assigned_to" json:"assigned_to"`
	Status     string    `db:"status" json:"status"`
	ArrivedAt  time.Time `db:"arrived_at" json:"arrived_at"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
