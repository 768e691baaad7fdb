package laboratory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Lab test statuses.
const (
	StatusPending         = "pending"
	StatusSampleCollected = "sample-collected"
	StatusProcessing      = "processing"
	StatusCompleted       = "completed"
	StatusCancelled       = "cancelled"
)

// Priorities, in increasing urgency.
const (
	PriorityRoutine = "routine"
	PriorityUrgent  = "urgent"
	PriorityStat    = "stat"
)

// ValidPriority reports whether p is a recognized priority.
func ValidPriority(p string) bool {
	return p == PriorityRoutine || p == PriorityUrgent || p == PriorityStat
}

// transitions is the test lifecycle. Completed and cancelled are terminal.
var transitions = map[string][]string{
	StatusPending:         {StatusSampleCollected, StatusCancelled},
	StatusSampleCollected: {StatusProcessing, StatusCancelled},
	StatusProcessing:      {StatusCompleted},
	StatusCompleted:       {},
	StatusCancelled:       {},
}

// CanTransition reports whether a test may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// categoryByType assigns the lab category for known test types. The order
// desk picks a test type; the category is derived, not entered.
var categoryByType = map[string]string{
	"Complete Blood Count":    "Hematology",
	"Blood Glucose":           "Biochemistry",
	"Lipid Panel":             "Biochemistry",
	"Liver Function Test":     "Biochemistry",
	"Kidney Function Test":    "Biochemistry",
	"Thyroid Panel":           "Endocrinology",
	"Urinalysis":              "Microbiology",
	"Blood Culture":           "Microbiology",
	"COVID-19 PCR":            "Molecular",
	"X-Ray Chest":             "Radiology",
	"MRI Brain":               "Radiology",
	"CT Scan Abdomen":         "Radiology",
	"Electrocardiogram":       "Cardiology",
	"Echocardiogram":          "Cardiology",
	"Histopathology":          "Pathology",
}

// CategoryOf derives the category for a test type. Unknown types fall into
// General.
func CategoryOf(testType string) string {
	if c, ok := categoryByType[testType]; ok {
		return c
	}
	return "General"
}

// Test maps to the lab_tests table.
type Test struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	PatientName     string     `db:"patient_name" json:"patient_name"`
	TestType        string     `db:"test_type" json:"test_type"`
	Category        string     `db:"category" json:"category"`
	RequestedBy     string     `db:"requested_by" json:"requested_by"`
	RequestDate     time.Time  `db:"request_date" json:"request_date"`
	Priority        string     `db:"priority" json:"priority"`
	SampleCollected bool       `db:"sample_collected" json:"sample_collected"`
	Status          string     `db:"status" json:"status"`
	Result          string     `db:"result" json:"result"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
}

// transitionErr standardizes rejection messages for illegal moves.
func transitionErr(from, to string) error {
	return fmt.Errorf("cannot move test from %q to %q", from, to)
}
