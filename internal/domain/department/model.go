package department

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Department maps to the departments table. Occupancy is derived from bed
// counts on read, never stored.
type Department struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Head         string    `db:"head" json:"head"`
	Floor        string    `db:"floor" json:"floor"`
	Phone        string    `db:"phone" json:"phone"`
	TotalBeds    int       `db:"total_beds" json:"total_beds"`
	OccupiedBeds int       `db:"occupied_beds" json:"occupied_beds"`
	StaffCount   int       `db:"staff_count" json:"staff_count"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// OccupancyPct returns the bed occupancy as a percentage of total beds.
// A department with no beds reports zero.
func (d *Department) OccupancyPct() float64 {
	if d.TotalBeds <= 0 {
		return 0
	}
	return float64(d.OccupiedBeds) / float64(d.TotalBeds) * 100
}

// MarshalJSON includes the derived occupancy so API consumers never have to
// recompute it (and never get a stale stored value).
func (d Department) MarshalJSON() ([]byte, error) {
	type alias Department
	return json.Marshal(struct {
		alias
		Occupancy float64 `json:"occupancy"`
	}{alias(d), d.OccupancyPct()})
}
