package scheduling

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Appointment, int, error)
	// Search applies "q" against patient name and doctor, and exact
	// matches for "status", "doctor" and "date".
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Appointment, int, error)
}
