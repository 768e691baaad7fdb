package emergency

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, e *Case) error
	GetByID(ctx context.Context, id uuid.UUID) (*Case, error)
	Update(ctx context.Context, e *Case) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Case, int, error)
	// Search applies "q" against name and condition, and exact matches
	// for "triage" and "status". Results are queue-ordered: triage rank
	// first, then arrival time.
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Case, int, error)
}
