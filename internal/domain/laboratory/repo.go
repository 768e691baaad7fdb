package laboratory

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, t *Test) error
	GetByID(ctx context.Context, id uuid.UUID) (*Test, error)
	Update(ctx context.Context, t *Test) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Test, int, error)
	// Search applies "q" against patient name and test type, and exact
	// matches for "status", "category" and "priority".
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Test, int, error)
}
