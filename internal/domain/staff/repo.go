package staff

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id uuid.UUID) (*Doctor, error)
	Update(ctx context.Context, d *Doctor) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Doctor, int, error)
	// Search applies a conjunction of filters: "q" matches name and
	// specialization as a case-insensitive substring, "department" and
	// "availability" are exact matches.
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Doctor, int, error)
}
