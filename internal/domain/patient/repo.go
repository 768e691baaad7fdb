package patient

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p *Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Patient, int, error)
	// Search applies a conjunction of filters: "q" is a case-insensitive
	// substring match against name and id, "status" and "department" are
	// exact matches.
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Patient, int, error)
}
