package pharmacy

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, m *Medicine) error
	GetByID(ctx context.Context, id uuid.UUID) (*Medicine, error)
	Update(ctx context.Context, m *Medicine) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Medicine, int, error)
	// Search applies "q" against name and generic name, and an exact
	// match for "category". Stock status is derived, so status filtering
	// happens in the service.
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Medicine, int, error)
}
