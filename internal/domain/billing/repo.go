package billing

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*Invoice, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]*Invoice, int, error)
	// Search applies "q" against patient name and invoice id, and
	// "patient_id" as an exact match. Status filtering happens in the
	// service because payment status is derived.
	Search(ctx context.Context, params map[string]string, limit, offset int) ([]*Invoice, int, error)
}
