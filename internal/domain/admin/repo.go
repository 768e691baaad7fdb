package admin

import "context"

// Repository stores the singleton settings record. Get never fails on an
// empty store; it returns the defaults instead.
type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
