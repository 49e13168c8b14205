package store

import (
	"context"
	"errors"

	"github.com/SalahNassar0/IT-Tickets-Analysis/internal/domain"
)

// ErrNotFound is returned when a dataset id is unknown or its session
// expired.
var ErrNotFound = errors.New("dataset not found")

// SessionStore holds one immutable dataset per upload for the lifetime of a
// session. Datasets are replaced wholesale, never mutated in place.
type SessionStore interface {
	Put(ctx context.Context, id string, dataset *domain.Dataset) error
	Get(ctx context.Context, id string) (*domain.Dataset, error)
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close()
}
