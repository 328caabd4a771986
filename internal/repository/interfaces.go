package repository

import (
	"context"

	"github.com/alexanderramin/orthoplan/internal/domain"
)

// PlanRepo stores plan snapshots in the local library.
type PlanRepo interface {
	Save(ctx context.Context, e *domain.LibraryEntry) error
	Get(ctx context.Context, id string) (*domain.LibraryEntry, error)
	// Resolve finds an entry by full id or unique id prefix.
	Resolve(ctx context.Context, idOrPrefix string) (*domain.LibraryEntry, error)
	List(ctx context.Context) ([]*domain.LibraryEntry, error)
	Delete(ctx context.Context, id string) error
}
