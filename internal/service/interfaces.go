package service

import (
	"context"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/nemo"
)

// RemoteRequest identifies a remote document and any per-request overrides.
type RemoteRequest struct {
	// Input is a bare document id or any text containing one, such as a viewer URL.
	Input     string
	Version   *int
	Overrides nemo.Overrides
}

// PlanService turns every ingestion path into a validated plan and exports plans.
type PlanService interface {
	ParsePasted(ctx context.Context, text string) (*domain.Plan, error)
	LoadFile(ctx context.Context, path string) (*domain.Plan, error)
	FetchRemote(ctx context.Context, req RemoteRequest) (*domain.Plan, error)
	Sample(ctx context.Context) *domain.Plan
	Export(ctx context.Context, p *domain.Plan, dir string) (string, error)
}

// LibraryService manages saved plan snapshots.
type LibraryService interface {
	Save(ctx context.Context, p *domain.Plan, source domain.Source, label string) (*domain.LibraryEntry, error)
	Get(ctx context.Context, idOrPrefix string) (*domain.LibraryEntry, error)
	List(ctx context.Context) ([]*domain.LibraryEntry, error)
	Delete(ctx context.Context, idOrPrefix string) error
	// ImportFiles saves every file in one transaction: all or none.
	ImportFiles(ctx context.Context, paths []string) ([]*domain.LibraryEntry, error)
}
