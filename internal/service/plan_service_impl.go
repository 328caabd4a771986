package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/importer"
	"github.com/alexanderramin/orthoplan/internal/nemo"
)

// FetcherFactory builds a remote client for one request's configuration.
type FetcherFactory func(cfg nemo.Config) nemo.Fetcher

// NewNemoFetcher is the production FetcherFactory.
func NewNemoFetcher(observer nemo.Observer) FetcherFactory {
	return func(cfg nemo.Config) nemo.Fetcher {
		return nemo.NewClient(cfg, observer)
	}
}

type planService struct {
	remote     nemo.Config
	newFetcher FetcherFactory
	observer   UseCaseObserver
}

// NewPlanService creates a PlanService. remote is the layered base
// configuration that per-request overrides are applied to.
func NewPlanService(remote nemo.Config, newFetcher FetcherFactory, observers ...UseCaseObserver) PlanService {
	return &planService{
		remote:     remote,
		newFetcher: newFetcher,
		observer:   useCaseObserverOrNoop(observers),
	}
}

func (s *planService) ParsePasted(ctx context.Context, text string) (p *domain.Plan, err error) {
	done := observe(ctx, s.observer, "parse-pasted", map[string]any{"bytes": len(text)})
	defer func() { done(err) }()

	return importer.ParsePlan([]byte(text))
}

func (s *planService) LoadFile(ctx context.Context, path string) (p *domain.Plan, err error) {
	done := observe(ctx, s.observer, "load-file", map[string]any{"path": path})
	defer func() { done(err) }()

	return importer.LoadFile(path)
}

// FetchRemote retrieves a document and converts it to 0-based step numbering.
// Nothing is returned on any failure.
func (s *planService) FetchRemote(ctx context.Context, req RemoteRequest) (p *domain.Plan, err error) {
	fields := map[string]any{}
	done := observe(ctx, s.observer, "fetch-remote", fields)
	defer func() { done(err) }()

	id, err := importer.ExtractDocumentID(req.Input)
	if err != nil {
		return nil, err
	}
	fields["document_id"] = id

	cfg := s.remote.WithOverrides(req.Overrides)
	fields["lookup"] = cfg.ResolveLookupURL()
	if s.newFetcher == nil {
		return nil, fmt.Errorf("remote retrieval is not configured")
	}

	raw, err := s.newFetcher(cfg).FetchDocument(ctx, id, req.Version)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", id, err)
	}
	if err := importer.ValidatePlan(raw); err != nil {
		return nil, fmt.Errorf("document %s: %w", id, err)
	}
	p = importer.ZeroBased(raw)
	p.Normalize()
	fields["upper_end_in"] = p.UpperEndIn
	fields["lower_end_in"] = p.LowerEndIn
	return p, nil
}

func (s *planService) Sample(context.Context) *domain.Plan {
	return importer.Sample()
}

func (s *planService) Export(ctx context.Context, p *domain.Plan, dir string) (path string, err error) {
	done := observe(ctx, s.observer, "export", map[string]any{"plan": p.ID})
	defer func() { done(err) }()

	if dir == "" {
		dir = "."
	}
	return importer.Export(p, dir)
}
