package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/orthoplan/internal/db"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/importer"
	"github.com/alexanderramin/orthoplan/internal/repository"
	"github.com/google/uuid"
)

type libraryService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
	now      func() time.Time
}

func NewLibraryService(plans repository.PlanRepo, uow db.UnitOfWork, observers ...UseCaseObserver) LibraryService {
	return &libraryService{
		plans:    plans,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Save stores a snapshot of p. A plan without an id is given a fresh one so
// it can be found again.
func (s *libraryService) Save(ctx context.Context, p *domain.Plan, source domain.Source, label string) (entry *domain.LibraryEntry, err error) {
	done := observe(ctx, s.observer, "library-save", map[string]any{"source": string(source)})
	defer func() { done(err) }()

	entry = s.newEntry(p, source, label)
	if err := s.plans.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *libraryService) newEntry(p *domain.Plan, source domain.Source, label string) *domain.LibraryEntry {
	snapshot := p.Clone()
	snapshot.Normalize()
	if snapshot.ID == "" {
		snapshot.ID = uuid.New().String()
	}
	now := s.now()
	return &domain.LibraryEntry{
		ID:        snapshot.ID,
		Label:     label,
		Source:    source,
		Plan:      snapshot,
		SavedAt:   now,
		UpdatedAt: now,
	}
}

func (s *libraryService) Get(ctx context.Context, idOrPrefix string) (*domain.LibraryEntry, error) {
	return s.plans.Resolve(ctx, idOrPrefix)
}

func (s *libraryService) List(ctx context.Context) ([]*domain.LibraryEntry, error) {
	return s.plans.List(ctx)
}

func (s *libraryService) Delete(ctx context.Context, idOrPrefix string) (err error) {
	done := observe(ctx, s.observer, "library-delete", map[string]any{"key": idOrPrefix})
	defer func() { done(err) }()

	entry, err := s.plans.Resolve(ctx, idOrPrefix)
	if err != nil {
		return err
	}
	return s.plans.Delete(ctx, entry.ID)
}

func (s *libraryService) ImportFiles(ctx context.Context, paths []string) (entries []*domain.LibraryEntry, err error) {
	fields := map[string]any{"files": len(paths)}
	done := observe(ctx, s.observer, "library-import", fields)
	defer func() { done(err) }()

	// Parse everything first so a bad file aborts before any write.
	plans := make([]*domain.Plan, 0, len(paths))
	for _, path := range paths {
		p, err := importer.LoadFile(path)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}

	entries = make([]*domain.LibraryEntry, 0, len(plans))
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLitePlanRepo(tx)
		for i, p := range plans {
			entry := s.newEntry(p, domain.SourceFile, "")
			if err := repo.Save(ctx, entry); err != nil {
				return fmt.Errorf("importing %s: %w", paths[i], err)
			}
			entries = append(entries, entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["saved"] = len(entries)
	return entries, nil
}
