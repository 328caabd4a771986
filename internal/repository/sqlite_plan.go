package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/orthoplan/internal/db"
	"github.com/alexanderramin/orthoplan/internal/domain"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

const planColumns = `id, label, source, document, saved_at, updated_at`

// Save inserts or replaces the snapshot for e.ID. SavedAt of an existing row
// is kept; UpdatedAt is taken from e.
func (r *SQLitePlanRepo) Save(ctx context.Context, e *domain.LibraryEntry) error {
	if e.Plan == nil {
		return fmt.Errorf("saving plan %s: no document", e.ID)
	}
	doc, err := json.Marshal(e.Plan)
	if err != nil {
		return fmt.Errorf("encoding plan %s: %w", e.ID, err)
	}
	query := `INSERT INTO plans (id, setup_name, label, source, upper_end_in, lower_end_in, document, saved_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			setup_name = excluded.setup_name,
			label = excluded.label,
			source = excluded.source,
			upper_end_in = excluded.upper_end_in,
			lower_end_in = excluded.lower_end_in,
			document = excluded.document,
			updated_at = excluded.updated_at`
	_, err = r.db.ExecContext(ctx, query,
		e.ID,
		e.Plan.SetupName,
		e.Label,
		string(e.Source),
		e.Plan.UpperEndIn,
		e.Plan.LowerEndIn,
		string(doc),
		e.SavedAt.UTC().Format(time.RFC3339Nano),
		e.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("saving plan %s: %w", e.ID, err)
	}
	return nil
}

func (r *SQLitePlanRepo) Get(ctx context.Context, id string) (*domain.LibraryEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+planColumns+` FROM plans WHERE id = ?`, id)
	e, err := scanPlan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return e, err
}

func (r *SQLitePlanRepo) Resolve(ctx context.Context, idOrPrefix string) (*domain.LibraryEntry, error) {
	key := strings.TrimSpace(idOrPrefix)
	if key == "" {
		return nil, fmt.Errorf("plan id: %w", ErrNotFound)
	}
	e, err := r.Get(ctx, key)
	if err == nil || !errors.Is(err, ErrNotFound) {
		return e, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+planColumns+` FROM plans WHERE id LIKE ? ESCAPE '\' ORDER BY id LIMIT 2`,
		escapeLike(key)+"%")
	if err != nil {
		return nil, fmt.Errorf("resolving plan %s: %w", key, err)
	}
	defer rows.Close()

	var matches []*domain.LibraryEntry
	for rows.Next() {
		e, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("resolving plan %s: %w", key, err)
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("plan %s: %w", key, ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("plan %s: %w", key, ErrAmbiguous)
	}
}

// List returns every entry, most recently updated first.
func (r *SQLitePlanRepo) List(ctx context.Context) ([]*domain.LibraryEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+planColumns+` FROM plans ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var entries []*domain.LibraryEntry
	for rows.Next() {
		e, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return entries, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting plan %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(s rowScanner) (*domain.LibraryEntry, error) {
	var (
		e                  domain.LibraryEntry
		source, doc        string
		savedAt, updatedAt string
	)
	if err := s.Scan(&e.ID, &e.Label, &source, &doc, &savedAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	e.Source = domain.Source(source)

	var p domain.Plan
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decoding stored plan %s: %w", e.ID, err)
	}
	p.Normalize()
	e.Plan = &p

	var err error
	if e.SavedAt, err = time.Parse(time.RFC3339Nano, savedAt); err != nil {
		return nil, fmt.Errorf("parsing saved_at of plan %s: %w", e.ID, err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at of plan %s: %w", e.ID, err)
	}
	return &e, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
