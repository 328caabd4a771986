package repository

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/orthoplan/internal/db"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFileTestDB creates a file-backed library so every pooled connection
// shares state, which :memory: does not.
func newFileTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestPlanRepo_ConcurrentReadsDuringWrites(t *testing.T) {
	database := newFileTestDB(t)
	repo := NewSQLitePlanRepo(database)
	ctx := context.Background()

	const writes = 20
	var wg sync.WaitGroup
	errs := make(chan error, writes*2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < writes; i++ {
			p := testutil.NewTestPlan(testutil.WithPlanID(fmt.Sprintf("plan-%02d", i)))
			if err := repo.Save(ctx, testutil.NewTestEntry(p, domain.SourcePaste)); err != nil {
				errs <- err
			}
		}
	}()
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < writes/2; i++ {
				if _, err := repo.List(ctx); err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, writes)
}
