package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/orthoplan/internal/db"
	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/alexanderramin/orthoplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanRepo_SaveAndGet(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestPlan(
		testutil.WithBounds(15, 46),
		testutil.WithAttachment("16", 0, 15),
		testutil.WithIpr("36", 4, 0.25, 0),
	)
	entry := testutil.NewTestEntry(p, domain.SourceRemote)
	entry.Label = "first visit"
	require.NoError(t, repo.Save(ctx, entry))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, "first visit", got.Label)
	assert.Equal(t, domain.SourceRemote, got.Source)
	assert.Equal(t, p, got.Plan)
	assert.WithinDuration(t, entry.SavedAt, got.SavedAt, time.Millisecond)
}

func TestPlanRepo_Get_NotFound(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPlanRepo_SaveReplacesSnapshotAndKeepsSavedAt(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestPlan(testutil.WithBounds(10, 12))
	first := testutil.NewTestEntry(p, domain.SourcePaste)
	first.SavedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	first.UpdatedAt = first.SavedAt
	require.NoError(t, repo.Save(ctx, first))

	edited := p.Clone()
	edited.LowerEndIn = 13
	second := testutil.NewTestEntry(edited, domain.SourceFile)
	second.SavedAt = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	second.UpdatedAt = second.SavedAt
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 13, got.Plan.LowerEndIn)
	assert.Equal(t, domain.SourceFile, got.Source)
	assert.True(t, got.SavedAt.Equal(first.SavedAt), "saved_at is kept on replace")
	assert.True(t, got.UpdatedAt.Equal(second.UpdatedAt))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPlanRepo_SaveWithoutPlan(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))

	err := repo.Save(context.Background(), &domain.LibraryEntry{ID: "x"})
	assert.Error(t, err)
}

func TestPlanRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"aaa", "bbb", "ccc"} {
		e := testutil.NewTestEntry(testutil.NewTestPlan(testutil.WithPlanID(id)), domain.SourcePaste)
		e.UpdatedAt = base.Add(time.Duration(i) * time.Hour)
		require.NoError(t, repo.Save(ctx, e))
	}

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "ccc", all[0].ID)
	assert.Equal(t, "bbb", all[1].ID)
	assert.Equal(t, "aaa", all[2].ID)
}

func TestPlanRepo_List_Empty(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))

	all, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPlanRepo_Resolve(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for _, id := range []string{
		"57a2a6a4-bcf6-4318-be89-8facb903502d",
		"57a2ffff-0000-4318-be89-8facb903502d",
		"9c1d2e3f-0000-4000-8000-000000000000",
		"a_b",
	} {
		require.NoError(t, repo.Save(ctx, testutil.NewTestEntry(testutil.NewTestPlan(testutil.WithPlanID(id)), domain.SourcePaste)))
	}

	tests := []struct {
		key     string
		wantID  string
		wantErr error
	}{
		{"57a2a6a4-bcf6-4318-be89-8facb903502d", "57a2a6a4-bcf6-4318-be89-8facb903502d", nil},
		{"57a2a6", "57a2a6a4-bcf6-4318-be89-8facb903502d", nil},
		{"9c1d", "9c1d2e3f-0000-4000-8000-000000000000", nil},
		{"57a2", "", ErrAmbiguous},
		{"ffff", "", ErrNotFound},
		{"a%", "", ErrNotFound},
		{"a_", "a_b", nil},
		{"  ", "", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := repo.Resolve(ctx, tt.key)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestPlanRepo_Delete(t *testing.T) {
	repo := NewSQLitePlanRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	p := testutil.NewTestPlan()
	require.NoError(t, repo.Save(ctx, testutil.NewTestEntry(p, domain.SourceSample)))

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err := repo.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, p.ID), ErrNotFound)
}

func TestPlanRepo_WithinTx(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	a := testutil.NewTestPlan()
	b := testutil.NewTestPlan()
	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLitePlanRepo(tx)
		if err := repo.Save(ctx, testutil.NewTestEntry(a, domain.SourceFile)); err != nil {
			return err
		}
		if err := repo.Save(ctx, testutil.NewTestEntry(b, domain.SourceFile)); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	all, err := NewSQLitePlanRepo(database).List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rolled back saves leave no rows")
}
