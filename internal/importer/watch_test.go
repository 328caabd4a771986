package importer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/orthoplan/internal/domain"
	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"first","attachList":[]}`), 0o644))

	loaded := make(chan *domain.Plan, 4)
	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(p *domain.Plan) { loaded <- p }, func(err error) { errs <- err })
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"id":"second","attachList":[]}`), 0o644))

	select {
	case p := <-loaded:
		require.Equal(t, "second", p.ID)
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_ReportsParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"first","attachList":[]}`), 0o644))

	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(*domain.Plan) {}, func(err error) { errs <- err })
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.WriteFile(path, []byte(`{"id":`), 0o644))

	select {
	case err := <-errs:
		require.True(t, IsValidationError(err))
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for parse error")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"first","attachList":[]}`), 0o644))

	loaded := make(chan *domain.Plan, 4)
	w, err := NewWatcher(path, func(p *domain.Plan) { loaded <- p }, nil)
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))

	select {
	case <-loaded:
		t.Fatal("reload triggered by unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
	w.Stop()
	w.Stop()
}

func TestWatcher_StartFailureClosesWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "plan.json")

	w, err := NewWatcher(path, func(*domain.Plan) {}, nil)
	require.NoError(t, err)

	err = w.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing")

	// The underlying fsnotify watcher no longer accepts paths.
	assert.ErrorIs(t, w.watcher.Add(t.TempDir()), fsnotify.ErrClosed)
	w.Stop()
}

func TestWatcher_Relevant(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	w, err := NewWatcher(path, func(*domain.Plan) {}, nil)
	require.NoError(t, err)
	defer w.Stop()

	tests := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{name: "write", ev: fsnotify.Event{Name: path, Op: fsnotify.Write}, want: true},
		{name: "create from rename over", ev: fsnotify.Event{Name: path, Op: fsnotify.Create}, want: true},
		{name: "renamed away", ev: fsnotify.Event{Name: path, Op: fsnotify.Rename}},
		{name: "removed", ev: fsnotify.Event{Name: path, Op: fsnotify.Remove}},
		{name: "chmod", ev: fsnotify.Event{Name: path, Op: fsnotify.Chmod}},
		{name: "other file", ev: fsnotify.Event{Name: filepath.Join(dir, "other.json"), Op: fsnotify.Write}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.relevant(tt.ev))
		})
	}
}

func TestWatcher_RenameAwayDoesNotReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"id":"first","attachList":[]}`), 0o644))

	loaded := make(chan *domain.Plan, 4)
	errs := make(chan error, 4)
	w, err := NewWatcher(path, func(p *domain.Plan) { loaded <- p }, func(err error) { errs <- err })
	require.NoError(t, err)
	w.SetDebounce(10 * time.Millisecond)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	require.NoError(t, os.Rename(path, filepath.Join(dir, "plan.bak")))

	select {
	case <-loaded:
		t.Fatal("reload triggered by rename away")
	case err := <-errs:
		t.Fatalf("unexpected error: %v", err)
	case <-time.After(200 * time.Millisecond):
	}
}
