package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesPlansTable(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(plans)`)
	require.NoError(t, err)
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var (
			cid     int
			name    string
			ctype   string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &name, &ctype, &notNull, &dflt, &pk))
		cols = append(cols, name)
	}
	require.NoError(t, rows.Err())

	assert.ElementsMatch(t, []string{
		"id", "setup_name", "source", "upper_end_in", "lower_end_in",
		"document", "saved_at", "updated_at", "label",
	}, cols)
}

func TestMigrate_SourceConstraint(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO plans (id, source, document, saved_at, updated_at) VALUES ('a', 'carrier-pigeon', '{}', 'x', 'x')`)
	assert.Error(t, err)

	_, err = db.Exec(`INSERT INTO plans (id, source, document, saved_at, updated_at) VALUES ('b', 'remote', '{}', 'x', 'x')`)
	assert.NoError(t, err)
}

func TestMigrate_UpgradeAddsLabel(t *testing.T) {
	db, err := sql.Open("sqlite", MemoryPath)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE plans (
		id           TEXT PRIMARY KEY,
		setup_name   TEXT NOT NULL DEFAULT '',
		source       TEXT NOT NULL DEFAULT 'paste',
		upper_end_in INTEGER NOT NULL DEFAULT 0,
		lower_end_in INTEGER NOT NULL DEFAULT 0,
		document     TEXT NOT NULL,
		saved_at     TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO plans (id, document, saved_at, updated_at) VALUES ('old', '{"id":"old"}', 't0', 't0')`)
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	var label, doc string
	require.NoError(t, db.QueryRow(`SELECT label, document FROM plans WHERE id = 'old'`).Scan(&label, &doc))
	assert.Equal(t, "", label)
	assert.Equal(t, `{"id":"old"}`, doc)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := t.TempDir() + "/nested/dir/library.db"

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
