package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "data", "test.db")}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrator_Run(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	fsys := fstest.MapFS{
		"migrations/002_add_notes.sql":      {Data: []byte("ALTER TABLE items ADD COLUMN notes TEXT;")},
		"migrations/001_initial_schema.sql": {Data: []byte("CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT);")},
		"migrations/README.md":              {Data: []byte("ignored")},
	}

	m := NewMigrator(db, zap.NewNop())
	require.NoError(t, m.Run(ctx, fsys, "migrations"))
	// a second run is a no-op
	require.NoError(t, m.Run(ctx, fsys, "migrations"))

	applied, err := m.AppliedVersions(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{1: true, 2: true}, applied)

	_, err = db.ExecContext(ctx, "INSERT INTO items (name, notes) VALUES ('a', 'b')")
	assert.NoError(t, err)
}

func TestLoadMigrations_RejectsBadNames(t *testing.T) {
	fsys := fstest.MapFS{"m/initial.sql": {Data: []byte("SELECT 1;")}}

	_, err := LoadMigrations(fsys, "m")

	assert.Error(t, err)
}

func TestDB_WithTransaction(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	_, err := db.ExecContext(ctx, "CREATE TABLE items (name TEXT)")
	require.NoError(t, err)

	boom := errors.New("boom")
	err = db.WithTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "INSERT INTO items VALUES ('rolled back')"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	require.NoError(t, db.WithTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "INSERT INTO items VALUES ('kept')")
		return err
	}))

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM items").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNew_InMemory(t *testing.T) {
	db, err := New(Config{Path: ":memory:"}, zap.NewNop())
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Ping())

	_, err = New(Config{}, zap.NewNop())
	assert.Error(t, err)
}
