// Package testutil provides shared test fixtures and a throwaway snapshot
// database for command and integration tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/carquote/internal/service"
	"github.com/Veraticus/carquote/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	Path    string
	t       *testing.T
}

// SetupTestDB creates a migrated database file under t.TempDir() and saves
// snapshot into it when snapshot is non-nil. The database is closed when the
// test ends.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.SampleSnapshot())
//	viper.Set("database.path", db.Path)
func SetupTestDB(t *testing.T, snapshot *service.Snapshot) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Snapshot: snapshot})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Snapshot       *service.Snapshot
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "carquote.db")
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	if opts.Snapshot != nil {
		if err := store.SaveSnapshot(ctx, *opts.Snapshot); err != nil {
			t.Fatalf("failed to seed snapshot: %v", err)
		}
	}

	// Run custom setup
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	// Register cleanup
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	return &TestDB{
		Storage: store,
		Path:    dbPath,
		t:       t,
	}
}

// MustGetLastSync returns the stored sync info or fails the test.
func (db *TestDB) MustGetLastSync() *service.SyncInfo {
	db.t.Helper()
	info, err := db.Storage.GetLastSync(context.Background())
	if err != nil {
		db.t.Fatalf("failed to get last sync: %v", err)
	}
	return info
}
