// Package testdb provides database helpers for integration tests. Tests
// get a shared connection with the schema migrated, and run inside a
// transaction that is rolled back afterwards so they never see each
// other's data.
package testdb

import (
	"database/sql"
	"os"
	"sync"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mhutchins/taskvault-api/migrations"
	"github.com/pressly/goose/v3"
)

// envDatabaseURL names the environment variable integration tests read
// their connection string from.
const envDatabaseURL = "TASKVAULT_TEST_DATABASE_URL"

var (
	openOnce sync.Once
	shared   *sql.DB
	openErr  error
)

// GetTestDB returns a migrated database connection shared across tests.
// It skips the calling test when no test database is configured.
func GetTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv(envDatabaseURL)
	if url == "" {
		t.Skipf("skipping: %s not set", envDatabaseURL)
	}

	openOnce.Do(func() {
		shared, openErr = open(url)
	})
	if openErr != nil {
		t.Fatalf("failed to set up test database: %v", openErr)
	}

	return shared
}

func open(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return nil, err
	}
	if err := goose.Up(db, "."); err != nil {
		return nil, err
	}

	return db, nil
}

// WithTx runs fn inside a transaction that is always rolled back, keeping
// each test isolated from the others.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("failed to begin test transaction: %v", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
			t.Errorf("failed to roll back test transaction: %v", err)
		}
	}()

	fn(t, tx)
}
