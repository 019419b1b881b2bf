package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/trip-builder/migrations"
	"github.com/pkordes/trip-builder/testutil"
)

// TestMain applies all pending migrations to the test database before any
// integration test runs. Without TEST_DATABASE_URL only the pgxmock tests
// do anything; the integration tests skip themselves.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(dsn)
	if _, err := migrations.Up(context.Background(), db); err != nil {
		db.Close()
		log.Fatalf("TestMain: run migrations: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}
