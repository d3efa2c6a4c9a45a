package db

import (
	"context"
	"os"
	"secureauth/internal/db/migrations"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
)

// CreateTestPool connects to TEST_POSTGRESQL_URL and applies migrations.
// The test is skipped when the variable is not set.
func CreateTestPool(t testing.TB) *pgxpool.Pool {
	connString := os.Getenv("TEST_POSTGRESQL_URL")
	if connString == "" {
		t.Skip("TEST_POSTGRESQL_URL is not set.")
	}
	if err := migrations.Up(connString); err != nil {
		t.Fatalf("Could not apply DB migrations: %v", err)
	}

	pool, err := pgxpool.Connect(context.Background(), connString)
	if err != nil {
		t.Fatalf("Could not connect to the database: %v", err)
	}
	return pool
}

func TruncateTables(t testing.TB, pool *pgxpool.Pool) {
	_, err := pool.Exec(context.Background(), "TRUNCATE accounts")
	if err != nil {
		t.Fatalf("Could not truncate DB tables: %v", err)
	}
}
