// Package testing holds helpers shared by integration tests that need a real
// PostgreSQL with the telemetry_legacy table.
package testing

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/testcontainers/testcontainers-go"
	"github.com/vvka-141/pgtelemetry/internal/db"
	"github.com/vvka-141/pgtelemetry/internal/testinfra"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

var (
	testContainerOnce sync.Once
	testContainerConn string
	testContainerErr  error
)

// startContainer is swapped out by tests of this package.
var startContainer = func(ctx context.Context) (string, error) {
	container, err := testinfra.StartPostgres(ctx)
	if err != nil {
		return "", err
	}
	return container.ConnString, nil
}

func getOrStartTestContainer() (string, error) {
	testContainerOnce.Do(func() {
		testContainerConn, testContainerErr = startRecovering(context.Background(), startContainer)
	})
	return testContainerConn, testContainerErr
}

// startRecovering runs start and turns a panic into an error. The Docker
// provider panics instead of failing when no daemon socket can be found.
func startRecovering(ctx context.Context, start func(context.Context) (string, error)) (conn string, err error) {
	defer func() {
		if r := recover(); r != nil {
			conn = ""
			err = fmt.Errorf("container provider panicked: %v", r)
		}
	}()
	return start(ctx)
}

// GetTestConnectionString returns the test database connection string.
// Priority: TELEMETRY_TEST_CONN env var > auto-started testcontainer > skip test.
func GetTestConnectionString(t *testing.T) string {
	t.Helper()

	if connString := os.Getenv("TELEMETRY_TEST_CONN"); connString != "" {
		ensureSchema(t, connString)
		return connString
	}

	testcontainers.SkipIfProviderIsNotHealthy(t)

	connString, err := getOrStartTestContainer()
	if err != nil {
		t.Skipf("TELEMETRY_TEST_CONN not set and Docker unavailable: %v", err)
	}
	return connString
}

// SkipIfShort skips the test if running in short mode (-short flag).
func SkipIfShort(t *testing.T) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
}

// RequireDatabase combines SkipIfShort and GetTestConnectionString for convenience.
// Returns the test connection string if available, otherwise skips the test.
func RequireDatabase(t *testing.T) string {
	t.Helper()

	SkipIfShort(t)
	return GetTestConnectionString(t)
}

// ConnectionConfig parses connString for use with db.NewConnector.
func ConnectionConfig(t *testing.T, connString string) *telemetry.ConnectionConfig {
	t.Helper()

	cfg, err := db.ParseConnectionString(connString)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// Connect opens a plain connection for assertions. It is closed when the test ends.
func Connect(t *testing.T, connString string) *pgx.Conn {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() {
		conn.Close(context.Background()) //nolint:errcheck
	})
	return conn
}

// CountRowsFrom returns how many telemetry_legacy rows came from sourceFile.
// Tests share one table, so they filter by their own artifact name.
func CountRowsFrom(t *testing.T, connString, sourceFile string) int {
	t.Helper()

	var n int
	err := Connect(t, connString).QueryRow(context.Background(),
		"SELECT count(*) FROM telemetry_legacy WHERE source_file = $1", sourceFile).Scan(&n)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	return n
}

func ensureSchema(t *testing.T, connString string) {
	t.Helper()

	if _, err := Connect(t, connString).Exec(context.Background(), testinfra.Schema); err != nil {
		t.Fatalf("Failed to create telemetry_legacy: %v", err)
	}
}

// ForgetSource deletes rows left behind by an earlier run that used the same
// artifact name, so a long-lived TELEMETRY_TEST_CONN database does not skew counts.
func ForgetSource(t *testing.T, connString, sourceFile string) {
	t.Helper()

	_, err := Connect(t, connString).Exec(context.Background(),
		"DELETE FROM telemetry_legacy WHERE source_file = $1", sourceFile)
	if err != nil {
		t.Fatalf("Failed to delete rows for %s: %v", sourceFile, err)
	}
}
