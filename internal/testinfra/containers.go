package testinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	PostgresImage    = "postgres:17-alpine"
	PostgresUser     = "monouser"
	PostgresPassword = "monopass"
	PostgresDB       = "monolith"
)

// Schema creates the import target. It is idempotent so it can also be
// applied to an externally provided database.
const Schema = `CREATE TABLE IF NOT EXISTS telemetry_legacy (
    id          BIGSERIAL PRIMARY KEY,
    recorded_at TIMESTAMPTZ   NOT NULL,
    voltage     NUMERIC(6, 2) NOT NULL,
    temp        NUMERIC(6, 2) NOT NULL,
    source_file TEXT          NOT NULL
);
`

type PostgresContainer struct {
	*postgres.PostgresContainer
	ConnString string
}

// StartPostgres runs a disposable PostgreSQL with telemetry_legacy already
// created. The caller owns the container and must Terminate it.
func StartPostgres(ctx context.Context) (*PostgresContainer, error) {
	dir, err := os.MkdirTemp("", "telemetry-testinfra-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	// The script is copied into the container on creation.
	defer os.RemoveAll(dir)

	initScript, err := writeInitScript(dir)
	if err != nil {
		return nil, err
	}

	ctr, err := postgres.Run(ctx,
		PostgresImage,
		postgres.WithUsername(PostgresUser),
		postgres.WithPassword(PostgresPassword),
		postgres.WithDatabase(PostgresDB),
		postgres.WithInitScripts(initScript),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	connStr, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		ctr.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PostgresContainer{PostgresContainer: ctr, ConnString: connStr}, nil
}

func writeInitScript(dir string) (string, error) {
	path := filepath.Join(dir, "001-telemetry-legacy.sql")
	if err := os.WriteFile(path, []byte(Schema), 0o644); err != nil {
		return "", fmt.Errorf("write init script: %w", err)
	}
	return path, nil
}
