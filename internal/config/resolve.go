package config

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vvka-141/pgtelemetry/internal/db"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// Flags holds the command-line values. Zero values mean "not given".
//
// Note: Password is NOT a flag. Use $PGPASSWORD, .env or the connection URI.
type Flags struct {
	OutputDir  string
	Host       string
	Port       int
	Username   string
	Database   string
	SSLMode    string
	Connection string
	Seed       int64
	Timeout    string
	SkipLoad   bool
	Verbose    bool
}

// hasGranularConnection reports whether any of -h, -p, -U was given.
// --database is excluded: it may retarget the database of a URI.
func (f *Flags) hasGranularConnection() bool {
	return f.Host != "" || f.Port != 0 || f.Username != ""
}

// Resolve builds the RunConfig for one invocation. It does not validate the
// result; RunConfig.Validate does that before anything is generated.
func Resolve(flags Flags, settings *Settings) (telemetry.RunConfig, error) {
	cfg := telemetry.RunConfig{
		RunID:     uuid.New(),
		OutputDir: firstNonEmpty(flags.OutputDir, settings.OutputDir),
		Timeout:   settings.Timeout,
		Seed:      settings.Seed,
		SkipLoad:  flags.SkipLoad,
		Verbose:   flags.Verbose,
	}

	if flags.Seed != 0 {
		cfg.Seed = flags.Seed
	}
	if flags.Timeout != "" {
		d, err := parseTimeout(flags.Timeout)
		if err != nil {
			return cfg, err
		}
		cfg.Timeout = d
	}

	conn, err := ResolveConnection(flags, settings)
	if err != nil {
		return cfg, err
	}
	cfg.Connection = *conn

	return cfg, nil
}

// ResolveConnection applies connection precedence:
//
//  1. --connection URI, or $TELEMETRY_DATABASE_URL when no granular flags are set
//  2. granular flags (-h, -p, -U, -d, --sslmode)
//  3. settings (environment, .env, telemetry.yaml, defaults)
//
// Fields missing from a URI are filled from settings, as libpq does with
// its environment variables.
func ResolveConnection(flags Flags, settings *Settings) (*telemetry.ConnectionConfig, error) {
	if flags.Connection != "" && flags.hasGranularConnection() {
		return nil, fmt.Errorf(
			"cannot specify both --connection and granular flags (-h, -p, -U)\n"+
				"Choose one approach:\n"+
				"  1. Connection string: --connection \"postgresql://monouser@db:5432/monolith\"\n"+
				"  2. Granular flags: -h db -p 5432 -U monouser -d monolith\n"+
				"  3. Environment variables: export PGHOST=db PGPORT=5432 PGUSER=monouser: %w",
			telemetry.ErrInvalidConfig,
		)
	}

	uri := flags.Connection
	if uri == "" && !flags.hasGranularConnection() {
		uri = settings.DatabaseURL
	}

	var conn *telemetry.ConnectionConfig
	if uri != "" {
		parsed, err := db.ParseConnectionString(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid connection string: %w: %w", telemetry.ErrInvalidConfig, err)
		}
		conn = parsed
	} else {
		conn = &telemetry.ConnectionConfig{
			Host:     flags.Host,
			Port:     flags.Port,
			Username: flags.Username,
		}
	}

	if flags.Database != "" {
		conn.Database = flags.Database
	}
	if flags.SSLMode != "" {
		conn.SSLMode = flags.SSLMode
	}

	conn.Host = firstNonEmpty(conn.Host, settings.Host)
	if conn.Port == 0 {
		conn.Port = settings.Port
	}
	conn.Username = firstNonEmpty(conn.Username, settings.User)
	conn.Password = firstNonEmpty(conn.Password, settings.Password)
	conn.Database = firstNonEmpty(conn.Database, settings.Database)
	conn.SSLMode = firstNonEmpty(conn.SSLMode, settings.SSLMode)

	method, err := telemetry.ParseAuthMethod(settings.Auth)
	if err != nil {
		return nil, err
	}
	conn.AuthMethod = method
	conn.AWSRegion = settings.AWSRegion
	conn.AzureTenantID = settings.AzureTenantID
	conn.AzureClientID = settings.AzureClientID
	conn.AzureClientSecret = settings.AzureClientSecret
	conn.GoogleInstance = settings.GoogleInstance

	return conn, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid --timeout %q: %w: %w", s, telemetry.ErrInvalidConfig, err)
	}
	return d, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
