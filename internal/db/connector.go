package db

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// StandardConnector implements telemetry.Connector for username/password
// authentication. Each Connect opens one new connection; failures are not retried.
type StandardConnector struct {
	config *telemetry.ConnectionConfig
	logger telemetry.Logger
}

// NewStandardConnector creates a new StandardConnector with the given configuration.
func NewStandardConnector(config *telemetry.ConnectionConfig, logger telemetry.Logger) *StandardConnector {
	return &StandardConnector{
		config: config,
		logger: logger,
	}
}

// Connect opens a single connection using standard authentication.
func (c *StandardConnector) Connect(ctx context.Context) (telemetry.CopyConn, error) {
	connConfig, err := parseConnConfig(c.config, c.logger)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	return NewConnAdapter(conn, nil), nil
}

// parseConnConfig turns a resolved ConnectionConfig into a pgx config.
func parseConnConfig(config *telemetry.ConnectionConfig, logger telemetry.Logger) (*pgx.ConnConfig, error) {
	connConfig, err := pgx.ParseConfig(BuildConnectionString(config))
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection config: %w: %w", telemetry.ErrInvalidConfig, err)
	}
	configureConn(connConfig, logger)
	return connConfig, nil
}

// configureConn routes server notices (e.g. from triggers on telemetry_legacy)
// to the verbose log.
func configureConn(connConfig *pgx.ConnConfig, logger telemetry.Logger) {
	if logger == nil {
		return
	}
	connConfig.OnNotice = func(_ *pgconn.PgConn, notice *pgconn.Notice) {
		logger.Verbose("server notice: %s", notice.Message)
	}
}

// NewConnector is a factory function that creates the appropriate Connector
// based on the ConnectionConfig's AuthMethod.
func NewConnector(config *telemetry.ConnectionConfig, logger telemetry.Logger) (telemetry.Connector, error) {
	switch config.AuthMethod {
	case telemetry.AuthMethodStandard:
		return NewStandardConnector(config, logger), nil
	case telemetry.AuthMethodAWSIAM:
		return newAWSConnector(config, logger)
	case telemetry.AuthMethodGoogleIAM:
		return newGoogleConnector(config, logger)
	case telemetry.AuthMethodAzureEntraID:
		return newAzureConnector(config, logger)
	default:
		return nil, fmt.Errorf("unsupported auth method %v: %w", config.AuthMethod, telemetry.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError wraps raw pgx connection errors with actionable guidance.
// The result always matches telemetry.ErrConnectionFailed.
func wrapConnectionError(err error, host string, port int, database string) error {
	errStr := strings.ToLower(err.Error())
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port (check $PGHOST and $PGPORT)
  - Firewall blocking the connection

Original error: %w: %w`, addr, host, port, telemetry.ErrConnectionFailed, err)

	case strings.Contains(errStr, "no such host") || strings.Contains(errStr, "no host"):
		return fmt.Errorf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled (check $PGHOST)
  - DNS is not configured or reachable
  - The database service is not on this network

Original error: %w: %w`, host, telemetry.ErrConnectionFailed, err)

	case strings.Contains(errStr, "password authentication failed"):
		return fmt.Errorf(`password authentication failed for database "%s"

Possible causes:
  - Wrong password (check $PGPASSWORD)
  - Wrong username (check $PGUSER)
  - User does not have access to the database

Original error: %w: %w`, database, telemetry.ErrConnectionFailed, err)

	case strings.Contains(errStr, "does not exist"):
		return fmt.Errorf(`database "%s" does not exist

Check $PGDATABASE or create it:
  createdb %s

Original error: %w: %w`, database, database, telemetry.ErrConnectionFailed, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets
  - Wrong host/port (server not listening)

Original error: %w: %w`, addr, telemetry.ErrConnectionFailed, err)

	case strings.Contains(errStr, "ssl") || strings.Contains(errStr, "tls"):
		return fmt.Errorf(`SSL/TLS connection error

Possible causes:
  - Server requires SSL but $PGSSLMODE is disable
  - Certificate verification failed (try --sslmode=require)

Original error: %w: %w`, telemetry.ErrConnectionFailed, err)

	default:
		return fmt.Errorf("failed to connect to database: %w: %w", telemetry.ErrConnectionFailed, err)
	}
}

// newAWSConnector creates a token-based connector with the AWS IAM token provider.
func newAWSConnector(config *telemetry.ConnectionConfig, logger telemetry.Logger) (telemetry.Connector, error) {
	endpoint := net.JoinHostPort(config.Host, strconv.Itoa(config.Port))

	tokenProvider, err := NewAWSIAMTokenProvider(endpoint, config.AWSRegion, config.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS IAM token provider: %w: %w", telemetry.ErrInvalidConfig, err)
	}

	return NewTokenBasedConnector(config, tokenProvider, "AWS IAM", logger), nil
}

// newGoogleConnector creates a GoogleCloudSQLConnector for Google Cloud SQL IAM authentication.
func newGoogleConnector(config *telemetry.ConnectionConfig, logger telemetry.Logger) (telemetry.Connector, error) {
	if config.GoogleInstance == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires $TELEMETRY_GOOGLE_INSTANCE (project:region:instance): %w", telemetry.ErrInvalidConfig)
	}
	if config.Username == "" {
		return nil, fmt.Errorf("Google Cloud SQL IAM auth requires a username: %w", telemetry.ErrInvalidConfig)
	}

	return NewGoogleCloudSQLConnector(config, config.GoogleInstance, logger), nil
}

// newAzureConnector creates a token-based connector with the Azure Entra ID token provider.
// If explicit credentials (tenant, client, secret) are provided, uses Service Principal auth.
// Otherwise, falls back to DefaultAzureCredential chain.
func newAzureConnector(config *telemetry.ConnectionConfig, logger telemetry.Logger) (telemetry.Connector, error) {
	var tokenProvider TokenProvider
	var err error

	if config.AzureTenantID != "" && config.AzureClientID != "" && config.AzureClientSecret != "" {
		tokenProvider, err = NewAzureServicePrincipalProvider(
			config.AzureTenantID,
			config.AzureClientID,
			config.AzureClientSecret,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Service Principal provider: %w", err)
		}
	} else {
		tokenProvider, err = NewAzureDefaultCredentialProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to create Azure Default Credential provider: %w", err)
		}
	}

	return NewTokenBasedConnector(config, tokenProvider, "Azure", logger), nil
}
