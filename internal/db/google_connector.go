package db

import (
	"context"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// GoogleCloudSQLConnector implements telemetry.Connector for Google Cloud SQL
// using IAM database authentication via the Cloud SQL Go Connector.
// The dialer lives exactly as long as the connection it produced.
type GoogleCloudSQLConnector struct {
	config   *telemetry.ConnectionConfig
	instance string
	logger   telemetry.Logger
}

// NewGoogleCloudSQLConnector creates a connector for Google Cloud SQL IAM authentication.
// instance is the instance connection name in format: project:region:instance
func NewGoogleCloudSQLConnector(config *telemetry.ConnectionConfig, instance string, logger telemetry.Logger) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{
		config:   config,
		instance: instance,
		logger:   logger,
	}
}

// Connect dials the instance through the Cloud SQL connector. Closing the
// returned connection also closes the dialer.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (telemetry.CopyConn, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("failed to create Cloud SQL dialer: %w: %w", telemetry.ErrConnectionFailed, err)
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s dbname=%s sslmode=disable",
		c.instance,
		c.config.Username,
		c.config.Database,
	)
	if c.config.AppName != "" {
		dsn += " application_name=" + c.config.AppName
	}

	connConfig, err := pgx.ParseConfig(dsn)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to parse connection config: %w: %w", telemetry.ErrInvalidConfig, err)
	}

	connConfig.DialFunc = func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialer.Dial(ctx, c.instance)
	}
	configureConn(connConfig, c.logger)

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		dialer.Close()
		return nil, fmt.Errorf("failed to connect to Cloud SQL instance %s: %w: %w", c.instance, telemetry.ErrConnectionFailed, err)
	}

	return NewConnAdapter(conn, dialer.Close), nil
}
