package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// TokenBasedConnector implements telemetry.Connector for cloud providers that
// authenticate via short-lived tokens (AWS IAM, Azure Entra ID).
type TokenBasedConnector struct {
	config        *telemetry.ConnectionConfig
	tokenProvider TokenProvider
	providerName  string
	logger        telemetry.Logger
}

// NewTokenBasedConnector creates a connector that uses a TokenProvider for authentication.
// providerName is used in error messages (e.g., "AWS IAM", "Azure").
func NewTokenBasedConnector(config *telemetry.ConnectionConfig, tokenProvider TokenProvider, providerName string, logger telemetry.Logger) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:        config,
		tokenProvider: tokenProvider,
		providerName:  providerName,
		logger:        logger,
	}
}

// Connect acquires a fresh token and opens one connection with it.
func (c *TokenBasedConnector) Connect(ctx context.Context) (telemetry.CopyConn, error) {
	token, expiresOn, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire %s token: %w: %w", c.providerName, telemetry.ErrConnectionFailed, err)
	}

	if c.logger != nil {
		c.logger.Verbose("acquired token from %s", c.tokenProvider)
		if left := time.Until(expiresOn); left < tokenExpiryWarning {
			c.logger.Verbose("%s token expires in %v", c.providerName, left.Round(time.Second))
		}
	}

	configWithToken := *c.config
	configWithToken.Password = token

	connConfig, err := parseConnConfig(&configWithToken, c.logger)
	if err != nil {
		return nil, err
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Host, c.config.Port, c.config.Database)
	}

	return NewConnAdapter(conn, nil), nil
}
