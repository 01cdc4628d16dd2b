package db

import (
	"context"
	"time"
)

// TokenProvider yields a short-lived credential that TokenBasedConnector
// sends as the password. The connector asks for a token on every Connect and
// keeps none; a run connects once.
type TokenProvider interface {
	GetToken(ctx context.Context) (token string, expiresOn time.Time, err error)

	// String identifies the provider in verbose output, e.g.
	// "AWSIAMTokenProvider(endpoint=db:5432, region=eu-west-1, user=loader)".
	// It must never contain the token or a client secret.
	String() string
}

// AzurePostgreSQLScope is the Entra ID resource scope for Azure Database for PostgreSQL.
const AzurePostgreSQLScope = "https://ossrdbms-aad.database.windows.net/.default"

// tokenExpiryWarning is the remaining lifetime below which a token is reported
// in the verbose log. One COPY of one row never takes this long.
const tokenExpiryWarning = 5 * time.Minute
