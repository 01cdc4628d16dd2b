package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// ParseConnectionString parses a PostgreSQL URI into a ConnectionConfig.
// Parameters missing from the URI are left empty so that callers can layer
// environment defaults underneath.
//
// Format: postgresql://[user[:password]@][host][:port][/dbname][?param1=value1&...]
func ParseConnectionString(connStr string) (*telemetry.ConnectionConfig, error) {
	if connStr == "" {
		return nil, fmt.Errorf("connection string is empty")
	}
	if !strings.HasPrefix(connStr, "postgresql://") && !strings.HasPrefix(connStr, "postgres://") {
		return nil, fmt.Errorf("unrecognized connection string format (expected postgresql://...)")
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL URI: %w", err)
	}

	config := &telemetry.ConnectionConfig{
		AuthMethod: telemetry.AuthMethodStandard,
		Host:       u.Hostname(),
	}

	if u.Port() != "" {
		port, err := strconv.Atoi(u.Port())
		if err != nil {
			return nil, fmt.Errorf("invalid port: %w", err)
		}
		config.Port = port
	}

	if u.User != nil {
		config.Username = u.User.Username()
		if pass, ok := u.User.Password(); ok {
			config.Password = pass
		}
	}

	if len(u.Path) > 1 {
		config.Database = strings.TrimPrefix(u.Path, "/")
	}

	query := u.Query()
	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch strings.ToLower(key) {
		case "host":
			config.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid port: %w", err)
			}
			config.Port = port
		case "sslmode":
			config.SSLMode = value
		case "application_name":
			config.AppName = value
		case "connect_timeout":
			timeout, err := strconv.Atoi(value)
			if err == nil {
				config.ConnectTimeout = time.Duration(timeout) * time.Second
			}
		}
	}

	return config, nil
}

// BuildConnectionString converts a ConnectionConfig to a PostgreSQL URI for pgx.
//
// Hosts take the forms PGHOST accepts: a name, an IP literal (IPv6 is
// bracketed) or, when it starts with "/", the directory of a Unix socket.
// Socket directories cannot live in the URI authority, so they travel as the
// host and port query parameters.
func BuildConnectionString(config *telemetry.ConnectionConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Path:   "/" + config.Database,
	}

	query := url.Values{}
	if isSocketDir(config.Host) {
		query.Set("host", config.Host)
		if config.Port > 0 {
			query.Set("port", strconv.Itoa(config.Port))
		}
	} else {
		u.Host = net.JoinHostPort(config.Host, strconv.Itoa(config.Port))
	}

	if config.Username != "" {
		if config.Password != "" {
			u.User = url.UserPassword(config.Username, config.Password)
		} else {
			u.User = url.User(config.Username)
		}
	}

	if config.SSLMode != "" {
		query.Set("sslmode", config.SSLMode)
	}
	if config.AppName != "" {
		query.Set("application_name", config.AppName)
	}
	if config.ConnectTimeout > 0 {
		query.Set("connect_timeout", strconv.Itoa(int(config.ConnectTimeout.Seconds())))
	}

	u.RawQuery = query.Encode()
	return u.String()
}

// RedactedConnectionString is BuildConnectionString with the password masked,
// for verbose logs.
func RedactedConnectionString(config *telemetry.ConnectionConfig) string {
	masked := *config
	if masked.Password != "" {
		masked.Password = "xxxxx"
	}
	return BuildConnectionString(&masked)
}

func isSocketDir(host string) bool {
	return strings.HasPrefix(host, "/")
}
