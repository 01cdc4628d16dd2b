package db

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClass groups database errors by the stage that failed.
type ErrorClass int

const (
	ClassUnknown    ErrorClass = iota
	ClassConnection            // server unreachable, auth rejected, session lost
	ClassProtocol              // server accepted the session but rejected the COPY
)

func (c ErrorClass) String() string {
	switch c {
	case ClassConnection:
		return "connection"
	case ClassProtocol:
		return "protocol"
	default:
		return "unknown"
	}
}

// SQLSTATE classes that mean the session itself is unusable.
// See: https://www.postgresql.org/docs/current/errcodes-appendix.html
var connectionClasses = []string{
	"08", // Connection Exception
	"28", // Invalid Authorization Specification
	"3D", // Invalid Catalog Name (database does not exist)
	"53", // Insufficient Resources (too many connections)
	"57", // Operator Intervention (admin shutdown, cannot connect now)
}

// Classify reports whether err came from reaching the server or from the
// server rejecting the COPY stream (bad row format, constraint violation,
// missing table).
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		for _, class := range connectionClasses {
			if strings.HasPrefix(pgErr.Code, class) {
				return ClassConnection
			}
		}
		return ClassProtocol
	}

	if isNetworkError(err) || isConnectionMessage(err) {
		return ClassConnection
	}

	return ClassUnknown
}

// isNetworkError checks for network-level errors.
func isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

// isConnectionMessage matches connection failures pgconn reports as plain text.
func isConnectionMessage(err error) bool {
	patterns := []string{
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"i/o timeout",
		"broken pipe",
		"server closed the connection",
		"unexpected eof",
		"conn closed",
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range patterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
