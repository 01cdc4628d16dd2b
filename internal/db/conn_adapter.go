package db

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// ConnAdapter adapts *pgx.Conn to implement the telemetry.CopyConn interface.
// This keeps pgx types out of the loader.
//
// Thread-Safety: NOT safe for concurrent use (a pgx.Conn is a single session).
type ConnAdapter struct {
	conn    *pgx.Conn
	onClose func() error
}

// NewConnAdapter wraps conn. onClose, if non-nil, runs after the connection is
// closed (used to release cloud dialers).
func NewConnAdapter(conn *pgx.Conn, onClose func() error) *ConnAdapter {
	return &ConnAdapter{conn: conn, onClose: onClose}
}

// CopyFrom runs a COPY ... FROM STDIN statement fed by r.
func (a *ConnAdapter) CopyFrom(ctx context.Context, r io.Reader, sql string) (int64, error) {
	tag, err := a.conn.PgConn().CopyFrom(ctx, r, sql)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close terminates the session and releases any attached dialer.
func (a *ConnAdapter) Close(ctx context.Context) error {
	err := a.conn.Close(ctx)
	if a.onClose != nil {
		if cerr := a.onClose(); err == nil {
			err = cerr
		}
	}
	return err
}

// Verify ConnAdapter implements CopyConn at compile time
var _ telemetry.CopyConn = (*ConnAdapter)(nil)
