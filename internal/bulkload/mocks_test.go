package bulkload

import (
	"context"
	"fmt"
	"io"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

type mockConn struct {
	rows     int64
	copyErr  error
	closeErr error

	sql    string
	body   string
	closed bool
}

func (m *mockConn) CopyFrom(_ context.Context, r io.Reader, sql string) (int64, error) {
	m.sql = sql
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.body = string(data)
	return m.rows, m.copyErr
}

func (m *mockConn) Close(_ context.Context) error {
	m.closed = true
	return m.closeErr
}

type mockConnector struct {
	conn  *mockConn
	err   error
	calls int
}

func (m *mockConnector) Connect(_ context.Context) (telemetry.CopyConn, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.conn, nil
}

type recordingLogger struct {
	verbose []string
	info    []string
	errors  []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}
