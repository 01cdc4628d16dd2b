package logging

import "github.com/vvka-141/pgtelemetry/pkg/telemetry"

// NullLogger swallows every notice. The zero value is ready to use.
type NullLogger struct{}

// NewNullLogger returns a NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}

func (l *NullLogger) Info(format string, args ...interface{}) {}

func (l *NullLogger) Error(format string, args ...interface{}) {}

var _ telemetry.Logger = (*NullLogger)(nil)
