// Package logging provides concrete implementations of the telemetry.Logger interface.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// ConsoleLogger writes tagged log lines ("[telemetry] ...") to a writer.
// Safe for concurrent use by multiple goroutines.
type ConsoleLogger struct {
	verbose bool
	prefix  string
	out     io.Writer
	mu      sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger writing to stderr with the
// default telemetry tag.
// If verbose is true, Verbose() calls will produce output.
// If verbose is false, Verbose() calls are no-ops.
func NewConsoleLogger(verbose bool) *ConsoleLogger {
	return NewConsoleLoggerTo(os.Stderr, telemetry.LogTag, verbose)
}

// NewConsoleLoggerTo creates a ConsoleLogger with an explicit writer and tag.
func NewConsoleLoggerTo(out io.Writer, tag string, verbose bool) *ConsoleLogger {
	return &ConsoleLogger{
		verbose: verbose,
		prefix:  "[" + tag + "] ",
		out:     out,
	}
}

// Verbose logs detailed diagnostic information if verbose mode is enabled.
func (l *ConsoleLogger) Verbose(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	l.write("[VERBOSE] ", format, args)
}

// Info logs informational messages about normal operations.
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write("", format, args)
}

// Error logs error messages.
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write("", format, args)
}

func (l *ConsoleLogger) write(level, format string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(args) > 0 {
		fmt.Fprintf(l.out, l.prefix+level+format+"\n", args...)
	} else {
		fmt.Fprint(l.out, l.prefix+level+format+"\n")
	}
}

var _ telemetry.Logger = (*ConsoleLogger)(nil)
