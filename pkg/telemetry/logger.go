package telemetry

// Logger receives the run's notices. The generator never logs; the writer
// reports each file it produced, the loader reports the COPY outcome and the
// pipeline adds verbose tracing.
//
// A Logger may be called from the signal goroutine while a run is in
// progress, so implementations must be safe for concurrent use.
type Logger interface {
	// Verbose is for tracing (state transitions, resolved target) and is
	// shown only with -v.
	Verbose(format string, args ...interface{})

	// Info carries the notices cron users rely on, such as
	// "generated <path>" and "copied <file> into telemetry_legacy".
	Info(format string, args ...interface{})

	// Error reports a failed run, e.g. "failed to copy: <err>".
	Error(format string, args ...interface{})
}
