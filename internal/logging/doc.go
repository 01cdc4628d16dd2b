// Package logging writes the [telemetry] progress notices.
//
// ConsoleLogger is what the CLI uses: one tagged line per notice, verbose
// lines only with -v, written to stderr unless another writer is given.
// NullLogger drops everything and stands in where a test does not inspect
// output.
//
// Both are safe to share between the pipeline and the signal goroutine.
package logging
