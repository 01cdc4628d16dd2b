package telemetry

import (
	"context"
	"fmt"
	"io"
)

// LoadState is the per-run state of the bulk loader.
//
//	Idle → Connecting → Streaming → Done
//	Connecting → Failed, Streaming → Failed
//
// Done and Failed are terminal.
type LoadState int

const (
	LoadIdle LoadState = iota
	LoadConnecting
	LoadStreaming
	LoadDone
	LoadFailed
	// LoadSkipped marks runs that never invoked the loader.
	LoadSkipped
)

func (s LoadState) String() string {
	switch s {
	case LoadIdle:
		return "Idle"
	case LoadConnecting:
		return "Connecting"
	case LoadStreaming:
		return "Streaming"
	case LoadDone:
		return "Done"
	case LoadFailed:
		return "Failed"
	case LoadSkipped:
		return "Skipped"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// IsTerminal reports whether no further transition is possible.
func (s LoadState) IsTerminal() bool {
	return s == LoadDone || s == LoadFailed || s == LoadSkipped
}

// CanTransition reports whether moving from s to next is legal.
func (s LoadState) CanTransition(next LoadState) bool {
	switch s {
	case LoadIdle:
		return next == LoadConnecting
	case LoadConnecting:
		return next == LoadStreaming || next == LoadFailed
	case LoadStreaming:
		return next == LoadDone || next == LoadFailed
	default:
		return false
	}
}

// CopyConn is a single database connection able to run COPY FROM STDIN.
type CopyConn interface {
	// CopyFrom streams r into the server using the given COPY statement
	// and returns the number of rows the server reports as copied.
	CopyFrom(ctx context.Context, r io.Reader, sql string) (int64, error)

	// Close releases the connection.
	Close(ctx context.Context) error
}

// Connector opens connections for the loader.
// Each call returns a new, exclusively owned connection.
type Connector interface {
	Connect(ctx context.Context) (CopyConn, error)
}

// RecordGenerator produces one record per call. It cannot fail.
type RecordGenerator interface {
	Generate() Record
}

// ArtifactWriter renders a record into the full and import-ready files.
type ArtifactWriter interface {
	Write(rec Record) (Artifacts, error)
}

// BulkLoader imports one import-ready artifact.
type BulkLoader interface {
	Load(ctx context.Context, artifact ArtifactHandle) error
	State() LoadState
}
