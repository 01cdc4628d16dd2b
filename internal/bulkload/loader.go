// Package bulkload imports an import-ready artifact into telemetry_legacy
// with a single COPY FROM STDIN over a single connection.
package bulkload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/pgtelemetry/internal/db"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// CopySQL is the only statement the loader ever sends.
var CopySQL = fmt.Sprintf(
	"COPY %s(%s) FROM STDIN WITH (FORMAT csv, HEADER true)",
	telemetry.TargetTable,
	strings.Join(telemetry.TargetColumns, ", "),
)

// Loader performs one import. Thread-Safety: NOT safe for concurrent use,
// and a Loader must not be reused once it reaches a terminal state.
type Loader struct {
	connector telemetry.Connector
	logger    telemetry.Logger
	state     telemetry.LoadState
}

// New creates a Loader in the Idle state. Panics on nil dependencies.
func New(connector telemetry.Connector, logger telemetry.Logger) *Loader {
	if connector == nil {
		panic("connector cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Loader{
		connector: connector,
		logger:    logger,
		state:     telemetry.LoadIdle,
	}
}

// State returns the current load state.
func (l *Loader) State() telemetry.LoadState {
	return l.state
}

func (l *Loader) transition(next telemetry.LoadState) {
	if !l.state.CanTransition(next) {
		panic(fmt.Sprintf("bulkload: illegal transition %s -> %s", l.state, next))
	}
	l.logger.Verbose("load state %s -> %s", l.state, next)
	l.state = next
}

// Load streams the artifact into the target table. The connection and the
// file are released on every path.
func (l *Loader) Load(ctx context.Context, artifact telemetry.ArtifactHandle) (err error) {
	if artifact.Role != telemetry.RoleImport {
		return fmt.Errorf("cannot load %s artifact %s: %w", artifact.Role, artifact.Path, telemetry.ErrInvalidConfig)
	}

	l.transition(telemetry.LoadConnecting)
	defer func() {
		if err != nil {
			l.transition(telemetry.LoadFailed)
			l.logger.Error("failed to copy: %v", err)
		}
	}()

	conn, err := l.connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := conn.Close(context.WithoutCancel(ctx)); cerr != nil {
			l.logger.Verbose("closing connection: %v", cerr)
		}
	}()

	f, err := os.Open(artifact.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w: %w", artifact.Path, telemetry.ErrCopyFailed, err)
	}
	defer f.Close()

	l.transition(telemetry.LoadStreaming)

	rows, err := conn.CopyFrom(ctx, f, CopySQL)
	if err != nil {
		return classifyCopyError(err)
	}

	l.transition(telemetry.LoadDone)
	l.logger.Info("copied %s into %s (%d row(s))", filepath.Base(artifact.Path), telemetry.TargetTable, rows)
	return nil
}

func classifyCopyError(err error) error {
	if db.Classify(err) == db.ClassConnection {
		return fmt.Errorf("connection lost during COPY: %w: %w", telemetry.ErrConnectionFailed, err)
	}
	return fmt.Errorf("COPY into %s rejected: %w: %w", telemetry.TargetTable, telemetry.ErrCopyFailed, err)
}

var _ telemetry.BulkLoader = (*Loader)(nil)
