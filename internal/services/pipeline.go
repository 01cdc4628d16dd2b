package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// LoaderFactory builds a fresh BulkLoader for one run's connection settings.
type LoaderFactory func(*telemetry.ConnectionConfig) (telemetry.BulkLoader, error)

// Pipeline runs generate → write → load for one record.
// Thread-Safety: NOT safe for concurrent Run() calls on the same instance;
// the generator's random source is not synchronized.
type Pipeline struct {
	generator     telemetry.RecordGenerator
	writer        telemetry.ArtifactWriter
	loaderFactory LoaderFactory
	logger        telemetry.Logger
}

// NewPipeline creates a Pipeline with all dependencies injected.
// Panics on nil dependencies: these are wiring mistakes, not runtime conditions.
func NewPipeline(
	generator telemetry.RecordGenerator,
	writer telemetry.ArtifactWriter,
	loaderFactory LoaderFactory,
	logger telemetry.Logger,
) *Pipeline {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if writer == nil {
		panic("writer cannot be nil")
	}
	if loaderFactory == nil {
		panic("loaderFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &Pipeline{
		generator:     generator,
		writer:        writer,
		loaderFactory: loaderFactory,
		logger:        logger,
	}
}

// Run produces one record, writes both artifacts and, unless cfg.SkipLoad is
// set, imports the import-ready artifact. The returned RunResult is filled as
// far as the run got, so callers can report partial progress on error.
// Artifacts already written are never removed.
func (p *Pipeline) Run(ctx context.Context, cfg telemetry.RunConfig) (telemetry.RunResult, error) {
	result := telemetry.RunResult{RunID: cfg.RunID, LoadState: telemetry.LoadIdle}

	if err := cfg.Validate(); err != nil {
		return result, fmt.Errorf("invalid run configuration: %w", err)
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	p.logger.Verbose("run %s started", cfg.RunID)

	rec := p.generator.Generate()
	result.Record = rec
	p.logger.Verbose("record %s voltage=%.2f temp=%.2f status=%s", rec.SensorID, rec.Voltage, rec.Temp, rec.Status)

	arts, err := p.writer.Write(rec)
	if err != nil {
		return result, err
	}
	result.Artifacts = arts

	if cfg.SkipLoad {
		result.LoadState = telemetry.LoadSkipped
		p.logger.Verbose("load skipped")
		return result, nil
	}

	connConfig := cfg.Connection
	if connConfig.AppName == "" {
		connConfig.AppName = ApplicationName(cfg)
	}

	loader, err := p.loaderFactory(&connConfig)
	if err != nil {
		return result, fmt.Errorf("failed to create loader: %w", err)
	}

	err = loader.Load(ctx, arts.Import)
	result.LoadState = loader.State()
	if err != nil {
		return result, err
	}

	p.logger.Verbose("run %s finished", cfg.RunID)
	return result, nil
}

// ApplicationName tags the database session so a run can be found in
// pg_stat_activity and server logs.
func ApplicationName(cfg telemetry.RunConfig) string {
	id := cfg.RunID.String()
	return telemetry.LogTag + "-" + id[:8]
}
