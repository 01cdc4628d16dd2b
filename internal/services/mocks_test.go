package services

import (
	"context"
	"fmt"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

type mockGenerator struct {
	record telemetry.Record
	calls  int
}

func (m *mockGenerator) Generate() telemetry.Record {
	m.calls++
	return m.record
}

type mockWriter struct {
	artifacts telemetry.Artifacts
	err       error
	written   []telemetry.Record
}

func (m *mockWriter) Write(rec telemetry.Record) (telemetry.Artifacts, error) {
	m.written = append(m.written, rec)
	return m.artifacts, m.err
}

type mockLoader struct {
	err      error
	state    telemetry.LoadState
	loaded   []telemetry.ArtifactHandle
	deadline bool
}

func (m *mockLoader) Load(ctx context.Context, artifact telemetry.ArtifactHandle) error {
	m.loaded = append(m.loaded, artifact)
	_, m.deadline = ctx.Deadline()
	if m.err != nil {
		m.state = telemetry.LoadFailed
		return m.err
	}
	m.state = telemetry.LoadDone
	return nil
}

func (m *mockLoader) State() telemetry.LoadState {
	return m.state
}

type mockLoaderFactory struct {
	loader  *mockLoader
	err     error
	configs []telemetry.ConnectionConfig
}

func (m *mockLoaderFactory) build(cfg *telemetry.ConnectionConfig) (telemetry.BulkLoader, error) {
	m.configs = append(m.configs, *cfg)
	if m.err != nil {
		return nil, m.err
	}
	return m.loader, nil
}

type mockLogger struct {
	lines []string
}

func (m *mockLogger) Verbose(format string, args ...interface{}) {
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}
func (m *mockLogger) Info(format string, args ...interface{}) {
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}
func (m *mockLogger) Error(format string, args ...interface{}) {
	m.lines = append(m.lines, fmt.Sprintf(format, args...))
}
