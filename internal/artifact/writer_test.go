package artifact

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgtelemetry/internal/generator"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

type recordingLogger struct {
	mu    sync.Mutex
	infos []string
}

func (l *recordingLogger) Verbose(string, ...interface{}) {}
func (l *recordingLogger) Error(string, ...interface{})   {}
func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

var runTime = time.Date(2024, 5, 17, 9, 41, 7, 0, time.UTC)

func fixedClock() time.Time { return runTime }

func TestWriter_Write_NominalScenario(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "csv")
	logger := &recordingLogger{}
	w := NewWriter(dir, logger, WithClock(fixedClock))

	rec := telemetry.NewRecord(runTime, 3.2, 10.0, "SENSOR_05", 100)
	require.Equal(t, telemetry.StatusNominal, rec.Status)
	require.True(t, rec.VoltageValid)
	require.True(t, rec.TempValid)

	arts, err := w.Write(rec)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "telemetry_20240517_094107.csv"), arts.Full.Path)
	assert.Equal(t, telemetry.RoleFull, arts.Full.Role)
	assert.Equal(t, filepath.Join(dir, "telemetry_simple_20240517_094107.csv"), arts.Import.Path)
	assert.Equal(t, telemetry.RoleImport, arts.Import.Role)

	importData, err := os.ReadFile(arts.Import.Path)
	require.NoError(t, err)
	assert.Equal(t,
		"recorded_at,voltage,temp,source_file\r\n"+
			"2024-05-17 09:41:07,3.20,10.00,telemetry_20240517_094107.csv\r\n",
		string(importData))

	fullData, err := os.ReadFile(arts.Full.Path)
	require.NoError(t, err)
	assert.Equal(t,
		ByteOrderMark+"timestamp;voltage;temp;voltage_valid;temp_valid;overall_valid;status;sensor_id;mission_day;source_file\r\n"+
			"2024-05-17T09:41:07+0000;3.20;10.00;ИСТИНА;ИСТИНА;ИСТИНА;NOMINAL;SENSOR_05;100;telemetry_20240517_094107.csv\r\n",
		string(fullData))

	assert.Equal(t, []string{
		"generated " + arts.Full.Path,
		"generated " + arts.Import.Path + " (for DB COPY)",
	}, logger.infos)
}

func TestWriter_Write_VoltageAlertScenario(t *testing.T) {
	w := NewWriter(t.TempDir(), &recordingLogger{}, WithClock(fixedClock))

	rec := telemetry.NewRecord(runTime, 20.0, 10.0, "SENSOR_01", 1)
	require.False(t, rec.VoltageValid)
	require.Equal(t, telemetry.StatusVoltageAlert, rec.Status)

	arts, err := w.Write(rec)
	require.NoError(t, err)

	fullData, err := os.ReadFile(arts.Full.Path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(fullData), "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"2024-05-17T09:41:07+0000;20.00;10.00;ЛОЖЬ;ИСТИНА;ЛОЖЬ;VOLTAGE_ALERT;SENSOR_01;1;telemetry_20240517_094107.csv",
		lines[1])
}

func TestWriter_Write_ImportArtifactHasNoBOM(t *testing.T) {
	w := NewWriter(t.TempDir(), &recordingLogger{}, WithClock(fixedClock))
	arts, err := w.Write(telemetry.NewRecord(runTime, 5, 5, "SENSOR_02", 2))
	require.NoError(t, err)

	data, err := os.ReadFile(arts.Import.Path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte(ByteOrderMark)))
	assert.True(t, bytes.HasPrefix(data, []byte("recorded_at,")))
	assert.Equal(t, 1, bytes.Count(data, []byte("recorded_at")), "header appears exactly once")
}

func TestWriter_Write_ExistingDirectoryIsReused(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, &recordingLogger{}, WithClock(fixedClock))

	_, err := w.Write(telemetry.NewRecord(runTime, 5, 5, "SENSOR_02", 2))
	require.NoError(t, err)

	later := NewWriter(dir, &recordingLogger{}, WithClock(func() time.Time { return runTime.Add(time.Second) }))
	_, err = later.Write(telemetry.NewRecord(runTime, 5, 5, "SENSOR_02", 2))
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestWriter_Write_SameSeedByteIdentical(t *testing.T) {
	write := func(dir string) telemetry.Artifacts {
		gen := generator.New(generator.WithSeed(99), generator.WithClock(fixedClock))
		arts, err := NewWriter(dir, &recordingLogger{}, WithClock(fixedClock)).Write(gen.Generate())
		require.NoError(t, err)
		return arts
	}

	a := write(t.TempDir())
	b := write(t.TempDir())

	for _, pair := range [][2]string{{a.Full.Path, b.Full.Path}, {a.Import.Path, b.Import.Path}} {
		left, err := os.ReadFile(pair[0])
		require.NoError(t, err)
		right, err := os.ReadFile(pair[1])
		require.NoError(t, err)
		assert.Equal(t, left, right)
	}
}

func TestWriter_Write_DirectoryCreationFails(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	logger := &recordingLogger{}
	w := NewWriter(filepath.Join(blocker, "csv"), logger, WithClock(fixedClock))

	_, err := w.Write(telemetry.NewRecord(runTime, 5, 5, "SENSOR_01", 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, telemetry.ErrWriteFailed))
	assert.Empty(t, logger.infos, "no progress notice for a failed write")
}

func TestWriter_Write_FileCreationFails(t *testing.T) {
	dir := t.TempDir()
	// A directory squatting on the import artifact's name makes os.Create fail.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ImportFileName(runTime)), 0o755))

	w := NewWriter(dir, &recordingLogger{}, WithClock(fixedClock))
	_, err := w.Write(telemetry.NewRecord(runTime, 5, 5, "SENSOR_01", 1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, telemetry.ErrWriteFailed))
	assert.NoFileExists(t, filepath.Join(dir, FullFileName(runTime)))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestEncode_PropagatesWriterErrors(t *testing.T) {
	err := Encode(failingWriter{}, ByteOrderMark, FullDelimiter, FullHeader, make([]string, 10))
	assert.EqualError(t, err, "disk full")

	err = Encode(failingWriter{}, "", ImportDelimiter, ImportHeader, make([]string, 4))
	assert.EqualError(t, err, "disk full")
}
