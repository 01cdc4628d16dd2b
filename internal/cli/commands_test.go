package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgtelemetry/internal/config"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// execute runs the command tree with args and returns the captured stderr.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, key := range config.Keys {
		t.Setenv(key, "")
	}
	t.Setenv("TELEMETRY_NON_INTERACTIVE", "1")
	resetRunFlags()
	require.NoError(t, rootCmd.PersistentFlags().Set("verbose", "false"))

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stderr.String(), err
}

func TestCommands_RejectPositionalArgs(t *testing.T) {
	for _, cmd := range []string{"run", "generate"} {
		t.Run(cmd, func(t *testing.T) {
			_, err := execute(t, cmd, "extra")
			require.Error(t, err)
			assert.Equal(t, telemetry.ExitUsageError, telemetry.ExitCodeForError(err), "got %v", err)
		})
	}
}

func TestCommands_UnknownFlag(t *testing.T) {
	_, err := execute(t, "generate", "--no-such-flag")
	require.Error(t, err)
	assert.Equal(t, telemetry.ExitUsageError, telemetry.ExitCodeForError(err))
}

func TestGenerate_WritesBothArtifacts(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "csv")

	stderr, err := execute(t, "generate", "--out-dir", dir, "--seed", "42")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Regexp(t, `^telemetry_\d{8}_\d{6}\.csv$`, names[0])
	assert.Regexp(t, `^telemetry_simple_\d{8}_\d{6}\.csv$`, names[1])

	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	require.Len(t, lines, 2, stderr)
	assert.True(t, strings.HasPrefix(lines[0], "[telemetry] generated "))
	assert.True(t, strings.HasSuffix(lines[1], " (for DB COPY)"))
}

func TestGenerate_VerboseSummaryLine(t *testing.T) {
	stderr, err := execute(t, "generate", "-v", "--out-dir", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stderr, "[telemetry] [VERBOSE] run ")
	assert.Contains(t, stderr, "load=Skipped")
	assert.Contains(t, stderr, "summary box off (TELEMETRY_NON_INTERACTIVE is set)")
}

func TestRootHelp_NamesOutputStreams(t *testing.T) {
	assert.Contains(t, rootCmd.Long, "notices go to stderr")
	assert.Contains(t, rootCmd.Long, "stdout")
}

func TestGenerate_UnwritableOutputDir(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	stderr, err := execute(t, "generate", "--out-dir", filepath.Join(blocker, "csv"))
	require.Error(t, err)
	assert.Equal(t, telemetry.ExitWriteFailed, telemetry.ExitCodeForError(err))
	assert.Contains(t, stderr, "[telemetry] create output directory")
}

func TestRun_UnreachableDatabase(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping network test in short mode")
	}
	dir := t.TempDir()

	stderr, err := execute(t, "run", "--out-dir", dir, "-h", "127.0.0.1", "-p", "1", "--timeout", "5s")

	require.Error(t, err)
	assert.Equal(t, telemetry.ExitConnectionError, telemetry.ExitCodeForError(err), "got %v", err)
	assert.Contains(t, stderr, "[telemetry] failed to copy: ")
	assert.Equal(t, 1, strings.Count(stderr, "failed to copy"), "reported once")

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 2, "artifacts remain on disk")
}

func TestRun_InvalidTimeout(t *testing.T) {
	stderr, err := execute(t, "run", "--out-dir", t.TempDir(), "--timeout", "soon")

	require.Error(t, err)
	assert.Equal(t, telemetry.ExitConfigError, telemetry.ExitCodeForError(err))
	assert.Contains(t, stderr, `[telemetry] invalid --timeout "soon"`)
}

func TestRun_ConnectionConflictsWithHost(t *testing.T) {
	dir := t.TempDir()

	_, err := execute(t, "run", "--out-dir", dir, "--connection", "postgresql://db/monolith", "-h", "other")

	require.Error(t, err)
	assert.Equal(t, telemetry.ExitConfigError, telemetry.ExitCodeForError(err))
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries, "nothing is generated when configuration is invalid")
}

func TestRun_MissingExplicitConfigFile(t *testing.T) {
	_, err := execute(t, "generate", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, telemetry.ExitConfigError, telemetry.ExitCodeForError(err))
}

func TestRun_ProjectFileOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "from-yaml")
	cfgPath := filepath.Join(t.TempDir(), "telemetry.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("out_dir: "+out+"\n"), 0o644))

	_, err := execute(t, "generate", "--config", cfgPath)
	require.NoError(t, err)

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCompleteSSLModes(t *testing.T) {
	got, _ := completeSSLModes(runCmd, nil, "verify")
	assert.Equal(t, []string{"verify-ca", "verify-full"}, got)
}
