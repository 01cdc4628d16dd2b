package telemetry

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Artifacts written and (unless skipped) imported
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to database
	ExitWriteFailed     = 12 // Artifact could not be written
	ExitCopyFailed      = 13 // COPY stream rejected by the server
)

// Sampling bounds used by the generator.
const (
	VoltageSampleMin = 3.2
	VoltageSampleMax = 12.6
	TempSampleMin    = -50.0
	TempSampleMax    = 80.0

	SensorCount   = 10
	MissionDayMax = 365
)

// Acceptance bounds used to derive the validity flags.
const (
	VoltageValidMin = 3.0
	VoltageValidMax = 15.0
	TempValidMin    = -60.0
	TempValidMax    = 100.0
)

// Literal tokens used to render booleans in both artifacts.
// Downstream spreadsheets expect exactly these two strings.
const (
	TrueToken  = "ИСТИНА"
	FalseToken = "ЛОЖЬ"
)

const (
	// TargetTable is the only table the loader writes to.
	TargetTable = "telemetry_legacy"

	// LogTag prefixes every console line so job schedulers can grep for it.
	LogTag = "telemetry"

	// DefaultTimeout bounds a whole run (connect + COPY).
	DefaultTimeout = 1 * time.Minute

	// DefaultOutputDir is where artifacts land when CSV_OUT_DIR is unset.
	DefaultOutputDir = "/data/csv"
)

// TargetColumns is the column list of the COPY statement, in file order.
var TargetColumns = []string{"recorded_at", "voltage", "temp", "source_file"}
