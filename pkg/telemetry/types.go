package telemetry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status is the derived health label of a record.
type Status string

const (
	StatusNominal      Status = "NOMINAL"
	StatusVoltageAlert Status = "VOLTAGE_ALERT"
	StatusTempAlert    Status = "TEMP_ALERT"
)

// DeriveStatus maps the two validity flags to exactly one status.
// Voltage takes precedence when both readings are out of bounds.
func DeriveStatus(voltageValid, tempValid bool) Status {
	switch {
	case voltageValid && tempValid:
		return StatusNominal
	case !voltageValid:
		return StatusVoltageAlert
	default:
		return StatusTempAlert
	}
}

// Record is one synthetic telemetry observation.
// Records are created per run and discarded after serialization.
type Record struct {
	RecordedAt time.Time
	Voltage    float64
	Temp       float64

	VoltageValid bool
	TempValid    bool
	OverallValid bool
	Status       Status

	SensorID   string
	MissionDay int
}

// NewRecord builds a record from raw measurements. Voltage and temperature are
// rounded to two decimal places and every derived field is computed here, so a
// Record built through NewRecord can never carry an inconsistent status.
func NewRecord(at time.Time, voltage, temp float64, sensorID string, missionDay int) Record {
	voltage = RoundTo2(voltage)
	temp = RoundTo2(temp)

	voltageValid := voltage >= VoltageValidMin && voltage <= VoltageValidMax
	tempValid := temp >= TempValidMin && temp <= TempValidMax

	return Record{
		RecordedAt:   at,
		Voltage:      voltage,
		Temp:         temp,
		VoltageValid: voltageValid,
		TempValid:    tempValid,
		OverallValid: voltageValid && tempValid,
		Status:       DeriveStatus(voltageValid, tempValid),
		SensorID:     sensorID,
		MissionDay:   missionDay,
	}
}

// SensorName formats a sensor number as SENSOR_NN.
func SensorName(n int) string {
	return fmt.Sprintf("SENSOR_%02d", n)
}

// RoundTo2 rounds to the nearest two-decimal value, judged on the exact
// binary value of v (2.675 is stored as 2.67499..., so it becomes 2.67).
// Exact ties go to the even digit.
func RoundTo2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

// ArtifactRole tells the two generated files apart.
type ArtifactRole int

const (
	RoleFull   ArtifactRole = iota // BOM, semicolon delimited, all fields
	RoleImport                     // plain CSV consumed by COPY
)

// String returns the role name used in log output.
func (r ArtifactRole) String() string {
	switch r {
	case RoleFull:
		return "full"
	case RoleImport:
		return "import-ready"
	default:
		return fmt.Sprintf("Unknown(%d)", r)
	}
}

// ArtifactHandle identifies a generated file on disk.
type ArtifactHandle struct {
	Path string
	Role ArtifactRole
}

// Artifacts is the result of writing one record.
// Only Import is consumed by the loader; Full is informational output.
type Artifacts struct {
	Full   ArtifactHandle
	Import ArtifactHandle
}

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Active Directory (Entra ID)
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// IsValid returns true if the AuthMethod is a valid, defined value.
func (a AuthMethod) IsValid() bool {
	return a >= AuthMethodStandard && a <= AuthMethodAzureEntraID
}

// ParseAuthMethod maps the TELEMETRY_AUTH values to an AuthMethod.
// An empty string selects standard password authentication.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws", "aws-iam":
		return AuthMethodAWSIAM, nil
	case "google", "google-iam", "gcp":
		return AuthMethodGoogleIAM, nil
	case "azure", "entra", "azure-entra-id":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}

// ConnectionConfig represents resolved connection parameters.
type ConnectionConfig struct {
	Host     string
	Port     int
	Database string
	Username string
	Password string
	SSLMode  string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	AppName        string
	ConnectTimeout time.Duration

	AWSRegion         string
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string
	GoogleInstance    string
}

// RunConfig contains everything one pipeline invocation needs.
// It is built once at startup and passed down explicitly.
type RunConfig struct {
	// RunID tags log lines and the database session's application_name.
	RunID uuid.UUID

	// OutputDir receives both artifacts. Created if absent.
	OutputDir string

	// Connection is used by the loader; ignored when SkipLoad is set.
	Connection ConnectionConfig

	// Timeout bounds the whole run.
	Timeout time.Duration

	// Seed makes generation reproducible. Zero means time-seeded.
	Seed int64

	// SkipLoad writes the artifacts without importing them.
	SkipLoad bool

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the RunConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *RunConfig) Validate() error {
	var errs []error

	if c.OutputDir == "" {
		errs = append(errs, fmt.Errorf("OutputDir is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	if !c.SkipLoad {
		conn := c.Connection
		if conn.Host == "" && conn.AuthMethod != AuthMethodGoogleIAM {
			errs = append(errs, fmt.Errorf("Host is required: %w", ErrInvalidConfig))
		}
		if conn.Port < 1 || conn.Port > 65535 {
			errs = append(errs, fmt.Errorf("port %d out of range: %w", conn.Port, ErrInvalidConfig))
		}
		if conn.Database == "" {
			errs = append(errs, fmt.Errorf("Database is required: %w", ErrInvalidConfig))
		}
		if !conn.AuthMethod.IsValid() {
			errs = append(errs, fmt.Errorf("auth method %v: %w", conn.AuthMethod, ErrUnsupportedAuthMethod))
		}
	}

	return errors.Join(errs...)
}

// RunResult describes what a pipeline run produced.
type RunResult struct {
	RunID     uuid.UUID
	Record    Record
	Artifacts Artifacts
	LoadState LoadState
}
