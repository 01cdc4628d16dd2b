package artifact

import (
	"strconv"
	"time"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

const (
	// FullTimestampLayout is ISO-8601 with a numeric offset (e.g. +0000).
	FullTimestampLayout = "2006-01-02T15:04:05-0700"

	// ImportTimestampLayout matches the timestamp input of telemetry_legacy.
	ImportTimestampLayout = "2006-01-02 15:04:05"

	// FileStampLayout is the UTC second-resolution stamp embedded in filenames.
	FileStampLayout = "20060102_150405"

	// ByteOrderMark prefixes the full artifact so spreadsheets detect UTF-8.
	ByteOrderMark = "\ufeff"

	FullDelimiter   = ';'
	ImportDelimiter = ','
)

// FullHeader lists the columns of the full artifact in order.
var FullHeader = []string{
	"timestamp",
	"voltage",
	"temp",
	"voltage_valid",
	"temp_valid",
	"overall_valid",
	"status",
	"sensor_id",
	"mission_day",
	"source_file",
}

// ImportHeader lists the columns of the import-ready artifact in order.
// It must stay identical to telemetry.TargetColumns.
var ImportHeader = telemetry.TargetColumns

// FormatNumber renders v as fixed-point text with exactly two fractional digits.
// The sign of a negative value that rounds to zero is kept ("-0.00"), as
// spreadsheets fed by the legacy exporter already expect.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatBool renders the localized boolean tokens.
func FormatBool(v bool) string {
	if v {
		return telemetry.TrueToken
	}
	return telemetry.FalseToken
}

// FormatTimestamp renders the full artifact timestamp.
func FormatTimestamp(t time.Time) string {
	return t.Format(FullTimestampLayout)
}

// FormatImportTimestamp renders the import-ready timestamp (no offset).
func FormatImportTimestamp(t time.Time) string {
	return t.Format(ImportTimestampLayout)
}

// FullFileName returns telemetry_<YYYYMMDD_HHMMSS>.csv for the UTC instant of t.
func FullFileName(t time.Time) string {
	return "telemetry_" + t.UTC().Format(FileStampLayout) + ".csv"
}

// ImportFileName returns telemetry_simple_<YYYYMMDD_HHMMSS>.csv for the UTC instant of t.
func ImportFileName(t time.Time) string {
	return "telemetry_simple_" + t.UTC().Format(FileStampLayout) + ".csv"
}

// FullRow renders rec in FullHeader order.
func FullRow(rec telemetry.Record, sourceFile string) []string {
	return []string{
		FormatTimestamp(rec.RecordedAt),
		FormatNumber(rec.Voltage),
		FormatNumber(rec.Temp),
		FormatBool(rec.VoltageValid),
		FormatBool(rec.TempValid),
		FormatBool(rec.OverallValid),
		string(rec.Status),
		rec.SensorID,
		strconv.Itoa(rec.MissionDay),
		sourceFile,
	}
}

// ImportRow renders rec in ImportHeader order.
func ImportRow(rec telemetry.Record, sourceFile string) []string {
	return []string{
		FormatImportTimestamp(rec.RecordedAt),
		FormatNumber(rec.Voltage),
		FormatNumber(rec.Temp),
		sourceFile,
	}
}
