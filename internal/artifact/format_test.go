package artifact

import (
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{3.2, "3.20"},
		{-50.0, "-50.00"},
		{10, "10.00"},
		{12.6, "12.60"},
		{0, "0.00"},
		{-0.001, "-0.00"},
		{math.Copysign(0, -1), "-0.00"},
		{79.999, "80.00"},
		{1234567.891, "1234567.89"},
		{-7.25, "-7.25"},
	}

	for _, tt := range tests {
		t.Run(strconv.FormatFloat(tt.in, 'g', -1, 64), func(t *testing.T) {
			got := FormatNumber(tt.in)
			assert.Equal(t, tt.want, got)

			dot := strings.IndexByte(got, '.')
			assert.Equal(t, 2, len(got)-dot-1, "exactly two fractional digits")
		})
	}
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "ИСТИНА", FormatBool(true))
	assert.Equal(t, "ЛОЖЬ", FormatBool(false))
}

func TestFormatTimestamp(t *testing.T) {
	at := time.Date(2024, 3, 9, 7, 5, 3, 999, time.UTC)
	assert.Equal(t, "2024-03-09T07:05:03+0000", FormatTimestamp(at))
	assert.Equal(t, "2024-03-09 07:05:03", FormatImportTimestamp(at))

	msk := at.In(time.FixedZone("MSK", 3*60*60))
	assert.Equal(t, "2024-03-09T10:05:03+0300", FormatTimestamp(msk))
}

func TestFileNames(t *testing.T) {
	at := time.Date(2024, 12, 31, 23, 59, 58, 0, time.FixedZone("X", -2*60*60))
	assert.Equal(t, "telemetry_20250101_015958.csv", FullFileName(at))
	assert.Equal(t, "telemetry_simple_20250101_015958.csv", ImportFileName(at))
}

func TestFullRow_ColumnOrder(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := telemetry.NewRecord(at, 20.0, -70.0, "SENSOR_03", 42)

	row := FullRow(rec, "telemetry_20240102_030405.csv")

	assert.Len(t, row, len(FullHeader))
	assert.Equal(t, []string{
		"2024-01-02T03:04:05+0000",
		"20.00",
		"-70.00",
		"ЛОЖЬ",
		"ЛОЖЬ",
		"ЛОЖЬ",
		"VOLTAGE_ALERT",
		"SENSOR_03",
		"42",
		"telemetry_20240102_030405.csv",
	}, row)
}

func TestImportRow_ColumnOrder(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := telemetry.NewRecord(at, 3.2, 10.0, "SENSOR_01", 1)

	row := ImportRow(rec, "telemetry_20240102_030405.csv")

	assert.Equal(t, []string{"2024-01-02 03:04:05", "3.20", "10.00", "telemetry_20240102_030405.csv"}, row)
}

func TestHeaders(t *testing.T) {
	assert.Len(t, FullHeader, 10)
	assert.Equal(t, []string{"recorded_at", "voltage", "temp", "source_file"}, ImportHeader)
}

func TestBooleanColumnsOnlyUseTokens(t *testing.T) {
	at := time.Now()
	for _, v := range []float64{1, 5, 20} {
		for _, temp := range []float64{-100, 0, 150} {
			row := FullRow(telemetry.NewRecord(at, v, temp, "SENSOR_01", 1), "f.csv")
			for _, cell := range row[3:6] {
				assert.Contains(t, []string{telemetry.TrueToken, telemetry.FalseToken}, cell)
			}
		}
	}
}
