package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pgtelemetry/internal/artifact"
	"github.com/vvka-141/pgtelemetry/pkg/telemetry"
)

// RenderSummary renders the outcome of a run as a bordered panel.
func RenderSummary(r telemetry.RunResult) string {
	rec := r.Record

	rows := []string{
		row("Sensor", fmt.Sprintf("%s (mission day %d)", rec.SensorID, rec.MissionDay)),
		row("Recorded", rec.RecordedAt.Format("2006-01-02 15:04:05 MST")),
		row("Voltage", reading(artifact.FormatNumber(rec.Voltage)+" V", rec.VoltageValid)),
		row("Temp", reading(artifact.FormatNumber(rec.Temp)+" °C", rec.TempValid)),
		row("Status", statusText(rec.Status)),
	}
	if r.Artifacts.Full.Path != "" {
		rows = append(rows,
			row("Full", PathStyle.Render(r.Artifacts.Full.Path)),
			row("Import", PathStyle.Render(r.Artifacts.Import.Path)),
		)
	}
	rows = append(rows, row("Load", loadText(r.LoadState)))

	title := TitleStyle.Render("Telemetry run " + shortID(r))
	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(rows, "\n")))
}

// SummaryLine is the single-line form of RenderSummary for logs.
func SummaryLine(r telemetry.RunResult) string {
	rec := r.Record
	return fmt.Sprintf("run %s sensor=%s voltage=%s temp=%s status=%s load=%s",
		shortID(r), rec.SensorID,
		artifact.FormatNumber(rec.Voltage), artifact.FormatNumber(rec.Temp),
		rec.Status, r.LoadState)
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, LabelStyle.Render(label), value)
}

func reading(text string, valid bool) string {
	if valid {
		return text
	}
	return WarningStyle.Render(text + " (out of range)")
}

func statusText(s telemetry.Status) string {
	if s == telemetry.StatusNominal {
		return SuccessStyle.Render(string(s))
	}
	return WarningStyle.Render(string(s))
}

func loadText(s telemetry.LoadState) string {
	switch s {
	case telemetry.LoadDone:
		return SuccessStyle.Render(SymbolCheck + " copied into " + telemetry.TargetTable)
	case telemetry.LoadFailed:
		return ErrorStyle.Render(SymbolCross + " failed, artifacts kept on disk")
	case telemetry.LoadSkipped:
		return PathStyle.Render(SymbolBullet + " skipped")
	default:
		return PathStyle.Render(s.String())
	}
}

func shortID(r telemetry.RunResult) string {
	return r.RunID.String()[:8]
}
