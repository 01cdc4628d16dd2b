package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how a finished run is summarized.
type Mode int

const (
	// ModeNonInteractive keeps output to the [telemetry] notices on stderr.
	ModeNonInteractive Mode = iota
	// ModeInteractive adds the summary box on stdout.
	ModeInteractive
)

// plainSwitches are environment variables that force plain output when set.
// TELEMETRY_NON_INTERACTIVE only counts with the value "1".
var plainSwitches = []struct {
	name  string
	match func(string) bool
}{
	{"TELEMETRY_NON_INTERACTIVE", func(v string) bool { return v == "1" }},
	{"CI", nonEmpty},
	{"NO_COLOR", nonEmpty},
}

func nonEmpty(v string) bool { return v != "" }

// DetectMode picks ModeInteractive only when nothing asks for plain output and
// stdout is a terminal. cron and log collectors never get the box. stdin is
// not consulted since the tool never reads it.
func DetectMode() Mode {
	if PlainReason() != "" {
		return ModeNonInteractive
	}
	return ModeInteractive
}

// PlainReason names what forced plain output, or returns "" in interactive mode.
func PlainReason() string {
	for _, s := range plainSwitches {
		if s.match(os.Getenv(s.name)) {
			return s.name + " is set"
		}
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return "stdout is not a terminal"
	}
	return ""
}

// IsInteractive reports whether the summary box should be drawn.
func IsInteractive() bool {
	return DetectMode() == ModeInteractive
}
