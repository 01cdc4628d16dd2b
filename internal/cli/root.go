package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Generate a synthetic telemetry record and import it into PostgreSQL",
	Long: `telemetry produces one synthetic sensor record per invocation, writes it as
two CSV files and imports the plain one into telemetry_legacy with COPY.

Run it from cron: it needs no arguments, reads PG* variables like psql does
and exits with a code that says what went wrong.

Files written to $CSV_OUT_DIR (default /data/csv):
  telemetry_<UTC stamp>.csv         UTF-8 BOM, ';' delimited, all fields
  telemetry_simple_<UTC stamp>.csv  plain CSV loaded into telemetry_legacy

Configuration precedence: flag > environment (incl. .env) > telemetry.yaml > default

Output: all [telemetry] notices go to stderr ("generated ...", "copied ...",
"failed to copy: ..."), so redirect 2> in crontab to keep them. stdout only
carries the summary box on an interactive terminal and the version line.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Database connection failed
  12 - Artifact could not be written
  13 - COPY rejected by the server`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, false)
	},
}

// Execute runs the root command. Errors already reported through the logger
// are not printed a second time.
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}

	err := rootCmd.Execute()
	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	// -h is --host, as in psql.
	rootCmd.PersistentFlags().Bool("help", false, "Help for telemetry")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")

	addOutputFlags(rootCmd)
	addConnectionFlags(rootCmd)
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// reportedError marks an error the logger has already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }
