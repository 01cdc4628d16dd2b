package cli

import (
	"github.com/spf13/cobra"

	"github.com/vvka-141/pgtelemetry/internal/config"
)

type runFlagValues struct {
	config.Flags
	configFile string
}

// runFlags is shared by every command that runs the pipeline; cobra parses
// only the flags of the command actually invoked.
var runFlags runFlagValues

func resetRunFlags() {
	runFlags = runFlagValues{}
}

func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runFlags.OutputDir, "out-dir", "",
		"Directory for the CSV artifacts, created if missing\n"+
			"Precedence: --out-dir > $CSV_OUT_DIR > telemetry.yaml > /data/csv")
	cmd.Flags().Int64Var(&runFlags.Seed, "seed", 0,
		"Seed for reproducible values (default: $TELEMETRY_SEED, or time-seeded)")
	cmd.Flags().StringVar(&runFlags.configFile, "config", "",
		"Project file (default: ./telemetry.yaml when present)")
}

func addConnectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runFlags.Connection, "connection", "",
		"PostgreSQL connection URI.\n"+
			"Mutually exclusive with granular flags (--host, --port, --username).\n"+
			"Alternative: $TELEMETRY_DATABASE_URL\n"+
			"Example: postgresql://monouser@db:5432/monolith")
	cmd.Flags().StringVarP(&runFlags.Host, "host", "h", "",
		"PostgreSQL server host\n"+
			"Precedence: --host > $PGHOST > db")
	cmd.Flags().IntVarP(&runFlags.Port, "port", "p", 0,
		"PostgreSQL server port\n"+
			"Precedence: --port > $PGPORT > 5432")
	cmd.Flags().StringVarP(&runFlags.Username, "username", "U", "",
		"PostgreSQL user (default: $PGUSER or monouser)")
	cmd.Flags().StringVarP(&runFlags.Database, "database", "d", "",
		"Database holding telemetry_legacy (default: $PGDATABASE or monolith)")
	cmd.Flags().StringVar(&runFlags.SSLMode, "sslmode", "",
		"SSL mode: disable|allow|prefer|require|verify-ca|verify-full\n"+
			"(default: $PGSSLMODE or disable)")
	cmd.Flags().StringVar(&runFlags.Timeout, "timeout", "",
		"Upper bound for the whole run (default: $TELEMETRY_TIMEOUT or 1m)\n"+
			"Examples: 30s, 2m")

	_ = cmd.RegisterFlagCompletionFunc("sslmode", completeSSLModes)
}
