package cli

import (
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the CSV artifacts without importing them",
	Long: `Generate writes the full and the import-ready CSV artifacts for one
synthetic record and stops. No database connection is opened, so no
connection settings are needed.

Examples:
  telemetry generate --out-dir ./csv
  telemetry generate --seed 42 --out-dir ./fixtures`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPipeline(cmd, true)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addOutputFlags(generateCmd)
}
