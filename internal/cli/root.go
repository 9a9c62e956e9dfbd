// Package cli wires the hiresight commands.
package cli

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hiresight",
	Short: "Candidate intelligence engine",
	Long: `HireSight turns raw hiring-form submissions into a scored candidate
pool with market analytics and diversity-aware team composition. Run
"serve" for the HTTP API or "analyze" for a one-shot market report.`,
	SilenceUsage: true,
}

// Execute runs the root command with the given base context.
func Execute(ctx context.Context) error {
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)
}
