package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "snapsolve",
	Short: "Solve STEM multiple-choice questions from photos",
	Long: "Snapsolve — photograph a question sheet and get answers.\n" +
		"Questions are extracted with a vision model and resolved through a\n" +
		"tiered pipeline: similarity cache, optional web search, LLM solving.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Postgres connection string (overrides SNAPSOLVE_DATABASE_URL)")
	rootCmd.PersistentFlags().Bool("web", false, "Enable the web search tier")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(solveAllCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(versionCmd)
}
