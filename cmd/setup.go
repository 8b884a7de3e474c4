package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapsolve/internal/store"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the database schema",
	Long: "Creates the questions, query_log and llm_requests tables with\n" +
		"their indexes. Requires the pgvector extension to be installable.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		connStr := resolveDB(cmd)
		if connStr == "" {
			return fmt.Errorf("no database configured; set SNAPSOLVE_DATABASE_URL or --db")
		}

		st, err := store.New(ctx, connStr)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Initialize(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		fmt.Println("database schema ready")
		return nil
	},
}
