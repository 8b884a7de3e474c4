package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapsolve/internal/store"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the question cache and query log",
	Long: "Removes every cached question and query log entry, for purging\n" +
		"answers that turned out to be wrong. The schema and the LLM\n" +
		"request log are kept.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to clear cached answers without --yes")
		}

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

		if err := st.Clear(ctx); err != nil {
			return err
		}

		fmt.Println("cache and query log cleared")
		return nil
	},
}

func init() {
	clearCmd.Flags().Bool("yes", false, "Confirm wiping cached data")
}
