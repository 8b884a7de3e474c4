package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapsolve/internal/ui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache and query statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if a.store == nil {
			return fmt.Errorf("statistics need a database; set SNAPSOLVE_DATABASE_URL or --db")
		}

		stats, err := a.pipe.Statistics(ctx)
		if err != nil {
			return fmt.Errorf("compute statistics: %w", err)
		}

		fmt.Print(ui.RenderStats(stats))
		return nil
	},
}
