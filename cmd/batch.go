package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapsolve/internal/extract"
	"github.com/abhisek/snapsolve/internal/ui"
)

var batchCmd = &cobra.Command{
	Use:   "batch <image>...",
	Short: "Solve multiple images concurrently",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.close()

		images := make([]extract.Image, 0, len(args))
		for _, path := range args {
			img, err := loadImage(path)
			if err != nil {
				return err
			}
			images = append(images, img)
		}

		concurrency, _ := cmd.Flags().GetInt("concurrency")
		verbose, _ := cmd.Flags().GetBool("verbose")

		items := a.pipe.Batch(ctx, images, solveOptions(cmd), concurrency)

		failed := 0
		for _, item := range items {
			fmt.Printf("── %s ──\n", args[item.Index])
			if item.Err != nil {
				failed++
				fmt.Printf("failed: %v\n\n", item.Err)
				continue
			}
			fmt.Print(ui.RenderResult(item.Result, verbose))
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d images failed", failed, len(items))
		}
		return nil
	},
}

func init() {
	batchCmd.Flags().Int("concurrency", 3, "Number of images solved in parallel")
	batchCmd.Flags().Bool("verify", false, "Verify answers with a second fast-model pass")
	batchCmd.Flags().Bool("verbose", false, "Show model reasoning")
}
