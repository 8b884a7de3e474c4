package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/snapsolve/internal/pipeline"
	"github.com/abhisek/snapsolve/internal/ui"
)

var solveCmd = &cobra.Command{
	Use:   "solve <image>",
	Short: "Solve the first question in an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.close()

		img, err := loadImage(args[0])
		if err != nil {
			return err
		}

		opts := solveOptions(cmd)
		result, err := a.pipe.SolveOne(ctx, img, opts)
		if err != nil {
			return fmt.Errorf("solve %s: %w", args[0], err)
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		fmt.Print(ui.RenderResult(result, verbose))
		return nil
	},
}

var solveAllCmd = &cobra.Command{
	Use:   "solveall <image>",
	Short: "Solve every question in an image",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := buildApp(ctx, cmd)
		if err != nil {
			return err
		}
		defer a.close()

		img, err := loadImage(args[0])
		if err != nil {
			return err
		}

		opts := solveOptions(cmd)
		result, err := a.pipe.SolveAll(ctx, img, opts)
		if err != nil {
			return fmt.Errorf("solve %s: %w", args[0], err)
		}

		verbose, _ := cmd.Flags().GetBool("verbose")
		fmt.Print(ui.RenderResult(result, verbose))
		return nil
	},
}

func solveOptions(cmd *cobra.Command) pipeline.Options {
	verify, _ := cmd.Flags().GetBool("verify")
	return pipeline.Options{Verify: verify}
}

func init() {
	for _, c := range []*cobra.Command{solveCmd, solveAllCmd} {
		c.Flags().Bool("verify", false, "Verify answers with a second fast-model pass")
		c.Flags().Bool("verbose", false, "Show model reasoning")
	}
}
