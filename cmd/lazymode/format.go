package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lazymode"
)

func newFormatCmd() *cobra.Command {
	var (
		modelPath string
		noAccel   bool
	)

	cmd := &cobra.Command{
		Use:   "format <description>",
		Short: "Format a raw issue description as Markdown",
		Long: `Format a raw issue description as GitHub-issue Markdown.

Uses the model snapshot at --model-path; if none exists, a demo model is
trained and saved there first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := lazymode.FormatIssue(args[0],
				lazymode.WithModelPath(modelPath),
				lazymode.WithModelOptions(
					lazymode.WithAcceleration(!noAccel),
					lazymode.WithLogger(newLogger()),
				),
			)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelPath, "model-path", lazymode.DefaultModelPath(), "model snapshot location")
	cmd.Flags().BoolVar(&noAccel, "no-accel", false, "disable SIMD-accelerated distance kernels")

	return cmd
}
