// Command lazymode trains and runs the nearest-neighbor GitHub issue
// formatter.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/lazymode"
)

var (
	quiet   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lazymode",
	Short: "Format free-form bug reports as GitHub-issue Markdown",
	Long: `lazymode converts free-form natural-language bug and issue descriptions
into a fixed GitHub-issue Markdown template.

It trains a small nearest-neighbor model over (description, template) pairs
and adapts the closest known template to new inputs. Train a model with
"lazymode train", then format inputs with "lazymode format".`,
	SilenceUsage: true,
}

func newLogger() *lazymode.Logger {
	if quiet {
		return lazymode.NoopLogger()
	}
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return lazymode.NewTextLogger(level)
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newTrainCmd())
	rootCmd.AddCommand(newFormatCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
