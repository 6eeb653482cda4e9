// Package cli implements the glib command line: fit a model on a CSV file and
// predict with a saved parameter file.
package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/glib/internal/config"
	"github.com/YuminosukeSato/glib/pkg/log"
)

// NewRootCommand builds the glib command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "glib",
		Short: "Gradient-descent regression on CSV data",
		Long: `glib trains linear, ridge, lasso, power and logistic models by fixed-iteration
gradient descent and applies saved models to new data.

Settings come from flags, GLIB_* environment variables and an optional YAML
file, in that order of priority.`,
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "YAML configuration file")
	pf.String("log-level", "info", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")

	root.AddCommand(newFitCommand(), newPredictCommand())
	return root
}

// loadConfig resolves the configuration of cmd after its flags are parsed.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return nil, err
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(v, path)
}

func newLogger(cfg *config.Config, w io.Writer, command string) log.Logger {
	level, _ := log.ParseLevel(cfg.LogLevel)
	return log.NewZerologProvider(w, level, cfg.LogFormat).GetLoggerWithName("cli." + command)
}
