// Package cli implements the newscard command-line interface.
//
// Commands:
//   - render: lay out eight text fields and write a PNG card
//   - serve: run the HTTP form and /generate endpoint
//   - presets: list or inspect layout presets
//   - feed: turn unseen upstream articles into cards
//
// All commands accept --config (a TOML file) and --verbose.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ByLCY/newscard/config"
)

var version = "dev"

// SetVersion sets the version printed by --version.
func SetVersion(v string) { version = v }

// app carries state shared by every subcommand after flag parsing.
type app struct {
	configPath string
	verbose    bool
	cfg        config.Config
	closeLog   func() error
}

// Execute runs the newscard CLI.
func Execute() error {
	a := &app{closeLog: func() error { return nil }}

	root := &cobra.Command{
		Use:           "newscard",
		Short:         "newscard renders fixed-size social cards from text fields",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			w, closer := logWriter(cfg.LogFile, cfg.LogMaxSize)
			a.closeLog = closer.Close
			logger := newLogger(w, parseLevel(cfg.LogLevel, a.verbose))
			cmd.SetContext(withLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closeLog()
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newServeCmd(a))
	root.AddCommand(newPresetsCmd(a))
	root.AddCommand(newFeedCmd(a))

	if err := root.ExecuteContext(context.Background()); err != nil {
		return fmt.Errorf("newscard: %w", err)
	}
	return nil
}
