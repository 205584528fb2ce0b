package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ByLCY/newscard/server"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr   string
		preset string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the card form and /generate endpoint over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			gen, cfg, err := newGenerator(a.cfg, preset, logger)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = a.cfg.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Info("serving cards", "preset", cfg.Name)
			return server.New(gen, logger).ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config or $PORT)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "layout preset (default from config)")
	return cmd
}
