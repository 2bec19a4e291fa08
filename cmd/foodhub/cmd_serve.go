package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/foodhub/foodhub/internal/webapi"
	"github.com/foodhub/foodhub/internal/webserver"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	host      string
	port      int
	noBrowser bool
	lazy      bool
}

func newServeCommand(g *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web dashboard",
		Long: `Start the web dashboard.

The dataset is loaded before the server starts listening so a missing or
unreadable file is reported immediately. Use --lazy to defer loading to the
first request instead.

The server binds to 127.0.0.1 by default. The JSON API is served under /api:
  GET  /api/health               dataset row count
  GET  /api/options              values offered by each filter
  POST /api/dashboard            every panel for a set of filters
  GET  /api/restaurants/{name}   details of one restaurant
  GET  /api/top?n=3              votes of the top rows
  POST /api/query                rows matching raw predicates
  GET  /api/about                introduction text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = opts.port
			}

			logger := slog.Default()
			data, err := newDatasetStore(cfg, logger)
			if err != nil {
				return err
			}
			store := webapi.NewDatasetStore(data, logger, serviceOptions(cfg)...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !opts.lazy {
				if err := store.Preload(ctx); err != nil {
					return fmt.Errorf("loading %s: %w", cfg.Dataset.Path, err)
				}
			}

			srv, err := webserver.New(webserver.Config{
				Host:           opts.host,
				Port:           cfg.Server.Port,
				Store:          store,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				NoBrowser:      opts.noBrowser,
				Logger:         logger,
			})
			if err != nil {
				return err
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "127.0.0.1", "Interface to bind")
	cmd.Flags().IntVar(&opts.port, "port", webserver.DefaultPort, "Port to listen on (overrides server.port)")
	cmd.Flags().BoolVar(&opts.noBrowser, "no-browser", false, "Do not open a browser")
	cmd.Flags().BoolVar(&opts.lazy, "lazy", false, "Load the dataset on the first request")

	return cmd
}
