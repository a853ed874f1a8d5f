package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/connectn/internal/api"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the match history over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cfg, logger)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			router := api.NewRouter(api.RouterConfig{
				Logger:         logger,
				HistoryService: app.HistoryService,
			})

			serverConfig := api.DefaultServerConfig()
			serverConfig.Host = cfg.Server.Host
			serverConfig.Port = cfg.Server.Port
			if cmd.Flags().Changed("port") {
				serverConfig.Port = port
			}
			server := api.NewServer(router, serverConfig, logger)

			// Handle graceful shutdown
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			logger.Info("server started",
				slog.String("addr", server.Addr()),
				slog.String("storage", cfg.StorageType),
			)

			// Wait for shutdown or error
			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("shutdown signal received")
			}

			if err := server.Shutdown(cmd.Context()); err != nil {
				return err
			}
			logger.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default from config, env: CONNECTN_PORT)")
	return cmd
}
