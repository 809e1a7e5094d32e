package main

import (
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/petakode/petakode/internal/dataset"
	"github.com/petakode/petakode/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the map server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Load the dataset once; it is immutable for the process lifetime.
		records, err := dataset.Load(ctx, cfg.Dataset)
		if err != nil {
			return eris.Wrap(err, "serve: load dataset")
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, port),
			Handler: server.New(cfg, records).Router(),
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(cmd.Context())
		}()

		zap.L().Info("starting server",
			zap.String("host", cfg.Server.Host),
			zap.Int("port", port),
			zap.Int("records", len(records)),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "serve: listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
