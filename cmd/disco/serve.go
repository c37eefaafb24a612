package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"disco/internal/api"
	"disco/internal/logging"

	"github.com/spf13/cobra"
)

var (
	serveAddr   string
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP API server",
	Long: `Start the disco HTTP API server to expose discovery queries over
HTTP. The server provides REST endpoints for keyword search, neighbor
lookups, path finding, set combinators, and annotations.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Address to listen on (overrides the server config)")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Server config file (TOML)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	cfg := api.DefaultServerConfig()
	if serveConfig != "" {
		loaded, err := api.LoadServerConfig(serveConfig)
		if err != nil {
			return fmt.Errorf("failed to load server config: %w", err)
		}
		cfg = loaded
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	workspaceRoot := mustGetWorkspaceRoot()
	engine, db := mustGetEngine(workspaceRoot, logger)

	server := api.NewServer(cfg, engine, db, logger)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting disco HTTP API server", map[string]interface{}{
			"addr": cfg.Addr,
		})
		fmt.Printf("disco HTTP API server listening on http://%s\n", cfg.Addr)
		fmt.Println("Press Ctrl+C to stop")
		serverErr <- server.Start()
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}
	case sig := <-shutdown:
		logger.Info("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Error during shutdown", map[string]interface{}{
				"error": err.Error(),
			})
			return err
		}

		logger.Info("Server stopped gracefully", nil)
	}

	return nil
}
