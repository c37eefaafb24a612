package main

import (
	"fmt"
	"os"
	"sync"

	"disco/internal/algebra"
	"disco/internal/config"
	"disco/internal/logging"
	"disco/internal/network"
	"disco/internal/storage"
)

var (
	engineOnce   sync.Once
	sharedEngine *algebra.Algebra
	sharedDB     *storage.DB
	sharedConfig *config.Config
	engineErr    error
)

// getEngine returns a shared discovery engine backed by the workspace
// catalog. The engine is lazily initialized on first use.
func getEngine(workspaceRoot string, logger *logging.Logger) (*algebra.Algebra, *storage.DB, error) {
	engineOnce.Do(func() {
		cfg, err := config.LoadConfig(workspaceRoot)
		if err != nil {
			logger.Warn("Failed to load config, using defaults", map[string]interface{}{
				"error": err.Error(),
			})
			cfg = config.DefaultConfig()
		}
		sharedConfig = cfg

		db, err := storage.Open(workspaceRoot, logger)
		if err != nil {
			engineErr = fmt.Errorf("failed to open database: %w", err)
			return
		}

		fieldNetwork, err := network.Load(db)
		if err != nil {
			db.Close()
			engineErr = fmt.Errorf("failed to load field network: %w", err)
			return
		}

		sharedDB = db
		sharedEngine = algebra.New(fieldNetwork, storage.NewStore(db), logger)
	})

	return sharedEngine, sharedDB, engineErr
}

// mustGetEngine returns the shared engine or exits on error.
func mustGetEngine(workspaceRoot string, logger *logging.Logger) (*algebra.Algebra, *storage.DB) {
	engine, db, err := getEngine(workspaceRoot, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing engine: %v\n", err)
		os.Exit(1)
	}
	return engine, db
}

// getWorkspaceRoot returns the workspace root directory.
func getWorkspaceRoot() (string, error) {
	return os.Getwd()
}

// mustGetWorkspaceRoot returns the workspace root or exits on error.
func mustGetWorkspaceRoot() string {
	workspaceRoot, err := getWorkspaceRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return workspaceRoot
}

// effectiveMax resolves a result limit from the flag value, falling back
// to the workspace config when the flag was left at zero.
func effectiveMax(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

// newLogger creates a logger with the specified format.
func newLogger(format string) *logging.Logger {
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  logging.InfoLevel,
	})
}
