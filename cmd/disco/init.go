package main

import (
	"fmt"
	"os"
	"path/filepath"

	"disco/internal/config"
	"disco/internal/logging"
	"disco/internal/storage"

	"github.com/spf13/cobra"
)

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a disco workspace",
	Long:  "Creates a .disco/ directory with default configuration and an empty catalog database in the current directory",
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Force reinitialization (removes existing .disco directory)")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.InfoLevel,
	})

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	discoDir := filepath.Join(cwd, ".disco")
	if _, statErr := os.Stat(discoDir); statErr == nil {
		if !initForce {
			// Idempotent behavior: already initialized is success
			fmt.Println("disco already initialized.")
			fmt.Printf("Configuration at: %s\n", filepath.Join(discoDir, "config.json"))
			fmt.Println("\nRun 'disco init --force' to reinitialize.")
			return nil
		}
		if removeErr := os.RemoveAll(discoDir); removeErr != nil {
			return fmt.Errorf("failed to remove existing .disco directory: %w", removeErr)
		}
		logger.Info("Removed existing .disco directory", nil)
	}

	if mkdirErr := os.MkdirAll(discoDir, 0755); mkdirErr != nil {
		return fmt.Errorf("failed to create .disco directory: %w", mkdirErr)
	}

	cfg := config.DefaultConfig()
	if saveErr := cfg.Save(cwd); saveErr != nil {
		return fmt.Errorf("failed to write config file: %w", saveErr)
	}

	db, err := storage.Open(cwd, logger)
	if err != nil {
		return fmt.Errorf("failed to create catalog database: %w", err)
	}
	if closeErr := db.Close(); closeErr != nil {
		return fmt.Errorf("failed to close catalog database: %w", closeErr)
	}

	fmt.Println("Initialized disco workspace.")
	fmt.Printf("Configuration at: %s\n", filepath.Join(discoDir, "config.json"))
	fmt.Println("\nNext: ingest a catalog declaration with 'disco ingest <file>'.")
	return nil
}
