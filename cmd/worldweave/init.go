package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avencia/worldweave/internal/infrastructure/config"
	"github.com/avencia/worldweave/internal/infrastructure/relationaldb/sqlite"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new worldweave database",
		Long:  "Creates a .worldweave directory with default configuration and sets up the SQLite schema.",
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	if config.Exists(cwd) {
		return fmt.Errorf("worldweave already initialized in %s", cwd)
	}

	if err := config.Default().Save(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	fmt.Printf("Created %s\n", config.ConfigFilePath(cwd))

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	fmt.Printf("Created database: %s\n", cfg.SQLite.Path)
	fmt.Println("Worldweave initialized successfully!")

	return nil
}
