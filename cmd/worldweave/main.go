// Package main provides the entry point for the worldweave CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version      = "0.1.0-dev"
	globalWorld  string
	globalAuthor string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "worldweave",
		Short:   "An append-only collaborative worldbuilding store",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalWorld, "world", "w", "", "World to operate on")
	rootCmd.PersistentFlags().StringVarP(&globalAuthor, "author", "a", "", "Author identity for writes")

	rootCmd.AddCommand(
		newInitCmd(),
		newWorldsCmd(),
		newContentCmd(),
		newTagCmd(),
		newLinkCmd(),
		newStatsCmd(),
		newServeCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
