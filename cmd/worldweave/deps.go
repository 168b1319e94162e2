package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/avencia/worldweave/internal/application/handlers"
	"github.com/avencia/worldweave/internal/domain/ports"
	"github.com/avencia/worldweave/internal/domain/services"
	"github.com/avencia/worldweave/internal/infrastructure/config"
	"github.com/avencia/worldweave/internal/infrastructure/relationaldb/sqlite"
)

// Deps holds high-level dependencies for commands.
// Only handlers are exposed - services and the store are internal.
type Deps struct {
	Config  *config.Config
	Worlds  *handlers.WorldHandler
	Content *handlers.ContentHandler
	Tags    *handlers.TagHandler
	Links   *handlers.LinkHandler
	Stats   *handlers.StatsHandler
}

// internalDeps holds all dependencies including low-level components.
type internalDeps struct {
	Deps
	store ports.Store
}

// withDeps loads config and builds dependencies, then calls the provided
// function. It handles cleanup automatically.
func withDeps(fn func(*Deps) error) error {
	return withInternalDeps(func(d *internalDeps) error {
		return fn(&d.Deps)
	})
}

// withInternalDeps provides access to all dependencies including the store.
func withInternalDeps(fn func(*internalDeps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	store, err := sqlite.NewRepository(cfg.SQLite)
	if err != nil {
		return fmt.Errorf("creating sqlite repository: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensuring sqlite schema: %w", err)
	}

	weights := cfg.Collaboration.Weights()
	deps := &internalDeps{
		Deps: Deps{
			Config:  cfg,
			Worlds:  handlers.NewWorldHandler(services.NewWorldService(store)),
			Content: handlers.NewContentHandler(services.NewContentService(store)),
			Tags:    handlers.NewTagHandler(services.NewTagService(store, cfg.Tags.MaxPerContent)),
			Links:   handlers.NewLinkHandler(services.NewLinkService(store)),
			Stats:   handlers.NewStatsHandler(services.NewAttributionService(store, weights)),
		},
		store: store,
	}

	return fn(deps)
}

// requireWorld returns the world flag or an error when unset.
func requireWorld() (string, error) {
	if globalWorld == "" {
		return "", errors.New("world is required (use --world flag)")
	}
	return globalWorld, nil
}

// requireAuthor returns the author flag or an error when unset. Every write
// carries an author identity.
func requireAuthor() (string, error) {
	if globalAuthor == "" {
		return "", errors.New("author is required (use --author flag)")
	}
	return globalAuthor, nil
}
