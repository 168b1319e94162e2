// Package services contains the domain logic for worlds, content, tags,
// links, and derived attribution.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
)

// WorldService manages world namespaces.
type WorldService struct {
	store ports.Store
}

// NewWorldService creates a new WorldService.
func NewWorldService(store ports.Store) *WorldService {
	return &WorldService{store: store}
}

// Create creates a new world owned by the given author.
func (s *WorldService) Create(ctx context.Context, title string, visibility entities.Visibility, creator string) (*entities.World, error) {
	world := &entities.World{
		ID:         uuid.New().String(),
		Title:      title,
		Visibility: visibility,
		Creator:    creator,
		CreatedAt:  time.Now().UTC(),
	}
	if err := world.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.SaveWorld(ctx, world); err != nil {
		return nil, fmt.Errorf("saving world: %w", err)
	}
	return world, nil
}

// Get returns a world by id.
func (s *WorldService) Get(ctx context.Context, worldID string) (*entities.World, error) {
	world, err := s.store.FindWorldByID(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("finding world: %w", err)
	}
	if world == nil {
		return nil, entities.NotFoundf("world %q", worldID)
	}
	return world, nil
}

// List returns worlds visible to the viewer: public worlds plus their own.
func (s *WorldService) List(ctx context.Context, viewer string) ([]*entities.World, error) {
	return s.store.ListWorlds(ctx, viewer)
}

// requireWorld resolves a world id shared by the other services.
func requireWorld(ctx context.Context, store ports.Store, worldID string) (*entities.World, error) {
	world, err := store.FindWorldByID(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("finding world: %w", err)
	}
	if world == nil {
		return nil, entities.NotFoundf("world %q", worldID)
	}
	return world, nil
}
