// Package handlers adapts string-typed input from the CLI and HTTP layers
// into domain service calls.
package handlers

import (
	"context"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/services"
)

// WorldHandler handles world operations at the application layer.
type WorldHandler struct {
	worldService *services.WorldService
}

// NewWorldHandler creates a new WorldHandler.
func NewWorldHandler(worldService *services.WorldService) *WorldHandler {
	return &WorldHandler{
		worldService: worldService,
	}
}

// WorldListResult contains the result of listing worlds.
type WorldListResult struct {
	Worlds []*entities.World `json:"worlds"`
	Total  int               `json:"total"`
}

// HandleCreate creates a new world. Visibility is passed as a string and
// validated here.
func (h *WorldHandler) HandleCreate(ctx context.Context, title, visibility, creator string) (*entities.World, error) {
	vis, err := entities.ParseVisibility(visibility)
	if err != nil {
		return nil, err
	}
	return h.worldService.Create(ctx, title, vis, creator)
}

// HandleGet returns a world by id.
func (h *WorldHandler) HandleGet(ctx context.Context, worldID string) (*entities.World, error) {
	return h.worldService.Get(ctx, worldID)
}

// HandleList returns the worlds visible to the viewer.
func (h *WorldHandler) HandleList(ctx context.Context, viewer string) (*WorldListResult, error) {
	worlds, err := h.worldService.List(ctx, viewer)
	if err != nil {
		return nil, err
	}
	return &WorldListResult{
		Worlds: worlds,
		Total:  len(worlds),
	}, nil
}
