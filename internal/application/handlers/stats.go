package handlers

import (
	"context"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/services"
)

// StatsHandler handles attribution and collaboration views at the
// application layer.
type StatsHandler struct {
	attributionService *services.AttributionService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(attributionService *services.AttributionService) *StatsHandler {
	return &StatsHandler{
		attributionService: attributionService,
	}
}

// HandleContent returns the attribution view for one content item.
func (h *StatsHandler) HandleContent(ctx context.Context, worldID, kind, id string) (*entities.Attribution, error) {
	ref, err := parseRef(kind, id)
	if err != nil {
		return nil, err
	}
	return h.attributionService.Of(ctx, worldID, ref)
}

// HandleWorld returns collaboration statistics for a world.
func (h *StatsHandler) HandleWorld(ctx context.Context, worldID string) (*entities.WorldStats, error) {
	return h.attributionService.WorldStats(ctx, worldID)
}
