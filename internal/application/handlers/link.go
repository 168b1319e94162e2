package handlers

import (
	"context"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/services"
)

// LinkHandler handles link operations at the application layer.
type LinkHandler struct {
	linkService *services.LinkService
}

// NewLinkHandler creates a new LinkHandler.
func NewLinkHandler(linkService *services.LinkService) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
	}
}

// HandleAdd creates a directed link between two content items identified by
// kind and id.
func (h *LinkHandler) HandleAdd(ctx context.Context, worldID, fromKind, fromID, toKind, toID, author string) (*entities.ContentLink, error) {
	from, err := parseRef(fromKind, fromID)
	if err != nil {
		return nil, err
	}
	to, err := parseRef(toKind, toID)
	if err != nil {
		return nil, err
	}
	return h.linkService.Add(ctx, worldID, from, to, author)
}

// HandleNeighborhood returns the outgoing and incoming links of one content
// item, with far endpoints resolved.
func (h *LinkHandler) HandleNeighborhood(ctx context.Context, worldID, kind, id string) (*entities.LinkNeighborhood, error) {
	ref, err := parseRef(kind, id)
	if err != nil {
		return nil, err
	}
	return h.linkService.Neighborhood(ctx, worldID, ref)
}
