package handlers

import (
	"context"
	"encoding/json"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
	"github.com/avencia/worldweave/internal/domain/services"
)

// ContentHandler handles content operations at the application layer.
type ContentHandler struct {
	contentService *services.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *services.ContentService) *ContentHandler {
	return &ContentHandler{
		contentService: contentService,
	}
}

// ContentInput is the string-typed creation request. Details carries the
// kind-specific payload as raw JSON so the CLI and HTTP layers don't each
// re-declare the five variants.
type ContentInput struct {
	WorldID string
	Kind    string
	Title   string
	Body    string
	Author  string
	Details json.RawMessage
}

// ContentListResult contains the result of listing content.
type ContentListResult struct {
	Items []*entities.ContentItem `json:"items"`
	Total int                     `json:"total"`
}

// parseRef validates a string-typed (kind, id) pair.
func parseRef(kind, id string) (entities.ContentRef, error) {
	k, err := entities.ParseKind(kind)
	if err != nil {
		return entities.ContentRef{}, err
	}
	if id == "" {
		return entities.ContentRef{}, entities.NewValidationError("id", "content id is required")
	}
	return entities.ContentRef{Kind: k, ID: id}, nil
}

// HandleCreate validates the input and creates a new content item.
func (h *ContentHandler) HandleCreate(ctx context.Context, input ContentInput) (*entities.ContentItem, error) {
	kind, err := entities.ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	item := &entities.ContentItem{
		WorldID: input.WorldID,
		Kind:    kind,
		Title:   input.Title,
		Body:    input.Body,
		Author:  input.Author,
	}
	if len(input.Details) > 0 {
		if err := item.DecodeDetails(input.Details); err != nil {
			return nil, entities.NewValidationError("details", err.Error())
		}
	}

	return h.contentService.Create(ctx, item)
}

// HandleGet returns one content item by world, kind, and id.
func (h *ContentHandler) HandleGet(ctx context.Context, worldID, kind, id string) (*entities.ContentItem, error) {
	ref, err := parseRef(kind, id)
	if err != nil {
		return nil, err
	}
	return h.contentService.Get(ctx, worldID, ref)
}

// HandleList returns a world's content, newest first, with optional filters.
// An empty kind means all kinds.
func (h *ContentHandler) HandleList(ctx context.Context, worldID, kind, author, query string, limit, offset int) (*ContentListResult, error) {
	filter := ports.ContentFilter{
		Kind:   entities.Kind(kind),
		Author: author,
		Query:  query,
		Limit:  limit,
		Offset: offset,
	}
	items, err := h.contentService.List(ctx, worldID, filter)
	if err != nil {
		return nil, err
	}
	return &ContentListResult{
		Items: items,
		Total: len(items),
	}, nil
}
