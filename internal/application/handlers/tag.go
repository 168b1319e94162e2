package handlers

import (
	"context"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/services"
)

// TagHandler handles tag operations at the application layer.
type TagHandler struct {
	tagService *services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(tagService *services.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// TagListResult contains the result of listing tags.
type TagListResult struct {
	Tags  []entities.Tag `json:"tags"`
	Total int            `json:"total"`
}

// HandleAdd tags a content item identified by kind and id.
func (h *TagHandler) HandleAdd(ctx context.Context, worldID, kind, id, name, author string) (*entities.Tag, error) {
	ref, err := parseRef(kind, id)
	if err != nil {
		return nil, err
	}
	return h.tagService.Add(ctx, worldID, ref, name, author)
}

// HandleListWorld returns a world's tags with usage counts.
func (h *TagHandler) HandleListWorld(ctx context.Context, worldID string) (*TagListResult, error) {
	tags, err := h.tagService.ListWorld(ctx, worldID)
	if err != nil {
		return nil, err
	}
	return &TagListResult{
		Tags:  tags,
		Total: len(tags),
	}, nil
}

// HandleGet returns a tag and every content item carrying it.
func (h *TagHandler) HandleGet(ctx context.Context, worldID, name string) (*services.TagWithContent, error) {
	return h.tagService.Get(ctx, worldID, name)
}

// HandleListForContent returns the tags on one content item.
func (h *TagHandler) HandleListForContent(ctx context.Context, worldID, kind, id string) (*TagListResult, error) {
	ref, err := parseRef(kind, id)
	if err != nil {
		return nil, err
	}
	tags, err := h.tagService.ListForContent(ctx, worldID, ref)
	if err != nil {
		return nil, err
	}
	return &TagListResult{
		Tags:  tags,
		Total: len(tags),
	}, nil
}

// HandleSuggest returns tag name suggestions for a prefix. When kind and id
// are both set, names already on that content item are excluded.
func (h *TagHandler) HandleSuggest(ctx context.Context, worldID, prefix, kind, id string) ([]string, error) {
	var target *entities.ContentRef
	if kind != "" || id != "" {
		ref, err := parseRef(kind, id)
		if err != nil {
			return nil, err
		}
		target = &ref
	}
	return h.tagService.Suggest(ctx, worldID, prefix, target)
}
