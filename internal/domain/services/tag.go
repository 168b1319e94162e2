package services

import (
	"context"
	"fmt"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
)

// SuggestionLimit caps tag suggestions; the only UI-facing cap in the core,
// since suggestions feed autocomplete.
const SuggestionLimit = 5

// TagService maintains the many-to-many association between normalized tag
// names and content items within a world.
type TagService struct {
	store   ports.Store
	maxTags int
}

// NewTagService creates a new TagService. maxTags caps how many tags one
// content item may hold.
func NewTagService(store ports.Store, maxTags int) *TagService {
	return &TagService{store: store, maxTags: maxTags}
}

// TagWithContent pairs a tag with every content item carrying it.
type TagWithContent struct {
	Tag           entities.Tag            `json:"tag"`
	TaggedContent []*entities.ContentItem `json:"tagged_content"`
}

// Add tags a content item. The tag is created lazily on first use in the
// world and reused afterwards; adding the same tag twice is a no-op. A new
// tag beyond the per-item limit is rejected with a validation error.
func (s *TagService) Add(ctx context.Context, worldID string, ref entities.ContentRef, name, author string) (*entities.Tag, error) {
	normalized, err := entities.ValidateTagName(name)
	if err != nil {
		return nil, err
	}

	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}
	item, err := s.store.FindContent(ctx, worldID, ref)
	if err != nil {
		return nil, fmt.Errorf("finding content: %w", err)
	}
	if item == nil {
		return nil, entities.NotFoundf("content %s", ref)
	}

	tag, err := s.store.FindOrCreateTag(ctx, worldID, normalized, author)
	if err != nil {
		return nil, fmt.Errorf("finding or creating tag: %w", err)
	}

	if _, err := s.store.AttachTag(ctx, item.ID, tag.ID, s.maxTags); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListWorld returns a world's tags ordered by name, with usage counts.
func (s *TagService) ListWorld(ctx context.Context, worldID string) ([]entities.Tag, error) {
	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}
	return s.store.ListWorldTags(ctx, worldID)
}

// Get returns a tag and every content item carrying it, across all kinds.
func (s *TagService) Get(ctx context.Context, worldID, name string) (*TagWithContent, error) {
	normalized, err := entities.ValidateTagName(name)
	if err != nil {
		return nil, err
	}
	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}

	tag, err := s.store.FindTagByName(ctx, worldID, normalized)
	if err != nil {
		return nil, fmt.Errorf("finding tag: %w", err)
	}
	if tag == nil {
		return nil, entities.NotFoundf("tag %q", normalized)
	}

	tagged, err := s.store.ListContentByTag(ctx, tag.ID)
	if err != nil {
		return nil, fmt.Errorf("listing tagged content: %w", err)
	}
	tag.UsageCount = len(tagged)

	return &TagWithContent{Tag: *tag, TaggedContent: tagged}, nil
}

// ListForContent returns the tags on one content item.
func (s *TagService) ListForContent(ctx context.Context, worldID string, ref entities.ContentRef) ([]entities.Tag, error) {
	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}
	item, err := s.store.FindContent(ctx, worldID, ref)
	if err != nil {
		return nil, fmt.Errorf("finding content: %w", err)
	}
	if item == nil {
		return nil, entities.NotFoundf("content %s", ref)
	}
	return s.store.ListTagsForContent(ctx, item.ID)
}

// Suggest returns up to SuggestionLimit tag names matching the prefix,
// case-insensitively. When target is non-nil, names already on that content
// item are excluded.
func (s *TagService) Suggest(ctx context.Context, worldID, prefix string, target *entities.ContentRef) ([]string, error) {
	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}

	var exclude []string
	if target != nil {
		item, err := s.store.FindContent(ctx, worldID, *target)
		if err != nil {
			return nil, fmt.Errorf("finding content: %w", err)
		}
		if item == nil {
			return nil, entities.NotFoundf("content %s", *target)
		}
		existing, err := s.store.ListTagsForContent(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("listing content tags: %w", err)
		}
		exclude = make([]string, len(existing))
		for i, tag := range existing {
			exclude[i] = tag.Name
		}
	}

	return s.store.SuggestTags(ctx, worldID, entities.NormalizeTagName(prefix), exclude, SuggestionLimit)
}
