package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
)

// ContentService creates and retrieves immutable content items. The contract
// deliberately has no update or delete: absence of the capability is the
// enforcement.
type ContentService struct {
	store ports.Store
}

// NewContentService creates a new ContentService.
func NewContentService(store ports.Store) *ContentService {
	return &ContentService{store: store}
}

// Create validates and persists a new content item. The caller supplies the
// envelope and kind payload; the service assigns the id and the store assigns
// creation time and sequence. Creation never touches tags or links.
func (s *ContentService) Create(ctx context.Context, item *entities.ContentItem) (*entities.ContentItem, error) {
	if _, err := requireWorld(ctx, s.store, item.WorldID); err != nil {
		return nil, err
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()
	item.DeriveCounts()

	if err := s.store.InsertContent(ctx, item); err != nil {
		return nil, fmt.Errorf("inserting content: %w", err)
	}
	return item, nil
}

// Get returns one content item by world and (kind, id).
func (s *ContentService) Get(ctx context.Context, worldID string, ref entities.ContentRef) (*entities.ContentItem, error) {
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
	return item, nil
}

// List returns a world's content, newest first, with optional kind, author,
// and substring filters. This is plain filtering, not search ranking.
func (s *ContentService) List(ctx context.Context, worldID string, filter ports.ContentFilter) ([]*entities.ContentItem, error) {
	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}
	if filter.Kind != "" {
		if _, err := entities.ParseKind(string(filter.Kind)); err != nil {
			return nil, err
		}
	}
	return s.store.ListContent(ctx, worldID, filter)
}
