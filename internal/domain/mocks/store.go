// Package mocks contains hand-written test doubles for the domain ports.
package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
)

// Store is a mock implementation of ports.Store backed by maps. Setting Err
// makes every method fail with it.
type Store struct {
	Worlds  map[string]*entities.World
	Content map[string]*entities.ContentItem // by content id
	Tags    map[string]*entities.Tag         // by tag id
	Assocs  map[string]map[string]bool       // content id -> tag id set
	Links   map[string]*entities.ContentLink // by link id
	Err     error

	nextSeq map[string]int64
	lastTS  map[string]time.Time
}

// NewStore creates a new mock Store.
func NewStore() *Store {
	return &Store{
		Worlds:  make(map[string]*entities.World),
		Content: make(map[string]*entities.ContentItem),
		Tags:    make(map[string]*entities.Tag),
		Assocs:  make(map[string]map[string]bool),
		Links:   make(map[string]*entities.ContentLink),
		nextSeq: make(map[string]int64),
		lastTS:  make(map[string]time.Time),
	}
}

// EnsureSchema creates the schema if it doesn't exist.
func (m *Store) EnsureSchema(_ context.Context) error {
	return m.Err
}

// Close closes the underlying connection.
func (m *Store) Close() error {
	return nil
}

// World operations.

// SaveWorld inserts a new world.
func (m *Store) SaveWorld(_ context.Context, world *entities.World) error {
	if m.Err != nil {
		return m.Err
	}
	m.Worlds[world.ID] = world
	return nil
}

// FindWorldByID finds a world by id.
func (m *Store) FindWorldByID(_ context.Context, worldID string) (*entities.World, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Worlds[worldID], nil
}

// ListWorlds lists worlds visible to the given author.
func (m *Store) ListWorlds(_ context.Context, viewer string) ([]*entities.World, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.World, 0, len(m.Worlds))
	for _, world := range m.Worlds {
		if world.VisibleTo(viewer) {
			result = append(result, world)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// Content operations.

// InsertContent persists a new content item with mock monotonic ordering.
func (m *Store) InsertContent(_ context.Context, item *entities.ContentItem) error {
	if m.Err != nil {
		return m.Err
	}
	m.nextSeq[item.WorldID]++
	item.Seq = m.nextSeq[item.WorldID]

	now := time.Now().UTC()
	if last, ok := m.lastTS[item.WorldID]; ok && now.Before(last) {
		now = last
	}
	m.lastTS[item.WorldID] = now
	item.CreatedAt = now

	m.Content[item.ID] = item
	return nil
}

// FindContent finds one content item by world and (kind, id).
func (m *Store) FindContent(_ context.Context, worldID string, ref entities.ContentRef) (*entities.ContentItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	item, ok := m.Content[ref.ID]
	if !ok || item.WorldID != worldID || item.Kind != ref.Kind {
		return nil, nil
	}
	return item, nil
}

// FindContentByRefs fetches multiple items by reference.
func (m *Store) FindContentByRefs(ctx context.Context, worldID string, refs []entities.ContentRef) ([]*entities.ContentItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.ContentItem, 0, len(refs))
	for _, ref := range refs {
		item, err := m.FindContent(ctx, worldID, ref)
		if err != nil {
			return nil, err
		}
		if item != nil {
			result = append(result, item)
		}
	}
	return result, nil
}

// ListContent lists a world's content, newest first.
func (m *Store) ListContent(_ context.Context, worldID string, filter ports.ContentFilter) ([]*entities.ContentItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.ContentItem, 0, len(m.Content))
	for _, item := range m.Content {
		if item.WorldID != worldID {
			continue
		}
		if filter.Kind != "" && item.Kind != filter.Kind {
			continue
		}
		if filter.Author != "" && item.Author != filter.Author {
			continue
		}
		if filter.Query != "" {
			q := strings.ToLower(filter.Query)
			if !strings.Contains(strings.ToLower(item.Title), q) &&
				!strings.Contains(strings.ToLower(item.Body), q) {
				continue
			}
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq > result[j].Seq })

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []*entities.ContentItem{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

// ListWorldContent returns every content item in a world.
func (m *Store) ListWorldContent(ctx context.Context, worldID string) ([]*entities.ContentItem, error) {
	return m.ListContent(ctx, worldID, ports.ContentFilter{})
}

// Tag operations.

// FindOrCreateTag finds a tag by normalized name or creates it.
func (m *Store) FindOrCreateTag(ctx context.Context, worldID, name, author string) (*entities.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if existing, _ := m.FindTagByName(ctx, worldID, name); existing != nil {
		return existing, nil
	}
	tag := &entities.Tag{
		ID:        "tag-" + worldID + "-" + name,
		WorldID:   worldID,
		Name:      name,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	m.Tags[tag.ID] = tag
	return tag, nil
}

// FindTagByName finds a tag by its normalized name.
func (m *Store) FindTagByName(_ context.Context, worldID, name string) (*entities.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, tag := range m.Tags {
		if tag.WorldID == worldID && tag.Name == name {
			return tag, nil
		}
	}
	return nil, nil
}

// AttachTag associates a tag with a content item, idempotently.
func (m *Store) AttachTag(_ context.Context, contentID, tagID string, limit int) (bool, error) {
	if m.Err != nil {
		return false, m.Err
	}
	set := m.Assocs[contentID]
	if set == nil {
		set = make(map[string]bool)
		m.Assocs[contentID] = set
	}
	if set[tagID] {
		return false, nil
	}
	if len(set) >= limit {
		return false, entities.TagLimitExceeded(limit)
	}
	set[tagID] = true
	return true, nil
}

// ListWorldTags lists a world's tags ordered by name, with usage counts.
func (m *Store) ListWorldTags(_ context.Context, worldID string) ([]entities.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Tag, 0, len(m.Tags))
	for _, tag := range m.Tags {
		if tag.WorldID != worldID {
			continue
		}
		copied := *tag
		for _, set := range m.Assocs {
			if set[tag.ID] {
				copied.UsageCount++
			}
		}
		result = append(result, copied)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ListTagsForContent lists the tags on one content item, by name.
func (m *Store) ListTagsForContent(_ context.Context, contentID string) ([]entities.Tag, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]entities.Tag, 0, 8)
	for tagID := range m.Assocs[contentID] {
		if tag, ok := m.Tags[tagID]; ok {
			result = append(result, *tag)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ListContentByTag lists every content item carrying the tag, newest first.
func (m *Store) ListContentByTag(_ context.Context, tagID string) ([]*entities.ContentItem, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	result := make([]*entities.ContentItem, 0, 8)
	for contentID, set := range m.Assocs {
		if set[tagID] {
			if item, ok := m.Content[contentID]; ok {
				result = append(result, item)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Seq > result[j].Seq })
	return result, nil
}

// SuggestTags returns up to limit tag names matching the prefix.
func (m *Store) SuggestTags(_ context.Context, worldID, prefix string, exclude []string, limit int) ([]string, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}
	names := make([]string, 0, limit)
	for _, tag := range m.Tags {
		if tag.WorldID != worldID || excluded[tag.Name] {
			continue
		}
		if strings.HasPrefix(tag.Name, prefix) {
			names = append(names, tag.Name)
		}
	}
	sort.Strings(names)
	if len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}

// Link operations.

// InsertOrGetLink inserts the edge, or returns the stored edge for the
// ordered pair.
func (m *Store) InsertOrGetLink(_ context.Context, link *entities.ContentLink) (*entities.ContentLink, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, existing := range m.Links {
		if existing.WorldID == link.WorldID && existing.From == link.From && existing.To == link.To {
			return existing, nil
		}
	}
	stored := *link
	stored.CreatedAt = time.Now().UTC()
	m.Links[stored.ID] = &stored
	return &stored, nil
}

// ListOutgoingLinks lists edges whose from-endpoint is ref.
func (m *Store) ListOutgoingLinks(_ context.Context, worldID string, ref entities.ContentRef) ([]entities.ContentLink, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.filterLinks(worldID, func(l *entities.ContentLink) bool { return l.From == ref }), nil
}

// ListIncomingLinks lists edges whose to-endpoint is ref.
func (m *Store) ListIncomingLinks(_ context.Context, worldID string, ref entities.ContentRef) ([]entities.ContentLink, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.filterLinks(worldID, func(l *entities.ContentLink) bool { return l.To == ref }), nil
}

// ListWorldLinks returns every link in a world.
func (m *Store) ListWorldLinks(_ context.Context, worldID string) ([]entities.ContentLink, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.filterLinks(worldID, func(*entities.ContentLink) bool { return true }), nil
}

func (m *Store) filterLinks(worldID string, keep func(*entities.ContentLink) bool) []entities.ContentLink {
	result := make([]entities.ContentLink, 0, len(m.Links))
	for _, link := range m.Links {
		if link.WorldID == worldID && keep(link) {
			result = append(result, *link)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}
