// Package ports defines the interfaces between the domain and its
// infrastructure adapters.
package ports

import (
	"context"

	"github.com/avencia/worldweave/internal/domain/entities"
)

// ContentFilter narrows a content listing. Zero values mean "no filter".
type ContentFilter struct {
	Kind   entities.Kind // restrict to one kind
	Author string        // restrict to one author
	Query  string        // case-insensitive substring match on title or body
	Limit  int
	Offset int
}

// Store defines the persistence interface for worlds, content, tags, and
// links. Implementations must enforce uniqueness at the storage layer so that
// duplicate tag and link writes are safe under concurrency; the domain never
// does check-then-insert.
//
// Find* methods return (nil, nil) when the record does not exist; services
// translate that into entities.ErrNotFound.
type Store interface {
	// EnsureSchema creates the schema if it doesn't exist.
	EnsureSchema(ctx context.Context) error

	// Close closes the underlying connection.
	Close() error

	// World operations

	// SaveWorld inserts a new world.
	SaveWorld(ctx context.Context, world *entities.World) error

	// FindWorldByID finds a world by id.
	FindWorldByID(ctx context.Context, worldID string) (*entities.World, error)

	// ListWorlds lists worlds visible to the given author: public worlds
	// plus the author's own private ones.
	ListWorlds(ctx context.Context, viewer string) ([]*entities.World, error)

	// Content operations

	// InsertContent persists a new content item, assigning CreatedAt and
	// Seq so that both are monotonic within the world. Returns
	// entities.ErrConflictRetryable if sequence contention persists after
	// retries.
	InsertContent(ctx context.Context, item *entities.ContentItem) error

	// FindContent finds one content item by world and (kind, id).
	FindContent(ctx context.Context, worldID string, ref entities.ContentRef) (*entities.ContentItem, error)

	// FindContentByRefs fetches multiple items by reference. Missing refs
	// are simply absent from the result.
	FindContentByRefs(ctx context.Context, worldID string, refs []entities.ContentRef) ([]*entities.ContentItem, error)

	// ListContent lists a world's content, newest first (seq descending).
	ListContent(ctx context.Context, worldID string, filter ContentFilter) ([]*entities.ContentItem, error)

	// ListWorldContent returns every content item in a world, for
	// single-pass aggregate computation.
	ListWorldContent(ctx context.Context, worldID string) ([]*entities.ContentItem, error)

	// Tag operations

	// FindOrCreateTag atomically finds or creates the tag with the given
	// normalized name, keyed by UNIQUE(world, name).
	FindOrCreateTag(ctx context.Context, worldID, name, author string) (*entities.Tag, error)

	// FindTagByName finds a tag by its normalized name.
	FindTagByName(ctx context.Context, worldID, name string) (*entities.Tag, error)

	// AttachTag associates a tag with a content item, idempotently, in a
	// single guarded statement. Returns false with no error when the
	// association already existed, and a tag-limit ValidationError when
	// the item already holds limit tags and the tag is new to it.
	AttachTag(ctx context.Context, contentID, tagID string, limit int) (bool, error)

	// ListWorldTags lists a world's tags ordered by name, with usage counts.
	ListWorldTags(ctx context.Context, worldID string) ([]entities.Tag, error)

	// ListTagsForContent lists the tags on one content item, by name.
	ListTagsForContent(ctx context.Context, contentID string) ([]entities.Tag, error)

	// ListContentByTag lists every content item carrying the tag, across
	// all kinds, newest first.
	ListContentByTag(ctx context.Context, tagID string) ([]*entities.ContentItem, error)

	// SuggestTags returns up to limit tag names in the world matching the
	// prefix, excluding the given names, ordered by name.
	SuggestTags(ctx context.Context, worldID, prefix string, exclude []string, limit int) ([]string, error)

	// Link operations

	// InsertOrGetLink inserts the edge, or returns the stored edge when
	// the exact ordered (from, to) pair already exists.
	InsertOrGetLink(ctx context.Context, link *entities.ContentLink) (*entities.ContentLink, error)

	// ListOutgoingLinks lists edges whose from-endpoint is ref, newest first.
	ListOutgoingLinks(ctx context.Context, worldID string, ref entities.ContentRef) ([]entities.ContentLink, error)

	// ListIncomingLinks lists edges whose to-endpoint is ref, newest first.
	ListIncomingLinks(ctx context.Context, worldID string, ref entities.ContentRef) ([]entities.ContentLink, error)

	// ListWorldLinks returns every link in a world, for single-pass
	// aggregate computation.
	ListWorldLinks(ctx context.Context, worldID string) ([]entities.ContentLink, error)
}
