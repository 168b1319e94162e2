package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
)

// AttributionService computes per-content and per-world collaboration views.
// Everything here is derived on read from stored content, tags, and links;
// there is no mutable state to go stale.
type AttributionService struct {
	store   ports.Store
	weights entities.ScoreWeights
}

// NewAttributionService creates a new AttributionService with the given
// score policy.
func NewAttributionService(store ports.Store, weights entities.ScoreWeights) *AttributionService {
	return &AttributionService{store: store, weights: weights}
}

// Of computes the attribution view for one content item. A link counts as
// cross-author when its far endpoint has a different author than the item.
// Unknown world or content surfaces ErrNotFound; a missing entity is a
// different condition than an entity with no relationships.
func (s *AttributionService) Of(ctx context.Context, worldID string, ref entities.ContentRef) (*entities.Attribution, error) {
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

	outgoing, err := s.store.ListOutgoingLinks(ctx, worldID, ref)
	if err != nil {
		return nil, fmt.Errorf("listing outgoing links: %w", err)
	}
	incoming, err := s.store.ListIncomingLinks(ctx, worldID, ref)
	if err != nil {
		return nil, fmt.Errorf("listing incoming links: %w", err)
	}
	tags, err := s.store.ListTagsForContent(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("listing content tags: %w", err)
	}

	crossAuthor, err := s.countCrossAuthor(ctx, worldID, item, outgoing, incoming)
	if err != nil {
		return nil, err
	}

	return &entities.Attribution{
		Ref:                ref,
		Author:             item.Author,
		CreatedAt:          item.CreatedAt,
		OutgoingCount:      len(outgoing),
		IncomingCount:      len(incoming),
		TagCount:           len(tags),
		IsCollaborative:    crossAuthor > 0,
		CollaborationScore: s.weights.Score(crossAuthor, len(tags)),
	}, nil
}

// countCrossAuthor counts incident links whose far endpoint has a different
// author than the item.
func (s *AttributionService) countCrossAuthor(
	ctx context.Context,
	worldID string,
	item *entities.ContentItem,
	outgoing, incoming []entities.ContentLink,
) (int, error) {
	refs := make([]entities.ContentRef, 0, len(outgoing)+len(incoming))
	for _, link := range outgoing {
		refs = append(refs, link.To)
	}
	for _, link := range incoming {
		refs = append(refs, link.From)
	}
	if len(refs) == 0 {
		return 0, nil
	}

	others, err := s.store.FindContentByRefs(ctx, worldID, refs)
	if err != nil {
		return 0, fmt.Errorf("resolving link endpoints: %w", err)
	}
	authors := make(map[entities.ContentRef]string, len(others))
	for _, other := range others {
		authors[other.Ref()] = other.Author
	}

	count := 0
	for _, ref := range refs {
		if author, ok := authors[ref]; ok && author != item.Author {
			count++
		}
	}
	return count, nil
}

// WorldStats computes collaboration statistics for a world in a single pass
// over its content and links. An empty world yields all-zero counts and a
// ratio of 0.
func (s *AttributionService) WorldStats(ctx context.Context, worldID string) (*entities.WorldStats, error) {
	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}

	content, err := s.store.ListWorldContent(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("listing world content: %w", err)
	}
	links, err := s.store.ListWorldLinks(ctx, worldID)
	if err != nil {
		return nil, fmt.Errorf("listing world links: %w", err)
	}

	authorByRef := make(map[entities.ContentRef]string, len(content))
	perAuthor := make(map[string]*entities.ContributorStats)
	contributor := func(author string) *entities.ContributorStats {
		stats, ok := perAuthor[author]
		if !ok {
			stats = &entities.ContributorStats{Author: author}
			perAuthor[author] = stats
		}
		return stats
	}

	for _, item := range content {
		authorByRef[item.Ref()] = item.Author
		contributor(item.Author).ContentCount++
	}

	stats := &entities.WorldStats{WorldID: worldID}
	crossByAuthor := make(map[string]int)
	for _, link := range links {
		stats.TotalLinks++

		fromAuthor, fromOK := authorByRef[link.From]
		toAuthor, toOK := authorByRef[link.To]
		if fromOK {
			contributor(fromAuthor).LinksCreated++
		}
		if toOK {
			contributor(toAuthor).LinksReceived++
		}
		if fromOK && toOK && fromAuthor != toAuthor {
			stats.CrossAuthorLinks++
			crossByAuthor[fromAuthor]++
			crossByAuthor[toAuthor]++
		}
	}

	if stats.TotalLinks > 0 {
		stats.CrossAuthorRatio = float64(stats.CrossAuthorLinks) / float64(stats.TotalLinks)
	}

	stats.Contributors = make([]entities.ContributorStats, 0, len(perAuthor))
	for author, c := range perAuthor {
		c.CollaborationScore = s.weights.Score(crossByAuthor[author], 0)
		stats.Contributors = append(stats.Contributors, *c)
	}
	sort.Slice(stats.Contributors, func(i, j int) bool {
		return stats.Contributors[i].Author < stats.Contributors[j].Author
	})
	stats.ContributorCount = len(stats.Contributors)

	return stats, nil
}
