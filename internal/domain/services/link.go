package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
)

// LinkService maintains directed association edges between content items.
// Edges are stored directionally so provenance survives, but discovery views
// merge both directions.
type LinkService struct {
	store ports.Store
}

// NewLinkService creates a new LinkService.
func NewLinkService(store ports.Store) *LinkService {
	return &LinkService{store: store}
}

// Add creates a directed link between two existing content items in the
// world. Self-links are rejected; missing endpoints are a dangling-reference
// error; an exact ordered duplicate returns the stored edge. Two users
// clicking "add link" on the same pair concurrently converge on one edge via
// the storage uniqueness constraint, never a duplicate.
func (s *LinkService) Add(ctx context.Context, worldID string, from, to entities.ContentRef, author string) (*entities.ContentLink, error) {
	link := &entities.ContentLink{
		ID:      uuid.New().String(),
		WorldID: worldID,
		From:    from,
		To:      to,
		Author:  author,
	}
	if err := link.Validate(); err != nil {
		return nil, err
	}
	if _, err := requireWorld(ctx, s.store, worldID); err != nil {
		return nil, err
	}

	endpoints, err := s.store.FindContentByRefs(ctx, worldID, []entities.ContentRef{from, to})
	if err != nil {
		return nil, fmt.Errorf("resolving link endpoints: %w", err)
	}
	found := make(map[entities.ContentRef]bool, len(endpoints))
	for _, item := range endpoints {
		found[item.Ref()] = true
	}
	if !found[from] {
		return nil, fmt.Errorf("from endpoint %s: %w", from, entities.ErrDanglingReference)
	}
	if !found[to] {
		return nil, fmt.Errorf("to endpoint %s: %w", to, entities.ErrDanglingReference)
	}

	stored, err := s.store.InsertOrGetLink(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("inserting link: %w", err)
	}
	return stored, nil
}

// Neighborhood returns the discovery view of one content item's edges:
// outgoing and incoming links with each far endpoint resolved to a summary.
func (s *LinkService) Neighborhood(ctx context.Context, worldID string, ref entities.ContentRef) (*entities.LinkNeighborhood, error) {
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

	// Resolve all far endpoints in one fetch.
	refs := make([]entities.ContentRef, 0, len(outgoing)+len(incoming))
	for _, link := range outgoing {
		refs = append(refs, link.To)
	}
	for _, link := range incoming {
		refs = append(refs, link.From)
	}
	items, err := s.store.FindContentByRefs(ctx, worldID, refs)
	if err != nil {
		return nil, fmt.Errorf("resolving linked content: %w", err)
	}
	summaries := make(map[entities.ContentRef]entities.ContentSummary, len(items))
	for _, it := range items {
		summaries[it.Ref()] = it.Summarize()
	}

	view := &entities.LinkNeighborhood{
		Outgoing: make([]entities.ResolvedLink, 0, len(outgoing)),
		Incoming: make([]entities.ResolvedLink, 0, len(incoming)),
	}
	for _, link := range outgoing {
		view.Outgoing = append(view.Outgoing, entities.ResolvedLink{Link: link, Other: summaries[link.To]})
	}
	for _, link := range incoming {
		view.Incoming = append(view.Incoming, entities.ResolvedLink{Link: link, Other: summaries[link.From]})
	}
	return view, nil
}
