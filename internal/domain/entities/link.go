package entities

import "time"

// ContentLink is a directed edge between two content items in the same
// world. Storage keeps the direction so provenance (who linked what to what)
// survives; discovery views merge both directions. The ordered (from, to)
// pair is unique; a reverse edge is a distinct link.
type ContentLink struct {
	ID        string     `json:"id"`
	WorldID   string     `json:"world_id"`
	From      ContentRef `json:"from"`
	To        ContentRef `json:"to"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"created_at"`
}

// Validate checks link invariants that do not require storage access.
func (l *ContentLink) Validate() error {
	if l.WorldID == "" {
		return NewValidationError("world", "link must belong to a world")
	}
	if l.Author == "" {
		return NewValidationError("author", "author identity is required")
	}
	if _, err := ParseKind(string(l.From.Kind)); err != nil {
		return err
	}
	if _, err := ParseKind(string(l.To.Kind)); err != nil {
		return err
	}
	if l.From.ID == "" || l.To.ID == "" {
		return NewValidationError("link", "both endpoints are required")
	}
	if l.From == l.To {
		return ErrSelfLink
	}
	return nil
}

// ResolvedLink pairs a stored edge with the summary of its far endpoint,
// from the perspective of the content item being viewed.
type ResolvedLink struct {
	Link  ContentLink    `json:"link"`
	Other ContentSummary `json:"other"`
}

// LinkNeighborhood is the discovery view of one content item's edges:
// outgoing ("linked content") and incoming ("linked from") resolved to
// summaries.
type LinkNeighborhood struct {
	Outgoing []ResolvedLink `json:"outgoing"`
	Incoming []ResolvedLink `json:"incoming"`
}
