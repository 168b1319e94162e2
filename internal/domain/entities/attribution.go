package entities

import "time"

// ScoreWeights parameterizes the collaboration score. The weights are a
// policy choice and live in configuration, not in engine logic.
type ScoreWeights struct {
	LinkWeight float64 `json:"link_weight"`
	TagWeight  float64 `json:"tag_weight"`
	TagCap     int     `json:"tag_cap"`
}

// DefaultScoreWeights returns the stock collaboration policy.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{LinkWeight: 0.2, TagWeight: 0.05, TagCap: 5}
}

// Score computes the bounded collaboration score
// min(1.0, crossAuthorLinks*LinkWeight + min(tagCount, TagCap)*TagWeight).
func (w ScoreWeights) Score(crossAuthorLinks, tagCount int) float64 {
	if tagCount > w.TagCap {
		tagCount = w.TagCap
	}
	score := float64(crossAuthorLinks)*w.LinkWeight + float64(tagCount)*w.TagWeight
	if score > 1.0 {
		return 1.0
	}
	return score
}

// Attribution is the derived per-content view: who authored it, when, and
// how interconnected it is. Recomputed on demand, never stored.
type Attribution struct {
	Ref                ContentRef `json:"ref"`
	Author             string     `json:"author"`
	CreatedAt          time.Time  `json:"created_at"`
	OutgoingCount      int        `json:"outgoing_count"`
	IncomingCount      int        `json:"incoming_count"`
	TagCount           int        `json:"tag_count"`
	IsCollaborative    bool       `json:"is_collaborative"`
	CollaborationScore float64    `json:"collaboration_score"`
}

// ContributorStats summarizes one author's activity within a world.
type ContributorStats struct {
	Author             string  `json:"author"`
	ContentCount       int     `json:"content_count"`
	LinksCreated       int     `json:"links_created"`
	LinksReceived      int     `json:"links_received"`
	CollaborationScore float64 `json:"collaboration_score"`
}

// WorldStats is the derived per-world collaboration view. An empty world
// yields all-zero counts and a ratio of 0, never NaN.
type WorldStats struct {
	WorldID          string             `json:"world_id"`
	TotalLinks       int                `json:"total_links"`
	CrossAuthorLinks int                `json:"cross_author_links"`
	CrossAuthorRatio float64            `json:"cross_author_ratio"`
	ContributorCount int                `json:"contributor_count"`
	Contributors     []ContributorStats `json:"contributors"`
}
