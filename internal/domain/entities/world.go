// Package entities contains core domain data structures.
package entities

import (
	"strings"
	"time"
)

// Visibility controls who can discover a world.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// ParseVisibility validates a visibility string.
func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(s) {
	case VisibilityPublic, VisibilityPrivate:
		return Visibility(s), nil
	default:
		return "", NewValidationError("visibility", "must be public or private")
	}
}

// World is a namespace partitioning all other entities. Every content item,
// tag, and link belongs to exactly one world; cross-world references are
// impossible because all lookups are world-scoped.
type World struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Visibility Visibility `json:"visibility"`
	Creator    string     `json:"creator"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Validate checks world invariants before persistence.
func (w *World) Validate() error {
	title := strings.TrimSpace(w.Title)
	if title == "" {
		return NewValidationError("title", "cannot be empty")
	}
	if len(title) > 200 {
		return NewValidationError("title", "cannot exceed 200 characters")
	}
	if w.Creator == "" {
		return NewValidationError("creator", "author identity is required")
	}
	if _, err := ParseVisibility(string(w.Visibility)); err != nil {
		return err
	}
	return nil
}

// VisibleTo reports whether the world is discoverable by the given author.
func (w *World) VisibleTo(author string) bool {
	return w.Visibility == VisibilityPublic || w.Creator == author
}
