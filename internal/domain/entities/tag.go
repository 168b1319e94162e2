package entities

import (
	"strings"
	"time"
)

// Tag is a normalized label, unique per (world, name). Tags are created
// lazily on first use within a world and never deleted by this core.
type Tag struct {
	ID        string    `json:"id"`
	WorldID   string    `json:"world_id"`
	Name      string    `json:"name"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	// UsageCount is how many content items carry this tag. Populated by
	// listing queries; zero elsewhere.
	UsageCount int `json:"usage_count,omitempty"`
}

// NormalizeTagName applies the fixed normalization rule: trim, lowercase,
// collapse internal whitespace runs to a single hyphen.
func NormalizeTagName(name string) string {
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, "-")
}

// ValidateTagName normalizes and validates a raw tag name.
func ValidateTagName(name string) (string, error) {
	normalized := NormalizeTagName(name)
	if normalized == "" {
		return "", NewValidationError("name", "tag name cannot be empty")
	}
	if len(normalized) > 100 {
		return "", NewValidationError("name", "tag name cannot exceed 100 characters")
	}
	return normalized, nil
}
