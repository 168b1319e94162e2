package entities

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Kind identifies one of the five content variants.
type Kind string

const (
	KindPage      Kind = "page"
	KindEssay     Kind = "essay"
	KindCharacter Kind = "character"
	KindStory     Kind = "story"
	KindImage     Kind = "image"
)

// Kinds lists every content kind in a stable order.
var Kinds = []Kind{KindPage, KindEssay, KindCharacter, KindStory, KindImage}

// ParseKind validates a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindPage, KindEssay, KindCharacter, KindStory, KindImage:
		return Kind(s), nil
	default:
		return "", NewValidationError("kind", fmt.Sprintf("unknown content kind %q", s))
	}
}

// ContentRef identifies a content item by (kind, id).
type ContentRef struct {
	Kind Kind   `json:"kind"`
	ID   string `json:"id"`
}

func (r ContentRef) String() string {
	return string(r.Kind) + "/" + r.ID
}

// ContentSummary is the lightweight view used when resolving link endpoints.
type ContentSummary struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// PageFields holds page-specific fields.
type PageFields struct {
	Summary string `json:"summary,omitempty"`
}

// EssayFields holds essay-specific fields.
type EssayFields struct {
	Abstract  string `json:"abstract,omitempty"`
	Topic     string `json:"topic,omitempty"`
	WordCount int    `json:"word_count"`
}

// CharacterFields holds character-specific fields.
type CharacterFields struct {
	FullName            string   `json:"full_name"`
	Age                 string   `json:"age,omitempty"`
	Species             string   `json:"species,omitempty"`
	Occupation          string   `json:"occupation,omitempty"`
	Location            string   `json:"location,omitempty"`
	PersonalityTraits   []string `json:"personality_traits,omitempty"`
	PhysicalDescription string   `json:"physical_description,omitempty"`
	Background          string   `json:"background,omitempty"`
}

// StoryFields holds story-specific fields.
type StoryFields struct {
	Genre           string `json:"genre,omitempty"`
	StoryType       string `json:"story_type,omitempty"`
	TimelinePeriod  string `json:"timeline_period,omitempty"`
	SettingLocation string `json:"setting_location,omitempty"`
	WordCount       int    `json:"word_count"`
	Canonical       bool   `json:"canonical"`
}

// ImageFields holds image-specific fields. AssetRef is an opaque reference to
// externally stored binary data; this core never touches image bytes.
type ImageFields struct {
	AssetRef  string `json:"asset_ref"`
	Caption   string `json:"caption,omitempty"`
	AltText   string `json:"alt_text"`
	ImageType string `json:"image_type,omitempty"`
}

// ContentItem is the immutable unit of authored work: a tagged union over the
// five kinds sharing a common envelope. Exactly one kind payload is set,
// matching Kind. Once created, no field may change; all evolution happens
// through new items, tags, and links referencing it.
type ContentItem struct {
	ID        string    `json:"id"`
	WorldID   string    `json:"world_id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
	// Seq is a per-world monotonic sequence number assigned at insert.
	// It breaks timestamp ties so chronological listings are unambiguous.
	Seq int64 `json:"seq"`

	Page      *PageFields      `json:"page,omitempty"`
	Essay     *EssayFields     `json:"essay,omitempty"`
	Character *CharacterFields `json:"character,omitempty"`
	Story     *StoryFields     `json:"story,omitempty"`
	Image     *ImageFields     `json:"image,omitempty"`
}

// Ref returns the (kind, id) reference for this item.
func (c *ContentItem) Ref() ContentRef {
	return ContentRef{Kind: c.Kind, ID: c.ID}
}

// Summarize returns the lightweight endpoint view of this item.
func (c *ContentItem) Summarize() ContentSummary {
	return ContentSummary{ID: c.ID, Kind: c.Kind, Title: c.Title, Author: c.Author}
}

// Validate checks the envelope and the kind-specific required fields.
func (c *ContentItem) Validate() error {
	if c.WorldID == "" {
		return NewValidationError("world", "content must belong to a world")
	}
	if c.Author == "" {
		return NewValidationError("author", "author identity is required")
	}
	title := strings.TrimSpace(c.Title)
	if title == "" {
		return NewValidationError("title", "cannot be empty")
	}
	if len(title) < 3 {
		return NewValidationError("title", "must be at least 3 characters")
	}
	if len(title) > 300 {
		return NewValidationError("title", "cannot exceed 300 characters")
	}
	body := strings.TrimSpace(c.Body)
	if body == "" {
		return NewValidationError("body", "cannot be empty")
	}
	if len(body) < 10 {
		return NewValidationError("body", "must be at least 10 characters")
	}
	return c.validatePayload()
}

func (c *ContentItem) validatePayload() error {
	switch c.Kind {
	case KindPage:
		if c.Page == nil {
			c.Page = &PageFields{}
		}
		if len(c.Page.Summary) > 500 {
			return NewValidationError("summary", "cannot exceed 500 characters")
		}
	case KindEssay:
		if c.Essay == nil {
			c.Essay = &EssayFields{}
		}
		if len(c.Essay.Abstract) > 1000 {
			return NewValidationError("abstract", "cannot exceed 1000 characters")
		}
	case KindCharacter:
		if c.Character == nil || strings.TrimSpace(c.Character.FullName) == "" {
			return NewValidationError("full_name", "character must have a full name")
		}
	case KindStory:
		if c.Story == nil {
			c.Story = &StoryFields{}
		}
	case KindImage:
		if c.Image == nil || strings.TrimSpace(c.Image.AssetRef) == "" {
			return NewValidationError("asset_ref", "image must reference an asset")
		}
		if strings.TrimSpace(c.Image.AltText) == "" {
			return NewValidationError("alt_text", "images must have alt text for accessibility")
		}
		if len(c.Image.AltText) > 200 {
			return NewValidationError("alt_text", "cannot exceed 200 characters")
		}
	default:
		return NewValidationError("kind", fmt.Sprintf("unknown content kind %q", c.Kind))
	}
	return nil
}

// DeriveCounts fills in fields computed from the body, such as essay and
// story word counts. Called once at creation; the item is immutable after.
func (c *ContentItem) DeriveCounts() {
	words := len(strings.Fields(c.Body))
	switch c.Kind {
	case KindEssay:
		if c.Essay == nil {
			c.Essay = &EssayFields{}
		}
		c.Essay.WordCount = words
	case KindStory:
		if c.Story == nil {
			c.Story = &StoryFields{}
		}
		c.Story.WordCount = words
	}
}

// EncodeDetails serializes the kind-specific payload for storage.
func (c *ContentItem) EncodeDetails() ([]byte, error) {
	var payload any
	switch c.Kind {
	case KindPage:
		payload = c.Page
	case KindEssay:
		payload = c.Essay
	case KindCharacter:
		payload = c.Character
	case KindStory:
		payload = c.Story
	case KindImage:
		payload = c.Image
	}
	if payload == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(payload)
}

// DecodeDetails deserializes a stored payload into the field matching Kind.
func (c *ContentItem) DecodeDetails(data []byte) error {
	if len(data) == 0 {
		data = []byte("{}")
	}
	switch c.Kind {
	case KindPage:
		c.Page = &PageFields{}
		return json.Unmarshal(data, c.Page)
	case KindEssay:
		c.Essay = &EssayFields{}
		return json.Unmarshal(data, c.Essay)
	case KindCharacter:
		c.Character = &CharacterFields{}
		return json.Unmarshal(data, c.Character)
	case KindStory:
		c.Story = &StoryFields{}
		return json.Unmarshal(data, c.Story)
	case KindImage:
		c.Image = &ImageFields{}
		return json.Unmarshal(data, c.Image)
	}
	return fmt.Errorf("decoding details: unknown kind %q", c.Kind)
}
