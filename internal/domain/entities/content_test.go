package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItem(kind Kind) *ContentItem {
	item := &ContentItem{
		WorldID: "world-1",
		Kind:    kind,
		Title:   "The Northern Reach",
		Body:    "A frozen expanse beyond the last settled valleys.",
		Author:  "ava",
	}
	switch kind {
	case KindCharacter:
		item.Character = &CharacterFields{FullName: "Ava of the Reach"}
	case KindImage:
		item.Image = &ImageFields{AssetRef: "assets/reach.png", AltText: "A snowy pass"}
	}
	return item
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds {
		parsed, err := ParseKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := ParseKind("journal")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestContentItem_Validate(t *testing.T) {
	t.Run("valid items of every kind", func(t *testing.T) {
		for _, kind := range Kinds {
			require.NoError(t, validItem(kind).Validate(), "kind %s", kind)
		}
	})

	t.Run("title rules", func(t *testing.T) {
		item := validItem(KindPage)
		item.Title = ""
		assert.Error(t, item.Validate())

		item.Title = "ab"
		assert.Error(t, item.Validate())
	})

	t.Run("body must not be trivial", func(t *testing.T) {
		item := validItem(KindPage)
		item.Body = "short"
		assert.Error(t, item.Validate())
	})

	t.Run("character requires full name", func(t *testing.T) {
		item := validItem(KindCharacter)
		item.Character.FullName = "   "
		err := item.Validate()
		require.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("image requires asset ref and alt text", func(t *testing.T) {
		item := validItem(KindImage)
		item.Image.AssetRef = ""
		assert.Error(t, item.Validate())

		item = validItem(KindImage)
		item.Image.AltText = ""
		assert.Error(t, item.Validate())
	})

	t.Run("missing author", func(t *testing.T) {
		item := validItem(KindPage)
		item.Author = ""
		assert.Error(t, item.Validate())
	})
}

func TestContentItem_DeriveCounts(t *testing.T) {
	item := validItem(KindEssay)
	item.Body = "one two three four five"
	item.DeriveCounts()
	require.NotNil(t, item.Essay)
	assert.Equal(t, 5, item.Essay.WordCount)

	story := validItem(KindStory)
	story.Body = "a tale of two cities"
	story.DeriveCounts()
	require.NotNil(t, story.Story)
	assert.Equal(t, 5, story.Story.WordCount)

	page := validItem(KindPage)
	page.DeriveCounts()
	assert.Nil(t, page.Essay)
}

func TestContentItem_DetailsRoundTrip(t *testing.T) {
	item := validItem(KindCharacter)
	item.Character.Species = "human"
	item.Character.PersonalityTraits = []string{"stubborn", "loyal"}

	data, err := item.EncodeDetails()
	require.NoError(t, err)

	decoded := &ContentItem{Kind: KindCharacter}
	require.NoError(t, decoded.DecodeDetails(data))
	assert.Equal(t, item.Character, decoded.Character)
}

func TestWorld_Validate(t *testing.T) {
	world := &World{Title: "Aurelia", Visibility: VisibilityPublic, Creator: "ava"}
	require.NoError(t, world.Validate())

	world.Visibility = "friends-only"
	assert.Error(t, world.Validate())

	world.Visibility = VisibilityPrivate
	world.Title = " "
	assert.Error(t, world.Validate())
}

func TestWorld_VisibleTo(t *testing.T) {
	world := &World{Title: "Aurelia", Visibility: VisibilityPrivate, Creator: "ava"}
	assert.True(t, world.VisibleTo("ava"))
	assert.False(t, world.VisibleTo("bram"))

	world.Visibility = VisibilityPublic
	assert.True(t, world.VisibleTo("bram"))
}
