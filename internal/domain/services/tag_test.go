package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/mocks"
)

func seedTestWorld(t *testing.T, store *mocks.Store, id string) {
	t.Helper()
	require.NoError(t, store.SaveWorld(context.Background(), &entities.World{
		ID:         id,
		Title:      "Test World",
		Visibility: entities.VisibilityPublic,
		Creator:    "ava",
	}))
}

func seedTestContent(t *testing.T, store *mocks.Store, worldID, id string, kind entities.Kind, author string) *entities.ContentItem {
	t.Helper()
	item := &entities.ContentItem{
		ID:      id,
		WorldID: worldID,
		Kind:    kind,
		Title:   "Title for " + id,
		Body:    "Body text long enough for " + id,
		Author:  author,
	}
	require.NoError(t, store.InsertContent(context.Background(), item))
	return item
}

func TestTagService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes and creates lazily", func(t *testing.T) {
		store := mocks.NewStore()
		seedTestWorld(t, store, "w1")
		page := seedTestContent(t, store, "w1", "p1", entities.KindPage, "ava")
		svc := NewTagService(store, 10)

		tag, err := svc.Add(ctx, "w1", page.Ref(), "  Dark Forest ", "ava")
		require.NoError(t, err)
		assert.Equal(t, "dark-forest", tag.Name)
	})

	t.Run("idempotent across authors and casing", func(t *testing.T) {
		store := mocks.NewStore()
		seedTestWorld(t, store, "w1")
		page := seedTestContent(t, store, "w1", "p1", entities.KindPage, "ava")
		svc := NewTagService(store, 10)

		first, err := svc.Add(ctx, "w1", page.Ref(), "West", "ava")
		require.NoError(t, err)
		second, err := svc.Add(ctx, "w1", page.Ref(), "WEST", "bram")
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)

		tags, err := svc.ListForContent(ctx, "w1", page.Ref())
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("limit leaves exactly N associations", func(t *testing.T) {
		store := mocks.NewStore()
		seedTestWorld(t, store, "w1")
		page := seedTestContent(t, store, "w1", "p1", entities.KindPage, "ava")
		svc := NewTagService(store, 2)

		_, err := svc.Add(ctx, "w1", page.Ref(), "one", "ava")
		require.NoError(t, err)
		_, err = svc.Add(ctx, "w1", page.Ref(), "two", "ava")
		require.NoError(t, err)

		_, err = svc.Add(ctx, "w1", page.Ref(), "three", "ava")
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))

		tags, err := svc.ListForContent(ctx, "w1", page.Ref())
		require.NoError(t, err)
		assert.Len(t, tags, 2)

		// Re-adding an existing tag at the limit still succeeds.
		_, err = svc.Add(ctx, "w1", page.Ref(), "one", "ava")
		require.NoError(t, err)
	})

	t.Run("missing world or content", func(t *testing.T) {
		store := mocks.NewStore()
		seedTestWorld(t, store, "w1")
		svc := NewTagService(store, 10)

		_, err := svc.Add(ctx, "nope", entities.ContentRef{Kind: entities.KindPage, ID: "p1"}, "west", "ava")
		assert.ErrorIs(t, err, entities.ErrNotFound)

		_, err = svc.Add(ctx, "w1", entities.ContentRef{Kind: entities.KindPage, ID: "ghost"}, "west", "ava")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		store := mocks.NewStore()
		seedTestWorld(t, store, "w1")
		page := seedTestContent(t, store, "w1", "p1", entities.KindPage, "ava")
		svc := NewTagService(store, 10)

		_, err := svc.Add(ctx, "w1", page.Ref(), "   ", "ava")
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))
	})
}

func TestTagService_Get(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()
	seedTestWorld(t, store, "w1")
	page := seedTestContent(t, store, "w1", "p1", entities.KindPage, "ava")
	essay := seedTestContent(t, store, "w1", "e1", entities.KindEssay, "bram")
	svc := NewTagService(store, 10)

	_, err := svc.Add(ctx, "w1", page.Ref(), "west", "ava")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "w1", essay.Ref(), "west", "bram")
	require.NoError(t, err)
	// Duplicate add must not duplicate the tagged content.
	_, err = svc.Add(ctx, "w1", page.Ref(), "west", "ava")
	require.NoError(t, err)

	result, err := svc.Get(ctx, "w1", "West")
	require.NoError(t, err)
	assert.Equal(t, "west", result.Tag.Name)
	assert.Equal(t, 2, result.Tag.UsageCount)
	require.Len(t, result.TaggedContent, 2)

	byID := map[string]*entities.ContentItem{}
	for _, item := range result.TaggedContent {
		byID[item.ID] = item
	}
	require.Contains(t, byID, "p1")
	require.Contains(t, byID, "e1")
	assert.Equal(t, entities.KindPage, byID["p1"].Kind)
	assert.Equal(t, "ava", byID["p1"].Author)
	assert.Equal(t, entities.KindEssay, byID["e1"].Kind)
	assert.Equal(t, "bram", byID["e1"].Author)

	_, err = svc.Get(ctx, "w1", "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestTagService_Suggest(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()
	seedTestWorld(t, store, "w1")
	page := seedTestContent(t, store, "w1", "p1", entities.KindPage, "ava")
	svc := NewTagService(store, 10)

	for _, name := range []string{"west", "western-marches", "weather", "north"} {
		_, err := svc.Add(ctx, "w1", page.Ref(), name, "ava")
		require.NoError(t, err)
	}

	t.Run("prefix match", func(t *testing.T) {
		names, err := svc.Suggest(ctx, "w1", "we", nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"weather", "west", "western-marches"}, names)
	})

	t.Run("case-insensitive prefix", func(t *testing.T) {
		names, err := svc.Suggest(ctx, "w1", "WE", nil)
		require.NoError(t, err)
		assert.Len(t, names, 3)
	})

	t.Run("excludes names on target content", func(t *testing.T) {
		ref := page.Ref()
		names, err := svc.Suggest(ctx, "w1", "we", &ref)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("cap at five", func(t *testing.T) {
		other := seedTestContent(t, store, "w1", "p2", entities.KindPage, "ava")
		for _, name := range []string{"w-a", "w-b", "w-c", "w-d", "w-e", "w-f"} {
			_, err := svc.Add(ctx, "w1", other.Ref(), name, "ava")
			require.NoError(t, err)
		}
		names, err := svc.Suggest(ctx, "w1", "w", nil)
		require.NoError(t, err)
		assert.Len(t, names, SuggestionLimit)
	})
}
