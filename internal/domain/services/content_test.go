package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/mocks"
	"github.com/avencia/worldweave/internal/domain/ports"
)

func TestWorldService(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()
	svc := NewWorldService(store)

	t.Run("create and get", func(t *testing.T) {
		world, err := svc.Create(ctx, "Aldenmoor", entities.VisibilityPublic, "ava")
		require.NoError(t, err)
		require.NotEmpty(t, world.ID)

		got, err := svc.Get(ctx, world.ID)
		require.NoError(t, err)
		assert.Equal(t, "Aldenmoor", got.Title)
		assert.Equal(t, "ava", got.Creator)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := svc.Create(ctx, "  ", entities.VisibilityPublic, "ava")
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))
	})

	t.Run("private worlds hidden from other viewers", func(t *testing.T) {
		hidden, err := svc.Create(ctx, "Hidden Vale", entities.VisibilityPrivate, "bram")
		require.NoError(t, err)

		visible, err := svc.List(ctx, "ava")
		require.NoError(t, err)
		for _, w := range visible {
			assert.NotEqual(t, hidden.ID, w.ID)
		}

		own, err := svc.List(ctx, "bram")
		require.NoError(t, err)
		ids := make([]string, 0, len(own))
		for _, w := range own {
			ids = append(ids, w.ID)
		}
		assert.Contains(t, ids, hidden.ID)
	})

	t.Run("get missing", func(t *testing.T) {
		_, err := svc.Get(ctx, "nope")
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestContentService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns id and derives word count", func(t *testing.T) {
		store := mocks.NewStore()
		seedTestWorld(t, store, "w1")
		svc := NewContentService(store)

		item, err := svc.Create(ctx, &entities.ContentItem{
			WorldID: "w1",
			Kind:    entities.KindEssay,
			Title:   "On the Founding",
			Body:    "Five hundred years before the reckoning began.",
			Author:  "ava",
			Essay:   &entities.EssayFields{Topic: "history"},
		})
		require.NoError(t, err)
		assert.NotEmpty(t, item.ID)
		assert.Equal(t, int64(1), item.Seq)
		assert.Equal(t, 7, item.Essay.WordCount)
	})

	t.Run("rejects invalid payloads", func(t *testing.T) {
		store := mocks.NewStore()
		seedTestWorld(t, store, "w1")
		svc := NewContentService(store)

		_, err := svc.Create(ctx, &entities.ContentItem{
			WorldID:   "w1",
			Kind:      entities.KindCharacter,
			Title:     "Mira",
			Body:      "A wandering cartographer of the northern reaches.",
			Author:    "ava",
			Character: &entities.CharacterFields{},
		})
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))

		_, err = svc.Create(ctx, &entities.ContentItem{
			WorldID: "w1",
			Kind:    entities.KindPage,
			Title:   "ab",
			Body:    "Body text long enough to pass.",
			Author:  "ava",
			Page:    &entities.PageFields{},
		})
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))
	})

	t.Run("missing world", func(t *testing.T) {
		store := mocks.NewStore()
		svc := NewContentService(store)
		_, err := svc.Create(ctx, &entities.ContentItem{
			WorldID: "nope",
			Kind:    entities.KindPage,
			Title:   "Somewhere",
			Body:    "Body text long enough to pass.",
			Author:  "ava",
			Page:    &entities.PageFields{},
		})
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}

func TestContentService_List(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewStore()
	seedTestWorld(t, store, "w1")
	seedTestContent(t, store, "w1", "p1", entities.KindPage, "ava")
	seedTestContent(t, store, "w1", "p2", entities.KindPage, "bram")
	seedTestContent(t, store, "w1", "s1", entities.KindStory, "ava")
	svc := NewContentService(store)

	t.Run("newest first", func(t *testing.T) {
		items, err := svc.List(ctx, "w1", ports.ContentFilter{})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "s1", items[0].ID)
		assert.Equal(t, "p1", items[2].ID)
	})

	t.Run("kind and author filters", func(t *testing.T) {
		items, err := svc.List(ctx, "w1", ports.ContentFilter{Kind: entities.KindPage})
		require.NoError(t, err)
		assert.Len(t, items, 2)

		items, err = svc.List(ctx, "w1", ports.ContentFilter{Author: "ava"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := svc.List(ctx, "w1", ports.ContentFilter{Kind: entities.Kind("poem")})
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))
	})

	t.Run("get missing content", func(t *testing.T) {
		_, err := svc.Get(ctx, "w1", entities.ContentRef{Kind: entities.KindPage, ID: "ghost"})
		assert.ErrorIs(t, err, entities.ErrNotFound)
	})
}
