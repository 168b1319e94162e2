package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/worldweave/internal/domain/entities"
)

func TestTagHandler(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	world := env.createWorld(t)
	page := env.createContent(t, world.ID, "page", "Gates of Dawn", "ava")

	t.Run("add normalizes the name", func(t *testing.T) {
		tag, err := env.tags.HandleAdd(ctx, world.ID, "page", page.ID, "Dark Forest", "ava")
		require.NoError(t, err)
		assert.Equal(t, "dark-forest", tag.Name)
	})

	t.Run("invalid kind rejected before any lookup", func(t *testing.T) {
		_, err := env.tags.HandleAdd(ctx, world.ID, "poem", page.ID, "west", "ava")
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))
	})

	t.Run("list for content", func(t *testing.T) {
		result, err := env.tags.HandleListForContent(ctx, world.ID, "page", page.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
		assert.Equal(t, "dark-forest", result.Tags[0].Name)
	})

	t.Run("get with tagged content", func(t *testing.T) {
		result, err := env.tags.HandleGet(ctx, world.ID, "dark-forest")
		require.NoError(t, err)
		assert.Equal(t, 1, result.Tag.UsageCount)
		require.Len(t, result.TaggedContent, 1)
		assert.Equal(t, page.ID, result.TaggedContent[0].ID)
	})

	t.Run("suggest excludes the target's tags", func(t *testing.T) {
		names, err := env.tags.HandleSuggest(ctx, world.ID, "dark", "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"dark-forest"}, names)

		names, err = env.tags.HandleSuggest(ctx, world.ID, "dark", "page", page.ID)
		require.NoError(t, err)
		assert.Empty(t, names)
	})

	t.Run("world tag listing", func(t *testing.T) {
		result, err := env.tags.HandleListWorld(ctx, world.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Total)
	})
}
