package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
)

func TestWorkflow_AllKinds(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()
	world := env.createWorld(t, "Aldenmoor", "ava")

	for _, kind := range entities.Kinds {
		env.createContent(t, world.ID, kind, "Sample "+string(kind), "ava")
	}

	items, err := env.content.List(ctx, world.ID, ports.ContentFilter{})
	require.NoError(t, err)
	assert.Len(t, items, len(entities.Kinds))

	// Newest first, and sequence numbers strictly increase with creation order.
	for i := 1; i < len(items); i++ {
		assert.Greater(t, items[i-1].Seq, items[i].Seq)
		assert.False(t, items[i-1].CreatedAt.Before(items[i].CreatedAt))
	}
}

func TestWorkflow_Collaboration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()
	world := env.createWorld(t, "Aldenmoor", "ava")

	character := env.createContent(t, world.ID, entities.KindCharacter, "Mira", "ava")
	story := env.createContent(t, world.ID, entities.KindStory, "The Long Night", "bram")

	_, err := env.links.Add(ctx, world.ID, story.Ref(), character.Ref(), "bram")
	require.NoError(t, err)
	// Duplicate converges on the stored edge.
	_, err = env.links.Add(ctx, world.ID, story.Ref(), character.Ref(), "bram")
	require.NoError(t, err)

	view, err := env.stats.Of(ctx, world.ID, character.Ref())
	require.NoError(t, err)
	assert.Equal(t, 1, view.IncomingCount)
	assert.True(t, view.IsCollaborative)
	assert.InDelta(t, 0.2, view.CollaborationScore, 1e-9)

	stats, err := env.stats.WorldStats(ctx, world.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalLinks)
	assert.Equal(t, 1, stats.CrossAuthorLinks)
	assert.InDelta(t, 1.0, stats.CrossAuthorRatio, 1e-9)
	assert.Equal(t, 2, stats.ContributorCount)
}

func TestWorkflow_Tagging(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()
	world := env.createWorld(t, "Aldenmoor", "ava")

	page := env.createContent(t, world.ID, entities.KindPage, "Gates of Dawn", "ava")
	essay := env.createContent(t, world.ID, entities.KindEssay, "On the Founding", "bram")

	_, err := env.tags.Add(ctx, world.ID, page.Ref(), "  Dark Forest ", "ava")
	require.NoError(t, err)
	_, err = env.tags.Add(ctx, world.ID, essay.Ref(), "DARK FOREST", "bram")
	require.NoError(t, err)

	result, err := env.tags.Get(ctx, world.ID, "dark-forest")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Tag.UsageCount)
	assert.Len(t, result.TaggedContent, 2)

	names, err := env.tags.Suggest(ctx, world.ID, "dark", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"dark-forest"}, names)
}

func TestWorkflow_WorldScoping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()
	first := env.createWorld(t, "Aldenmoor", "ava")
	second := env.createWorld(t, "Vessmark", "bram")

	page := env.createContent(t, first.ID, entities.KindPage, "Gates of Dawn", "ava")
	other := env.createContent(t, second.ID, entities.KindPage, "Salt Roads", "bram")

	// Content is invisible across world boundaries.
	_, err := env.content.Get(ctx, second.ID, page.Ref())
	assert.ErrorIs(t, err, entities.ErrNotFound)

	// Links cannot cross worlds: the far endpoint is dangling there.
	_, err = env.links.Add(ctx, first.ID, page.Ref(), other.Ref(), "ava")
	assert.ErrorIs(t, err, entities.ErrDanglingReference)

	// Same tag name in two worlds yields two independent tags.
	_, err = env.tags.Add(ctx, first.ID, page.Ref(), "west", "ava")
	require.NoError(t, err)
	_, err = env.tags.Add(ctx, second.ID, other.Ref(), "west", "bram")
	require.NoError(t, err)

	result, err := env.tags.Get(ctx, first.ID, "west")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Tag.UsageCount)
	assert.Equal(t, page.ID, result.TaggedContent[0].ID)
}
