package integration

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/services"
	"github.com/avencia/worldweave/internal/infrastructure/config"
	"github.com/avencia/worldweave/internal/infrastructure/relationaldb/sqlite"
)

// testEnv wires the real SQLite store into the full service stack.
type testEnv struct {
	store   *sqlite.Repository
	worlds  *services.WorldService
	content *services.ContentService
	tags    *services.TagService
	links   *services.LinkService
	stats   *services.AttributionService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := sqlite.NewRepository(config.SQLiteConfig{Path: dbPath})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.EnsureSchema(context.Background()))

	return &testEnv{
		store:   store,
		worlds:  services.NewWorldService(store),
		content: services.NewContentService(store),
		tags:    services.NewTagService(store, 10),
		links:   services.NewLinkService(store),
		stats:   services.NewAttributionService(store, entities.DefaultScoreWeights()),
	}
}

func (e *testEnv) createWorld(t *testing.T, title, creator string) *entities.World {
	t.Helper()
	world, err := e.worlds.Create(context.Background(), title, entities.VisibilityPublic, creator)
	require.NoError(t, err)
	return world
}

func (e *testEnv) createContent(t *testing.T, worldID string, kind entities.Kind, title, author string) *entities.ContentItem {
	t.Helper()
	item := &entities.ContentItem{
		WorldID: worldID,
		Kind:    kind,
		Title:   title,
		Body:    "Body text long enough for " + title,
		Author:  author,
	}
	switch kind {
	case entities.KindCharacter:
		item.Character = &entities.CharacterFields{FullName: title + " the Named"}
	case entities.KindImage:
		item.Image = &entities.ImageFields{AssetRef: "assets/" + title + ".png", AltText: "A depiction of " + title}
	}
	created, err := e.content.Create(context.Background(), item)
	require.NoError(t, err)
	return created
}
