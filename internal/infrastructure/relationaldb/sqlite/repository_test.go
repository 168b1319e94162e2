package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
	"github.com/avencia/worldweave/internal/infrastructure/config"
)

// setupTestRepo creates an in-memory SQLite repository for testing.
func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	err = repo.EnsureSchema(context.Background())
	require.NoError(t, err)

	return repo
}

func seedWorld(t *testing.T, repo *Repository, id string) *entities.World {
	t.Helper()
	world := &entities.World{
		ID:         id,
		Title:      "Test World",
		Visibility: entities.VisibilityPublic,
		Creator:    "ava",
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, repo.SaveWorld(context.Background(), world))
	return world
}

func seedContent(t *testing.T, repo *Repository, worldID, id string, kind entities.Kind, author string) *entities.ContentItem {
	t.Helper()
	item := &entities.ContentItem{
		ID:      id,
		WorldID: worldID,
		Kind:    kind,
		Title:   "Title for " + id,
		Body:    "Body text long enough for " + id,
		Author:  author,
	}
	switch kind {
	case entities.KindCharacter:
		item.Character = &entities.CharacterFields{FullName: "Name " + id}
	case entities.KindImage:
		item.Image = &entities.ImageFields{AssetRef: "assets/" + id, AltText: "alt"}
	}
	require.NoError(t, repo.InsertContent(context.Background(), item))
	return item
}

func TestNewRepository(t *testing.T) {
	t.Run("success with memory database", func(t *testing.T) {
		repo, err := NewRepository(config.SQLiteConfig{Path: ":memory:"})
		require.NoError(t, err)
		defer repo.Close()
		assert.NotNil(t, repo)
	})

	t.Run("error with empty path", func(t *testing.T) {
		_, err := NewRepository(config.SQLiteConfig{Path: ""})
		require.Error(t, err)
	})
}

func TestRepository_EnsureSchema(t *testing.T) {
	repo := setupTestRepo(t)

	tables := []string{"worlds", "content_items", "tags", "content_tags", "content_links"}
	for _, table := range tables {
		var count int
		err := repo.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&count)
		require.NoError(t, err)
		assert.Equal(t, 1, count, "table %s should exist", table)
	}

	// Idempotent
	require.NoError(t, repo.EnsureSchema(context.Background()))
}

func TestRepository_Worlds(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	seedWorld(t, repo, "world-1")

	t.Run("find by id", func(t *testing.T) {
		world, err := repo.FindWorldByID(ctx, "world-1")
		require.NoError(t, err)
		require.NotNil(t, world)
		assert.Equal(t, "Test World", world.Title)
		assert.Equal(t, entities.VisibilityPublic, world.Visibility)
	})

	t.Run("missing world returns nil", func(t *testing.T) {
		world, err := repo.FindWorldByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, world)
	})

	t.Run("visibility filtering", func(t *testing.T) {
		private := &entities.World{
			ID:         "world-private",
			Title:      "Hidden",
			Visibility: entities.VisibilityPrivate,
			Creator:    "bram",
			CreatedAt:  time.Now().UTC(),
		}
		require.NoError(t, repo.SaveWorld(ctx, private))

		visible, err := repo.ListWorlds(ctx, "ava")
		require.NoError(t, err)
		for _, w := range visible {
			assert.NotEqual(t, "world-private", w.ID)
		}

		visible, err = repo.ListWorlds(ctx, "bram")
		require.NoError(t, err)
		ids := make([]string, 0, len(visible))
		for _, w := range visible {
			ids = append(ids, w.ID)
		}
		assert.Contains(t, ids, "world-private")
	})
}

func TestRepository_InsertContent_MonotonicSeq(t *testing.T) {
	repo := setupTestRepo(t)
	seedWorld(t, repo, "world-1")

	first := seedContent(t, repo, "world-1", "c1", entities.KindPage, "ava")
	second := seedContent(t, repo, "world-1", "c2", entities.KindEssay, "ava")
	third := seedContent(t, repo, "world-1", "c3", entities.KindStory, "bram")

	assert.Equal(t, int64(1), first.Seq)
	assert.Equal(t, int64(2), second.Seq)
	assert.Equal(t, int64(3), third.Seq)

	assert.False(t, second.CreatedAt.Before(first.CreatedAt))
	assert.False(t, third.CreatedAt.Before(second.CreatedAt))

	// Sequences are per world.
	seedWorld(t, repo, "world-2")
	other := seedContent(t, repo, "world-2", "c4", entities.KindPage, "ava")
	assert.Equal(t, int64(1), other.Seq)
}

func TestRepository_InsertContent_ClampsBackwardsClock(t *testing.T) {
	repo := setupTestRepo(t)
	seedWorld(t, repo, "world-1")

	base := time.Now().UTC()
	timeNow = func() time.Time { return base }
	defer func() { timeNow = time.Now }()

	first := seedContent(t, repo, "world-1", "c1", entities.KindPage, "ava")

	// Clock jumps backwards; stored timestamp must not.
	timeNow = func() time.Time { return base.Add(-time.Hour) }
	second := seedContent(t, repo, "world-1", "c2", entities.KindPage, "ava")

	assert.False(t, second.CreatedAt.Before(first.CreatedAt))
	assert.Greater(t, second.Seq, first.Seq)
}

func TestRepository_ContentQueries(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedWorld(t, repo, "world-1")

	seedContent(t, repo, "world-1", "p1", entities.KindPage, "ava")
	seedContent(t, repo, "world-1", "e1", entities.KindEssay, "bram")
	seedContent(t, repo, "world-1", "ch1", entities.KindCharacter, "ava")

	t.Run("find by ref", func(t *testing.T) {
		item, err := repo.FindContent(ctx, "world-1", entities.ContentRef{Kind: entities.KindCharacter, ID: "ch1"})
		require.NoError(t, err)
		require.NotNil(t, item)
		assert.Equal(t, "Name ch1", item.Character.FullName)
	})

	t.Run("ref with wrong kind misses", func(t *testing.T) {
		item, err := repo.FindContent(ctx, "world-1", entities.ContentRef{Kind: entities.KindPage, ID: "ch1"})
		require.NoError(t, err)
		assert.Nil(t, item)
	})

	t.Run("list newest first", func(t *testing.T) {
		items, err := repo.ListContent(ctx, "world-1", ports.ContentFilter{})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, "ch1", items[0].ID)
		assert.Equal(t, "p1", items[2].ID)
	})

	t.Run("filter by kind and author", func(t *testing.T) {
		items, err := repo.ListContent(ctx, "world-1", ports.ContentFilter{Kind: entities.KindEssay})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "e1", items[0].ID)

		items, err = repo.ListContent(ctx, "world-1", ports.ContentFilter{Author: "ava"})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("substring filter on title and body", func(t *testing.T) {
		items, err := repo.ListContent(ctx, "world-1", ports.ContentFilter{Query: "TITLE FOR P1"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "p1", items[0].ID)
	})

	t.Run("find by refs", func(t *testing.T) {
		items, err := repo.FindContentByRefs(ctx, "world-1", []entities.ContentRef{
			{Kind: entities.KindPage, ID: "p1"},
			{Kind: entities.KindEssay, ID: "e1"},
			{Kind: entities.KindPage, ID: "missing"},
		})
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

func TestRepository_Tags(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedWorld(t, repo, "world-1")
	page := seedContent(t, repo, "world-1", "p1", entities.KindPage, "ava")

	t.Run("find or create is idempotent", func(t *testing.T) {
		tag1, err := repo.FindOrCreateTag(ctx, "world-1", "west", "ava")
		require.NoError(t, err)

		tag2, err := repo.FindOrCreateTag(ctx, "world-1", "west", "bram")
		require.NoError(t, err)

		assert.Equal(t, tag1.ID, tag2.ID)
		assert.Equal(t, "ava", tag2.Author)
	})

	t.Run("attach is idempotent", func(t *testing.T) {
		tag, err := repo.FindOrCreateTag(ctx, "world-1", "west", "ava")
		require.NoError(t, err)

		attached, err := repo.AttachTag(ctx, page.ID, tag.ID, 10)
		require.NoError(t, err)
		assert.True(t, attached)

		attached, err = repo.AttachTag(ctx, page.ID, tag.ID, 10)
		require.NoError(t, err)
		assert.False(t, attached)

		tags, err := repo.ListTagsForContent(ctx, page.ID)
		require.NoError(t, err)
		assert.Len(t, tags, 1)
	})

	t.Run("limit blocks new tags but not re-adds", func(t *testing.T) {
		limit := 2
		other := seedContent(t, repo, "world-1", "p2", entities.KindPage, "ava")

		for _, name := range []string{"one", "two"} {
			tag, err := repo.FindOrCreateTag(ctx, "world-1", name, "ava")
			require.NoError(t, err)
			_, err = repo.AttachTag(ctx, other.ID, tag.ID, limit)
			require.NoError(t, err)
		}

		blocked, err := repo.FindOrCreateTag(ctx, "world-1", "three", "ava")
		require.NoError(t, err)
		_, err = repo.AttachTag(ctx, other.ID, blocked.ID, limit)
		require.Error(t, err)
		assert.True(t, entities.IsValidation(err))

		// Existing association still succeeds at the limit.
		existing, err := repo.FindTagByName(ctx, "world-1", "one")
		require.NoError(t, err)
		attached, err := repo.AttachTag(ctx, other.ID, existing.ID, limit)
		require.NoError(t, err)
		assert.False(t, attached)

		tags, err := repo.ListTagsForContent(ctx, other.ID)
		require.NoError(t, err)
		assert.Len(t, tags, limit)
	})

	t.Run("world tags carry usage counts", func(t *testing.T) {
		tags, err := repo.ListWorldTags(ctx, "world-1")
		require.NoError(t, err)
		require.NotEmpty(t, tags)

		byName := make(map[string]entities.Tag, len(tags))
		for _, tag := range tags {
			byName[tag.Name] = tag
		}
		assert.Equal(t, 1, byName["west"].UsageCount)

		// Ordered by name.
		for i := 1; i < len(tags); i++ {
			assert.LessOrEqual(t, tags[i-1].Name, tags[i].Name)
		}
	})

	t.Run("content by tag spans kinds", func(t *testing.T) {
		essay := seedContent(t, repo, "world-1", "e1", entities.KindEssay, "bram")
		tag, err := repo.FindTagByName(ctx, "world-1", "west")
		require.NoError(t, err)
		_, err = repo.AttachTag(ctx, essay.ID, tag.ID, 10)
		require.NoError(t, err)

		items, err := repo.ListContentByTag(ctx, tag.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)

		kinds := map[entities.Kind]bool{}
		for _, item := range items {
			kinds[item.Kind] = true
		}
		assert.True(t, kinds[entities.KindPage])
		assert.True(t, kinds[entities.KindEssay])
	})

	t.Run("suggestions", func(t *testing.T) {
		names, err := repo.SuggestTags(ctx, "world-1", "we", nil, 5)
		require.NoError(t, err)
		assert.Equal(t, []string{"west"}, names)

		names, err = repo.SuggestTags(ctx, "world-1", "we", []string{"west"}, 5)
		require.NoError(t, err)
		assert.Empty(t, names)

		// LIKE metacharacters in the prefix match literally.
		names, err = repo.SuggestTags(ctx, "world-1", "%", nil, 5)
		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestRepository_Links(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	seedWorld(t, repo, "world-1")
	story := seedContent(t, repo, "world-1", "s1", entities.KindStory, "bram")
	character := seedContent(t, repo, "world-1", "ch1", entities.KindCharacter, "ava")

	link := &entities.ContentLink{
		ID:      "link-1",
		WorldID: "world-1",
		From:    story.Ref(),
		To:      character.Ref(),
		Author:  "bram",
	}

	t.Run("insert and duplicate returns existing", func(t *testing.T) {
		stored, err := repo.InsertOrGetLink(ctx, link)
		require.NoError(t, err)
		assert.Equal(t, "link-1", stored.ID)

		duplicate := *link
		duplicate.ID = "link-2"
		again, err := repo.InsertOrGetLink(ctx, &duplicate)
		require.NoError(t, err)
		assert.Equal(t, "link-1", again.ID)

		all, err := repo.ListWorldLinks(ctx, "world-1")
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("reverse edge is distinct", func(t *testing.T) {
		reverse := &entities.ContentLink{
			ID:      "link-rev",
			WorldID: "world-1",
			From:    character.Ref(),
			To:      story.Ref(),
			Author:  "ava",
		}
		stored, err := repo.InsertOrGetLink(ctx, reverse)
		require.NoError(t, err)
		assert.Equal(t, "link-rev", stored.ID)

		all, err := repo.ListWorldLinks(ctx, "world-1")
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("directional traversal", func(t *testing.T) {
		outgoing, err := repo.ListOutgoingLinks(ctx, "world-1", story.Ref())
		require.NoError(t, err)
		require.Len(t, outgoing, 1)
		assert.Equal(t, character.Ref(), outgoing[0].To)

		incoming, err := repo.ListIncomingLinks(ctx, "world-1", character.Ref())
		require.NoError(t, err)
		require.Len(t, incoming, 1)
		assert.Equal(t, story.Ref(), incoming[0].From)
	})
}
