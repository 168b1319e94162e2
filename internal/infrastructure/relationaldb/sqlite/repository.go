// Package sqlite provides a SQLite implementation of the Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/avencia/worldweave/internal/domain/entities"
	"github.com/avencia/worldweave/internal/domain/ports"
	"github.com/avencia/worldweave/internal/infrastructure/config"
)

// insertRetries bounds how often a contended per-world sequence insert is
// retried before surfacing ErrConflictRetryable.
const insertRetries = 3

// timeNow returns the current time (can be mocked in tests).
var timeNow = time.Now

// Repository implements ports.Store using SQLite.
type Repository struct {
	db   *sql.DB
	path string
}

// NewRepository creates a new SQLite repository.
func NewRepository(cfg config.SQLiteConfig) (*Repository, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite path is required")
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// Enable foreign keys for referential integrity
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Enable WAL mode for better concurrent read/write performance
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	// Set busy timeout to avoid "database is locked" errors
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting busy timeout: %w", err)
	}

	return &Repository{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	return r.db.Close()
}

// Path returns the database file path.
func (r *Repository) Path() string {
	return r.path
}

// EnsureSchema creates the database schema if it doesn't exist.
//
// Timestamps are stored as integer Unix nanoseconds so the per-world
// monotonicity clamp in InsertContent is a numeric comparison.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	schema := `
	-- Worlds (namespaces for content, tags, and links)
	CREATE TABLE IF NOT EXISTS worlds (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		visibility TEXT NOT NULL,
		creator TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_worlds_creator ON worlds(creator);

	-- Content items (immutable; five kinds sharing one envelope,
	-- kind-specific fields serialized into details)
	CREATE TABLE IF NOT EXISTS content_items (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL REFERENCES worlds(id),
		kind TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		author TEXT NOT NULL,
		details TEXT NOT NULL DEFAULT '{}',
		created_at INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		UNIQUE(world_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_content_world_kind ON content_items(world_id, kind);
	CREATE INDEX IF NOT EXISTS idx_content_world_author ON content_items(world_id, author);

	-- Tags (unique per world and normalized name)
	CREATE TABLE IF NOT EXISTS tags (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL REFERENCES worlds(id),
		name TEXT NOT NULL,
		author TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		UNIQUE(world_id, name)
	);

	-- Tag associations (unique per content item and tag)
	CREATE TABLE IF NOT EXISTS content_tags (
		content_id TEXT NOT NULL REFERENCES content_items(id),
		tag_id TEXT NOT NULL REFERENCES tags(id),
		created_at INTEGER NOT NULL,
		PRIMARY KEY(content_id, tag_id)
	);
	CREATE INDEX IF NOT EXISTS idx_content_tags_tag ON content_tags(tag_id);

	-- Links (directed edges, unique per ordered endpoint pair)
	CREATE TABLE IF NOT EXISTS content_links (
		id TEXT PRIMARY KEY,
		world_id TEXT NOT NULL REFERENCES worlds(id),
		from_kind TEXT NOT NULL,
		from_id TEXT NOT NULL,
		to_kind TEXT NOT NULL,
		to_id TEXT NOT NULL,
		author TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		UNIQUE(world_id, from_kind, from_id, to_kind, to_id)
	);
	CREATE INDEX IF NOT EXISTS idx_links_from ON content_links(world_id, from_kind, from_id);
	CREATE INDEX IF NOT EXISTS idx_links_to ON content_links(world_id, to_kind, to_id);
	`

	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// World operations

// SaveWorld inserts a new world.
func (r *Repository) SaveWorld(ctx context.Context, world *entities.World) error {
	query := `
		INSERT INTO worlds (id, title, visibility, creator, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		world.ID,
		world.Title,
		string(world.Visibility),
		world.Creator,
		world.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("saving world: %w", err)
	}
	return nil
}

// FindWorldByID finds a world by its ID.
func (r *Repository) FindWorldByID(ctx context.Context, worldID string) (*entities.World, error) {
	query := `
		SELECT id, title, visibility, creator, created_at
		FROM worlds
		WHERE id = ?
	`
	row := r.db.QueryRowContext(ctx, query, worldID)

	world, err := scanWorld(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning world: %w", err)
	}
	return world, nil
}

// ListWorlds lists public worlds plus the viewer's own private ones.
func (r *Repository) ListWorlds(ctx context.Context, viewer string) ([]*entities.World, error) {
	query := `
		SELECT id, title, visibility, creator, created_at
		FROM worlds
		WHERE visibility = ? OR creator = ?
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, string(entities.VisibilityPublic), viewer)
	if err != nil {
		return nil, fmt.Errorf("querying worlds: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.World, 0, 16)
	for rows.Next() {
		world, err := scanWorld(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning world: %w", err)
		}
		result = append(result, world)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorld(row rowScanner) (*entities.World, error) {
	var world entities.World
	var visibility string
	var createdAt int64

	err := row.Scan(
		&world.ID,
		&world.Title,
		&visibility,
		&world.Creator,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	world.Visibility = entities.Visibility(visibility)
	world.CreatedAt = time.Unix(0, createdAt).UTC()
	return &world, nil
}

// Content operations

// InsertContent persists a new content item. CreatedAt is clamped so it never
// precedes the world's latest item, and Seq is the next per-world sequence
// number; both are computed inside the insert statement so concurrent writers
// race on the UNIQUE(world_id, seq) index instead of a read-then-write
// window. Losers retry with a fresh sequence; persistent contention surfaces
// as ErrConflictRetryable.
func (r *Repository) InsertContent(ctx context.Context, item *entities.ContentItem) error {
	details, err := item.EncodeDetails()
	if err != nil {
		return fmt.Errorf("encoding content details: %w", err)
	}

	query := `
		INSERT INTO content_items (id, world_id, kind, title, body, author, details, created_at, seq)
		VALUES (?, ?, ?, ?, ?, ?, ?,
			(SELECT MAX(?, COALESCE(MAX(created_at), 0)) FROM content_items WHERE world_id = ?),
			(SELECT COALESCE(MAX(seq), 0) + 1 FROM content_items WHERE world_id = ?))
	`

	var lastErr error
	for attempt := 0; attempt < insertRetries; attempt++ {
		now := timeNow().UTC().UnixNano()
		_, err := r.db.ExecContext(ctx, query,
			item.ID,
			item.WorldID,
			string(item.Kind),
			item.Title,
			item.Body,
			item.Author,
			string(details),
			now,
			item.WorldID,
			item.WorldID,
		)
		if err == nil {
			return r.readBackInsert(ctx, item)
		}
		if !isUniqueViolation(err) {
			return fmt.Errorf("inserting content: %w", err)
		}
		lastErr = err
	}
	return fmt.Errorf("inserting content after %d attempts: %w (%v)",
		insertRetries, entities.ErrConflictRetryable, lastErr)
}

// readBackInsert loads the server-assigned timestamp and sequence number.
func (r *Repository) readBackInsert(ctx context.Context, item *entities.ContentItem) error {
	var createdAt int64
	query := `SELECT created_at, seq FROM content_items WHERE id = ?`
	if err := r.db.QueryRowContext(ctx, query, item.ID).Scan(&createdAt, &item.Seq); err != nil {
		return fmt.Errorf("reading back inserted content: %w", err)
	}
	item.CreatedAt = time.Unix(0, createdAt).UTC()
	return nil
}

const contentColumns = `id, world_id, kind, title, body, author, details, created_at, seq`

// FindContent finds one content item by world and (kind, id).
func (r *Repository) FindContent(ctx context.Context, worldID string, ref entities.ContentRef) (*entities.ContentItem, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content_items
		WHERE world_id = ? AND kind = ? AND id = ?
	`
	row := r.db.QueryRowContext(ctx, query, worldID, string(ref.Kind), ref.ID)

	item, err := scanContent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning content: %w", err)
	}
	return item, nil
}

// FindContentByRefs fetches multiple items by reference. Missing refs are
// absent from the result.
func (r *Repository) FindContentByRefs(ctx context.Context, worldID string, refs []entities.ContentRef) ([]*entities.ContentItem, error) {
	if len(refs) == 0 {
		return []*entities.ContentItem{}, nil
	}

	clauses := make([]string, len(refs))
	args := make([]any, 0, len(refs)*2+1)
	args = append(args, worldID)
	for i, ref := range refs {
		clauses[i] = "(kind = ? AND id = ?)"
		args = append(args, string(ref.Kind), ref.ID)
	}

	query := fmt.Sprintf(`
		SELECT `+contentColumns+`
		FROM content_items
		WHERE world_id = ? AND (%s)
	`, strings.Join(clauses, " OR "))

	return r.queryContent(ctx, query, args...)
}

// ListContent lists a world's content, newest first.
func (r *Repository) ListContent(ctx context.Context, worldID string, filter ports.ContentFilter) ([]*entities.ContentItem, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + contentColumns + ` FROM content_items WHERE world_id = ?`)
	args := []any{worldID}

	if filter.Kind != "" {
		sb.WriteString(` AND kind = ?`)
		args = append(args, string(filter.Kind))
	}
	if filter.Author != "" {
		sb.WriteString(` AND author = ?`)
		args = append(args, filter.Author)
	}
	if filter.Query != "" {
		pattern := "%" + strings.ToLower(filter.Query) + "%"
		sb.WriteString(` AND (LOWER(title) LIKE ? OR LOWER(body) LIKE ?)`)
		args = append(args, pattern, pattern)
	}

	sb.WriteString(` ORDER BY seq DESC`)
	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, filter.Limit, filter.Offset)
	}

	return r.queryContent(ctx, sb.String(), args...)
}

// ListWorldContent returns every content item in a world.
func (r *Repository) ListWorldContent(ctx context.Context, worldID string) ([]*entities.ContentItem, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM content_items
		WHERE world_id = ?
		ORDER BY seq DESC
	`
	return r.queryContent(ctx, query, worldID)
}

// queryContent is a helper to execute content queries.
func (r *Repository) queryContent(ctx context.Context, query string, args ...any) ([]*entities.ContentItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying content: %w", err)
	}
	defer rows.Close()

	result := make([]*entities.ContentItem, 0, 16)
	for rows.Next() {
		item, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning content: %w", err)
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func scanContent(row rowScanner) (*entities.ContentItem, error) {
	var item entities.ContentItem
	var kind, details string
	var createdAt int64

	err := row.Scan(
		&item.ID,
		&item.WorldID,
		&kind,
		&item.Title,
		&item.Body,
		&item.Author,
		&details,
		&createdAt,
		&item.Seq,
	)
	if err != nil {
		return nil, err
	}

	item.Kind = entities.Kind(kind)
	item.CreatedAt = time.Unix(0, createdAt).UTC()
	if err := item.DecodeDetails([]byte(details)); err != nil {
		return nil, err
	}
	return &item, nil
}

// Tag operations

// FindOrCreateTag finds a tag by normalized name or creates it if not found.
// This method is atomic - it uses INSERT OR IGNORE followed by SELECT to
// avoid race conditions.
func (r *Repository) FindOrCreateTag(ctx context.Context, worldID, name, author string) (*entities.Tag, error) {
	insertQuery := `
		INSERT OR IGNORE INTO tags (id, world_id, name, author, created_at)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, insertQuery,
		uuid.New().String(),
		worldID,
		name,
		author,
		timeNow().UTC().UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting tag: %w", err)
	}

	// Always fetch the tag (either newly inserted or pre-existing)
	tag, err := r.FindTagByName(ctx, worldID, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		return nil, fmt.Errorf("tag %q vanished after insert", name)
	}
	return tag, nil
}

// FindTagByName finds a tag by its normalized name.
func (r *Repository) FindTagByName(ctx context.Context, worldID, name string) (*entities.Tag, error) {
	query := `
		SELECT id, world_id, name, author, created_at
		FROM tags
		WHERE world_id = ? AND name = ?
	`
	row := r.db.QueryRowContext(ctx, query, worldID, name)

	var tag entities.Tag
	var createdAt int64
	err := row.Scan(&tag.ID, &tag.WorldID, &tag.Name, &tag.Author, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning tag: %w", err)
	}
	tag.CreatedAt = time.Unix(0, createdAt).UTC()
	return &tag, nil
}

// AttachTag associates a tag with a content item. The guard and the insert
// are one statement, so concurrent duplicate calls race on the primary key
// instead of a check-then-insert window. Re-attaching an existing tag is a
// no-op even when the item sits at the limit.
func (r *Repository) AttachTag(ctx context.Context, contentID, tagID string, limit int) (bool, error) {
	query := `
		INSERT OR IGNORE INTO content_tags (content_id, tag_id, created_at)
		SELECT ?, ?, ?
		WHERE (SELECT COUNT(*) FROM content_tags WHERE content_id = ?) < ?
		   OR EXISTS (SELECT 1 FROM content_tags WHERE content_id = ? AND tag_id = ?)
	`
	res, err := r.db.ExecContext(ctx, query,
		contentID, tagID, timeNow().UTC().UnixNano(),
		contentID, limit,
		contentID, tagID,
	)
	if err != nil {
		return false, fmt.Errorf("attaching tag: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("attaching tag: %w", err)
	}
	if affected == 1 {
		return true, nil
	}

	// Nothing inserted: either the association already exists (idempotent
	// success) or the limit blocked a new tag.
	var exists int
	check := `SELECT COUNT(*) FROM content_tags WHERE content_id = ? AND tag_id = ?`
	if err := r.db.QueryRowContext(ctx, check, contentID, tagID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking tag association: %w", err)
	}
	if exists > 0 {
		return false, nil
	}
	return false, entities.TagLimitExceeded(limit)
}

// ListWorldTags lists a world's tags ordered by name, with usage counts.
func (r *Repository) ListWorldTags(ctx context.Context, worldID string) ([]entities.Tag, error) {
	query := `
		SELECT t.id, t.world_id, t.name, t.author, t.created_at,
			(SELECT COUNT(*) FROM content_tags ct WHERE ct.tag_id = t.id) AS usage_count
		FROM tags t
		WHERE t.world_id = ?
		ORDER BY t.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, worldID)
	if err != nil {
		return nil, fmt.Errorf("querying tags: %w", err)
	}
	defer rows.Close()

	tags := make([]entities.Tag, 0, 16)
	for rows.Next() {
		var tag entities.Tag
		var createdAt int64
		if err := rows.Scan(&tag.ID, &tag.WorldID, &tag.Name, &tag.Author, &createdAt, &tag.UsageCount); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tag.CreatedAt = time.Unix(0, createdAt).UTC()
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ListTagsForContent lists the tags on one content item, by name.
func (r *Repository) ListTagsForContent(ctx context.Context, contentID string) ([]entities.Tag, error) {
	query := `
		SELECT t.id, t.world_id, t.name, t.author, t.created_at
		FROM tags t
		JOIN content_tags ct ON ct.tag_id = t.id
		WHERE ct.content_id = ?
		ORDER BY t.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, contentID)
	if err != nil {
		return nil, fmt.Errorf("querying content tags: %w", err)
	}
	defer rows.Close()

	tags := make([]entities.Tag, 0, 8)
	for rows.Next() {
		var tag entities.Tag
		var createdAt int64
		if err := rows.Scan(&tag.ID, &tag.WorldID, &tag.Name, &tag.Author, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tag.CreatedAt = time.Unix(0, createdAt).UTC()
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// ListContentByTag lists every content item carrying the tag, across all
// kinds, newest first.
func (r *Repository) ListContentByTag(ctx context.Context, tagID string) ([]*entities.ContentItem, error) {
	query := `
		SELECT c.id, c.world_id, c.kind, c.title, c.body, c.author, c.details, c.created_at, c.seq
		FROM content_items c
		JOIN content_tags ct ON ct.content_id = c.id
		WHERE ct.tag_id = ?
		ORDER BY c.seq DESC
	`
	return r.queryContent(ctx, query, tagID)
}

// SuggestTags returns up to limit tag names matching the prefix, excluding
// the given names, ordered by name.
func (r *Repository) SuggestTags(ctx context.Context, worldID, prefix string, exclude []string, limit int) ([]string, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT name FROM tags WHERE world_id = ? AND name LIKE ? ESCAPE '\'`)
	args := []any{worldID, likePrefix(prefix)}

	if len(exclude) > 0 {
		placeholders := make([]string, len(exclude))
		for i, name := range exclude {
			placeholders[i] = "?"
			args = append(args, name)
		}
		sb.WriteString(` AND name NOT IN (` + strings.Join(placeholders, ",") + `)`)
	}

	sb.WriteString(` ORDER BY name ASC LIMIT ?`)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying tag suggestions: %w", err)
	}
	defer rows.Close()

	names := make([]string, 0, limit)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning tag name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// likePrefix escapes LIKE metacharacters in a prefix pattern.
func likePrefix(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "%"
}

// Link operations

// InsertOrGetLink inserts the edge, or returns the stored edge when the
// exact ordered (from, to) pair already exists. INSERT OR IGNORE on the
// unique index makes concurrent duplicate calls converge on one row.
func (r *Repository) InsertOrGetLink(ctx context.Context, link *entities.ContentLink) (*entities.ContentLink, error) {
	insertQuery := `
		INSERT OR IGNORE INTO content_links (id, world_id, from_kind, from_id, to_kind, to_id, author, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, insertQuery,
		link.ID,
		link.WorldID,
		string(link.From.Kind),
		link.From.ID,
		string(link.To.Kind),
		link.To.ID,
		link.Author,
		timeNow().UTC().UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting link: %w", err)
	}

	// Always fetch the edge (either newly inserted or pre-existing)
	query := `
		SELECT id, world_id, from_kind, from_id, to_kind, to_id, author, created_at
		FROM content_links
		WHERE world_id = ? AND from_kind = ? AND from_id = ? AND to_kind = ? AND to_id = ?
	`
	row := r.db.QueryRowContext(ctx, query,
		link.WorldID,
		string(link.From.Kind), link.From.ID,
		string(link.To.Kind), link.To.ID,
	)
	stored, err := scanLink(row)
	if err != nil {
		return nil, fmt.Errorf("scanning link: %w", err)
	}
	return stored, nil
}

// ListOutgoingLinks lists edges whose from-endpoint is ref, newest first.
func (r *Repository) ListOutgoingLinks(ctx context.Context, worldID string, ref entities.ContentRef) ([]entities.ContentLink, error) {
	query := `
		SELECT id, world_id, from_kind, from_id, to_kind, to_id, author, created_at
		FROM content_links
		WHERE world_id = ? AND from_kind = ? AND from_id = ?
		ORDER BY created_at DESC, id
	`
	return r.queryLinks(ctx, query, worldID, string(ref.Kind), ref.ID)
}

// ListIncomingLinks lists edges whose to-endpoint is ref, newest first.
func (r *Repository) ListIncomingLinks(ctx context.Context, worldID string, ref entities.ContentRef) ([]entities.ContentLink, error) {
	query := `
		SELECT id, world_id, from_kind, from_id, to_kind, to_id, author, created_at
		FROM content_links
		WHERE world_id = ? AND to_kind = ? AND to_id = ?
		ORDER BY created_at DESC, id
	`
	return r.queryLinks(ctx, query, worldID, string(ref.Kind), ref.ID)
}

// ListWorldLinks returns every link in a world.
func (r *Repository) ListWorldLinks(ctx context.Context, worldID string) ([]entities.ContentLink, error) {
	query := `
		SELECT id, world_id, from_kind, from_id, to_kind, to_id, author, created_at
		FROM content_links
		WHERE world_id = ?
		ORDER BY created_at DESC, id
	`
	return r.queryLinks(ctx, query, worldID)
}

// queryLinks is a helper to execute link queries.
func (r *Repository) queryLinks(ctx context.Context, query string, args ...any) ([]entities.ContentLink, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	links := make([]entities.ContentLink, 0, 16)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

func scanLink(row rowScanner) (*entities.ContentLink, error) {
	var link entities.ContentLink
	var fromKind, toKind string
	var createdAt int64

	err := row.Scan(
		&link.ID,
		&link.WorldID,
		&fromKind,
		&link.From.ID,
		&toKind,
		&link.To.ID,
		&link.Author,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	link.From.Kind = entities.Kind(fromKind)
	link.To.Kind = entities.Kind(toKind)
	link.CreatedAt = time.Unix(0, createdAt).UTC()
	return &link, nil
}
