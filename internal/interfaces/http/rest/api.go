// Package rest exposes the application handlers over HTTP.
package rest

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/avencia/worldweave/internal/application/handlers"
	"github.com/avencia/worldweave/internal/domain/entities"
)

// API holds the application handlers and everything needed to serve them.
type API struct {
	logger  *zap.Logger
	metrics *Metrics

	identityHeader string

	worlds  *handlers.WorldHandler
	content *handlers.ContentHandler
	tags    *handlers.TagHandler
	links   *handlers.LinkHandler
	stats   *handlers.StatsHandler
}

// NewAPI creates a new API.
func NewAPI(
	logger *zap.Logger,
	identityHeader string,
	worlds *handlers.WorldHandler,
	content *handlers.ContentHandler,
	tags *handlers.TagHandler,
	links *handlers.LinkHandler,
	stats *handlers.StatsHandler,
) *API {
	return &API{
		logger:         logger,
		metrics:        NewMetrics(),
		identityHeader: identityHeader,
		worlds:         worlds,
		content:        content,
		tags:           tags,
		links:          links,
		stats:          stats,
	}
}

// requireAuthor returns the verified author identity or writes a 401.
func (a *API) requireAuthor(w http.ResponseWriter, r *http.Request) (string, bool) {
	author := authorFromContext(r.Context())
	if author == "" {
		a.respondJSON(w, http.StatusUnauthorized, errorResponse{
			Error: "missing author identity header " + a.identityHeader,
		})
		return "", false
	}
	return author, true
}

func (a *API) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Worlds.

func (a *API) handleCreateWorld(w http.ResponseWriter, r *http.Request) {
	author, ok := a.requireAuthor(w, r)
	if !ok {
		return
	}
	var req createWorldRequest
	if err := decodeBody(r, &req); err != nil {
		a.respondError(w, r, err)
		return
	}
	if req.Visibility == "" {
		req.Visibility = string(entities.VisibilityPublic)
	}

	world, err := a.worlds.HandleCreate(r.Context(), req.Title, req.Visibility, author)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusCreated, world)
}

func (a *API) handleListWorlds(w http.ResponseWriter, r *http.Request) {
	result, err := a.worlds.HandleList(r.Context(), authorFromContext(r.Context()))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

func (a *API) handleGetWorld(w http.ResponseWriter, r *http.Request) {
	world, err := a.worlds.HandleGet(r.Context(), chi.URLParam(r, "worldID"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, world)
}

// Content.

func (a *API) handleCreateContent(w http.ResponseWriter, r *http.Request) {
	author, ok := a.requireAuthor(w, r)
	if !ok {
		return
	}
	var req createContentRequest
	if err := decodeBody(r, &req); err != nil {
		a.respondError(w, r, err)
		return
	}

	item, err := a.content.HandleCreate(r.Context(), handlers.ContentInput{
		WorldID: chi.URLParam(r, "worldID"),
		Kind:    req.Kind,
		Title:   req.Title,
		Body:    req.Body,
		Author:  author,
		Details: req.Details,
	})
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.metrics.ContentCreated.Inc()
	a.respondJSON(w, http.StatusCreated, item)
}

func (a *API) handleListContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit := queryInt(q.Get("limit"))
	offset := queryInt(q.Get("offset"))

	result, err := a.content.HandleList(r.Context(),
		chi.URLParam(r, "worldID"), q.Get("kind"), q.Get("author"), q.Get("q"), limit, offset)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

func (a *API) handleGetContent(w http.ResponseWriter, r *http.Request) {
	item, err := a.content.HandleGet(r.Context(),
		chi.URLParam(r, "worldID"), chi.URLParam(r, "kind"), chi.URLParam(r, "contentID"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, item)
}

// Tags.

func (a *API) handleAddTag(w http.ResponseWriter, r *http.Request) {
	author, ok := a.requireAuthor(w, r)
	if !ok {
		return
	}
	var req addTagRequest
	if err := decodeBody(r, &req); err != nil {
		a.respondError(w, r, err)
		return
	}

	tag, err := a.tags.HandleAdd(r.Context(),
		chi.URLParam(r, "worldID"), chi.URLParam(r, "kind"), chi.URLParam(r, "contentID"),
		req.Name, author)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.metrics.TagsAttached.Inc()
	a.respondJSON(w, http.StatusCreated, tag)
}

func (a *API) handleContentTags(w http.ResponseWriter, r *http.Request) {
	result, err := a.tags.HandleListForContent(r.Context(),
		chi.URLParam(r, "worldID"), chi.URLParam(r, "kind"), chi.URLParam(r, "contentID"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

func (a *API) handleWorldTags(w http.ResponseWriter, r *http.Request) {
	result, err := a.tags.HandleListWorld(r.Context(), chi.URLParam(r, "worldID"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

func (a *API) handleGetTag(w http.ResponseWriter, r *http.Request) {
	result, err := a.tags.HandleGet(r.Context(),
		chi.URLParam(r, "worldID"), chi.URLParam(r, "tagName"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

func (a *API) handleSuggestTags(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	names, err := a.tags.HandleSuggest(r.Context(),
		chi.URLParam(r, "worldID"), q.Get("prefix"), q.Get("kind"), q.Get("id"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, map[string][]string{"suggestions": names})
}

// Links.

func (a *API) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	author, ok := a.requireAuthor(w, r)
	if !ok {
		return
	}
	var req createLinkRequest
	if err := decodeBody(r, &req); err != nil {
		a.respondError(w, r, err)
		return
	}

	link, err := a.links.HandleAdd(r.Context(), chi.URLParam(r, "worldID"),
		req.From.Kind, req.From.ID, req.To.Kind, req.To.ID, author)
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.metrics.LinksCreated.Inc()
	a.respondJSON(w, http.StatusCreated, link)
}

func (a *API) handleNeighborhood(w http.ResponseWriter, r *http.Request) {
	view, err := a.links.HandleNeighborhood(r.Context(),
		chi.URLParam(r, "worldID"), chi.URLParam(r, "kind"), chi.URLParam(r, "contentID"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, view)
}

// Attribution.

func (a *API) handleAttribution(w http.ResponseWriter, r *http.Request) {
	view, err := a.stats.HandleContent(r.Context(),
		chi.URLParam(r, "worldID"), chi.URLParam(r, "kind"), chi.URLParam(r, "contentID"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, view)
}

func (a *API) handleWorldStats(w http.ResponseWriter, r *http.Request) {
	stats, err := a.stats.HandleWorld(r.Context(), chi.URLParam(r, "worldID"))
	if err != nil {
		a.respondError(w, r, err)
		return
	}
	a.respondJSON(w, http.StatusOK, stats)
}

func queryInt(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
