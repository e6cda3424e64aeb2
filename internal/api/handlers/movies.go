package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/moviefav-backend/internal/api/httpx"
	"github.com/baharkarakas/moviefav-backend/internal/catalog"
)

type Catalog interface {
	Popular(ctx context.Context, page int) (json.RawMessage, error)
	TopRated(ctx context.Context, page int) (json.RawMessage, error)
	Search(ctx context.Context, query string, page int) (json.RawMessage, error)
	Details(ctx context.Context, id int64) (json.RawMessage, error)
}

// MovieHandler proxies catalog reads. Responses are passed through as-is.
type MovieHandler struct {
	c Catalog
}

func NewMovieHandler(c Catalog) *MovieHandler {
	return &MovieHandler{c: c}
}

// GET /api/movies/popular
func (h *MovieHandler) Popular(w http.ResponseWriter, r *http.Request) {
	body, err := h.c.Popular(r.Context(), page(r))
	h.write(w, r, body, err)
}

// GET /api/movies/top_rated
func (h *MovieHandler) TopRated(w http.ResponseWriter, r *http.Request) {
	body, err := h.c.TopRated(r.Context(), page(r))
	h.write(w, r, body, err)
}

// GET /api/movies/search?query=
func (h *MovieHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("query"))
	if q == "" {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "query parameter is required", nil)
		return
	}
	body, err := h.c.Search(r.Context(), q, page(r))
	h.write(w, r, body, err)
}

// GET /api/movies/{id}
func (h *MovieHandler) Details(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "movie id must be a positive integer", nil)
		return
	}
	body, err := h.c.Details(r.Context(), id)
	h.write(w, r, body, err)
}

func (h *MovieHandler) write(w http.ResponseWriter, r *http.Request, body json.RawMessage, err error) {
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, body)
	case errors.Is(err, catalog.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "movie not found", nil)
	case errors.Is(err, catalog.ErrNotConfigured):
		httpx.WriteError(w, http.StatusServiceUnavailable, "catalog_unavailable", "movie catalog is not configured", nil)
	default:
		slog.WarnContext(r.Context(), "catalog request failed", "path", r.URL.Path, "err", err)
		httpx.WriteError(w, http.StatusBadGateway, "upstream_error", "failed to fetch from movie catalog", nil)
	}
}

// page: yoksa / bozuksa 1
func page(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
