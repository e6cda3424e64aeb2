package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/moviefav-backend/internal/api/httpx"
	"github.com/baharkarakas/moviefav-backend/internal/middleware"
	"github.com/baharkarakas/moviefav-backend/internal/models"
	"github.com/baharkarakas/moviefav-backend/internal/services"
)

type FavoriteService interface {
	List(ctx context.Context, userID int64) ([]models.FavoriteMovie, error)
	Add(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error)
	Remove(ctx context.Context, userID, movieID int64) (bool, error)
	Merge(ctx context.Context, userID int64, items []models.FavoriteInput) (services.MergeResult, error)
}

type FavoriteHandler struct {
	svc FavoriteService
}

func NewFavoriteHandler(svc FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

type mergeRequest struct {
	Favorites []models.FavoriteInput `json:"favorites"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// GET /api/favorites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	list, err := h.svc.List(r.Context(), id.ID)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

// POST /api/favorites
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req models.FavoriteInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	f, err := h.svc.Add(r.Context(), id.ID, req)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, f)
}

// POST /api/favorites/merge
func (h *FavoriteHandler) Merge(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	var req mergeRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	res, err := h.svc.Merge(r.Context(), id.ID, req.Favorites)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// DELETE /api/favorites/{movieId}
func (h *FavoriteHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}
	movieID, err := strconv.ParseInt(chi.URLParam(r, "movieId"), 10, 64)
	if err != nil || movieID <= 0 {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "movieId must be a positive integer", nil)
		return
	}
	removed, err := h.svc.Remove(r.Context(), id.ID, movieID)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	if !removed {
		httpx.WriteError(w, http.StatusNotFound, "not_found", "favorite not found", nil)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "favorite removed"})
}

func (h *FavoriteHandler) identity(w http.ResponseWriter, r *http.Request) (services.Identity, bool) {
	id, ok := middleware.UserFrom(r.Context())
	if !ok {
		httpx.WriteServiceError(w, r, services.ErrAuthRequired)
	}
	return id, ok
}
