package handlers

import (
	"context"
	"net/http"

	"github.com/baharkarakas/moviefav-backend/internal/api/httpx"
	"github.com/baharkarakas/moviefav-backend/internal/middleware"
	"github.com/baharkarakas/moviefav-backend/internal/models"
	"github.com/baharkarakas/moviefav-backend/internal/services"
)

type AuthService interface {
	Register(ctx context.Context, in services.RegisterInput) (services.AuthResult, error)
	Login(ctx context.Context, in services.LoginInput) (services.AuthResult, error)
	CurrentUser(ctx context.Context, id int64) (models.PublicUser, error)
}

type AuthHandler struct {
	svc AuthService
}

func NewAuthHandler(svc AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, res)
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginInput
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.BadRequest(w, err)
		return
	}
	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, res)
}

// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.UserFrom(r.Context())
	if !ok {
		httpx.WriteServiceError(w, r, services.ErrAuthRequired)
		return
	}
	u, err := h.svc.CurrentUser(r.Context(), id.ID)
	if err != nil {
		httpx.WriteServiceError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
