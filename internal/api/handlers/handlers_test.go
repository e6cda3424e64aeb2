package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/moviefav-backend/internal/catalog"
	"github.com/baharkarakas/moviefav-backend/internal/middleware"
	"github.com/baharkarakas/moviefav-backend/internal/models"
	"github.com/baharkarakas/moviefav-backend/internal/services"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockFavoriteService struct {
	listFunc   func(ctx context.Context, userID int64) ([]models.FavoriteMovie, error)
	addFunc    func(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error)
	removeFunc func(ctx context.Context, userID, movieID int64) (bool, error)
	mergeFunc  func(ctx context.Context, userID int64, items []models.FavoriteInput) (services.MergeResult, error)
}

func (m *mockFavoriteService) List(ctx context.Context, userID int64) ([]models.FavoriteMovie, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockFavoriteService) Add(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, userID, in)
	}
	return models.FavoriteMovie{}, errors.New("not implemented")
}

func (m *mockFavoriteService) Remove(ctx context.Context, userID, movieID int64) (bool, error) {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, userID, movieID)
	}
	return false, errors.New("not implemented")
}

func (m *mockFavoriteService) Merge(ctx context.Context, userID int64, items []models.FavoriteInput) (services.MergeResult, error) {
	if m.mergeFunc != nil {
		return m.mergeFunc(ctx, userID, items)
	}
	return services.MergeResult{}, errors.New("not implemented")
}

type mockCatalog struct {
	err error
}

func (m *mockCatalog) Popular(ctx context.Context, page int) (json.RawMessage, error) {
	return json.RawMessage(`{"page":1}`), m.err
}

func (m *mockCatalog) TopRated(ctx context.Context, page int) (json.RawMessage, error) {
	return nil, m.err
}

func (m *mockCatalog) Search(ctx context.Context, query string, page int) (json.RawMessage, error) {
	return nil, m.err
}

func (m *mockCatalog) Details(ctx context.Context, id int64) (json.RawMessage, error) {
	return nil, m.err
}

func withUser(r *http.Request, id int64) *http.Request {
	return r.WithContext(middleware.WithUser(r.Context(), services.Identity{ID: id, Username: "alice"}))
}

// =============================================================================
// Favorite Handler Tests
// =============================================================================

func TestFavoriteHandler_NoIdentity(t *testing.T) {
	h := NewFavoriteHandler(&mockFavoriteService{})
	w := httptest.NewRecorder()

	h.List(w, httptest.NewRequest(http.MethodGet, "/api/favorites", nil))

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestFavoriteHandler_PassesUserID(t *testing.T) {
	var gotUser, gotMovie int64
	h := NewFavoriteHandler(&mockFavoriteService{
		removeFunc: func(ctx context.Context, userID, movieID int64) (bool, error) {
			gotUser, gotMovie = userID, movieID
			return true, nil
		},
	})

	r := chi.NewRouter()
	r.Delete("/api/favorites/{movieId}", h.Remove)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, withUser(httptest.NewRequest(http.MethodDelete, "/api/favorites/550", nil), 9))

	if w.Code != http.StatusOK || gotUser != 9 || gotMovie != 550 {
		t.Errorf("status = %d user = %d movie = %d", w.Code, gotUser, gotMovie)
	}
}

func TestFavoriteHandler_InternalError(t *testing.T) {
	h := NewFavoriteHandler(&mockFavoriteService{
		listFunc: func(ctx context.Context, userID int64) ([]models.FavoriteMovie, error) {
			return nil, errors.New("store offline")
		},
	})
	w := httptest.NewRecorder()

	h.List(w, withUser(httptest.NewRequest(http.MethodGet, "/api/favorites", nil), 1))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
	if strings.Contains(w.Body.String(), "store offline") {
		t.Error("internal error leaked")
	}
}

func TestFavoriteHandler_AddDecodesCamelCase(t *testing.T) {
	var got models.FavoriteInput
	h := NewFavoriteHandler(&mockFavoriteService{
		addFunc: func(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error) {
			got = in
			return models.FavoriteMovie{ID: 1, UserID: userID, MovieID: in.MovieID}, nil
		},
	})
	body := `{"movieId":603,"title":"The Matrix","posterPath":"/m.jpg","rating":"8.2"}`
	w := httptest.NewRecorder()

	h.Add(w, withUser(httptest.NewRequest(http.MethodPost, "/api/favorites", strings.NewReader(body)), 1))

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d body = %s", w.Code, w.Body.String())
	}
	if got.MovieID != 603 || got.PosterPath != "/m.jpg" || got.Rating != "8.2" {
		t.Errorf("decoded = %+v", got)
	}
}

// =============================================================================
// Movie Handler Tests
// =============================================================================

func TestMovieHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ok", nil, http.StatusOK},
		{"not found", catalog.ErrNotFound, http.StatusNotFound},
		{"not configured", catalog.ErrNotConfigured, http.StatusServiceUnavailable},
		{"upstream", &catalog.UpstreamError{Status: 500}, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewMovieHandler(&mockCatalog{err: tt.err})
			w := httptest.NewRecorder()
			h.Popular(w, httptest.NewRequest(http.MethodGet, "/api/movies/popular?page=2", nil))
			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
		})
	}
}

func TestPage(t *testing.T) {
	tests := map[string]int{"": 1, "?page=3": 3, "?page=0": 1, "?page=x": 1, "?page=-2": 1}
	for q, want := range tests {
		if got := page(httptest.NewRequest(http.MethodGet, "/x"+q, nil)); got != want {
			t.Errorf("page(%q) = %d, want %d", q, got, want)
		}
	}
}
