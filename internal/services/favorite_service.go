package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/baharkarakas/moviefav-backend/internal/metrics"
	"github.com/baharkarakas/moviefav-backend/internal/models"
	repo "github.com/baharkarakas/moviefav-backend/internal/repository"
	"github.com/baharkarakas/moviefav-backend/internal/validate"
)

type MergeResult struct {
	Favorites []models.FavoriteMovie `json:"favorites"`
	Added     int                    `json:"added"`
	Skipped   int                    `json:"skipped"`
}

type mergeBatch struct {
	Favorites []models.FavoriteInput `json:"favorites" validate:"max=500,dive"`
}

type FavoriteService struct {
	favs repo.Favorites
}

func NewFavoriteService(favs repo.Favorites) *FavoriteService {
	return &FavoriteService{favs: favs}
}

func (s *FavoriteService) List(ctx context.Context, userID int64) ([]models.FavoriteMovie, error) {
	list, err := s.favs.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return list, nil
}

func (s *FavoriteService) Add(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error) {
	in = normalize(in)
	if err := validate.Struct(in); err != nil {
		return models.FavoriteMovie{}, asValidation(err)
	}

	f, err := s.favs.Add(ctx, userID, in)
	switch {
	case errors.Is(err, repo.ErrAlreadyFavorited):
		metrics.FavoritesOps.WithLabelValues("add", "conflict").Inc()
		return models.FavoriteMovie{}, &ConflictError{Field: "movieId", Message: "movie already in favorites"}
	case err != nil:
		metrics.FavoritesOps.WithLabelValues("add", "error").Inc()
		return models.FavoriteMovie{}, fmt.Errorf("add favorite: %w", err)
	}
	metrics.FavoritesOps.WithLabelValues("add", "ok").Inc()
	return f, nil
}

// Remove reports whether a favorite was deleted. Absence is not an error.
func (s *FavoriteService) Remove(ctx context.Context, userID, movieID int64) (bool, error) {
	if movieID <= 0 {
		return false, &ValidationError{Fields: validate.Errs{{Field: "movieId", Msg: "must be > 0"}}}
	}
	removed, err := s.favs.Remove(ctx, userID, movieID)
	if err != nil {
		metrics.FavoritesOps.WithLabelValues("remove", "error").Inc()
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	if !removed {
		metrics.FavoritesOps.WithLabelValues("remove", "not_found").Inc()
		return false, nil
	}
	metrics.FavoritesOps.WithLabelValues("remove", "ok").Inc()
	return true, nil
}

// Merge folds favorites collected while signed out into the account. Items
// are added in order; anything the server already has is left untouched and
// counted as skipped. The returned list is the server's view after the merge.
func (s *FavoriteService) Merge(ctx context.Context, userID int64, items []models.FavoriteInput) (MergeResult, error) {
	batch := mergeBatch{Favorites: make([]models.FavoriteInput, len(items))}
	for i, it := range items {
		batch.Favorites[i] = normalize(it)
	}
	if err := validate.Struct(batch); err != nil {
		return MergeResult{}, asValidation(err)
	}

	var res MergeResult
	for _, it := range batch.Favorites {
		_, err := s.favs.Add(ctx, userID, it)
		switch {
		case err == nil:
			res.Added++
		case errors.Is(err, repo.ErrConflict):
			res.Skipped++
		default:
			metrics.FavoritesOps.WithLabelValues("merge", "error").Inc()
			return MergeResult{}, fmt.Errorf("merge favorite %d: %w", it.MovieID, err)
		}
	}

	list, err := s.List(ctx, userID)
	if err != nil {
		return MergeResult{}, err
	}
	res.Favorites = list
	metrics.FavoritesOps.WithLabelValues("merge", "ok").Inc()
	slog.DebugContext(ctx, "favorites merged", "user_id", userID, "added", res.Added, "skipped", res.Skipped)
	return res, nil
}

func normalize(in models.FavoriteInput) models.FavoriteInput {
	in.Title = strings.TrimSpace(in.Title)
	in.PosterPath = strings.TrimSpace(in.PosterPath)
	in.Rating = strings.TrimSpace(in.Rating)
	return in
}
