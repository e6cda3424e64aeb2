package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/moviefav-backend/internal/models"
	repo "github.com/baharkarakas/moviefav-backend/internal/repository"
)

type favoritesRepo struct {
	mu     sync.RWMutex
	now    func() time.Time
	nextID int64
	// per-user slices keep insertion order
	byUser map[int64][]models.FavoriteMovie
}

var _ repo.Favorites = (*favoritesRepo)(nil)

func newFavoritesRepo(now func() time.Time) *favoritesRepo {
	return &favoritesRepo{
		now:    now,
		nextID: 1,
		byUser: make(map[int64][]models.FavoriteMovie),
	}
}

func (r *favoritesRepo) ListByUser(ctx context.Context, userID int64) ([]models.FavoriteMovie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.FavoriteMovie, len(r.byUser[userID]))
	copy(out, r.byUser[userID])
	return out, nil
}

func (r *favoritesRepo) Find(ctx context.Context, userID, movieID int64) (models.FavoriteMovie, error) {
	if err := ctx.Err(); err != nil {
		return models.FavoriteMovie{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := indexOf(r.byUser[userID], movieID); i >= 0 {
		return r.byUser[userID][i], nil
	}
	return models.FavoriteMovie{}, repo.ErrNotFound
}

func (r *favoritesRepo) Add(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error) {
	if err := ctx.Err(); err != nil {
		return models.FavoriteMovie{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byUser[userID]
	if indexOf(list, in.MovieID) >= 0 {
		return models.FavoriteMovie{}, repo.ErrAlreadyFavorited
	}
	f := models.FavoriteMovie{
		ID:         r.nextID,
		UserID:     userID,
		MovieID:    in.MovieID,
		Title:      in.Title,
		PosterPath: in.PosterPath,
		Rating:     in.Rating,
		CreatedAt:  r.now().UTC(),
	}
	r.nextID++
	r.byUser[userID] = append(list, f)
	return f, nil
}

func (r *favoritesRepo) Remove(ctx context.Context, userID, movieID int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.byUser[userID]
	i := indexOf(list, movieID)
	if i < 0 {
		return false, nil
	}
	list = append(list[:i:i], list[i+1:]...)
	if len(list) == 0 {
		delete(r.byUser, userID)
	} else {
		r.byUser[userID] = list
	}
	return true, nil
}

func indexOf(list []models.FavoriteMovie, movieID int64) int {
	for i := range list {
		if list[i].MovieID == movieID {
			return i
		}
	}
	return -1
}
