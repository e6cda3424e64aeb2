package repository

import (
	"context"

	"github.com/baharkarakas/moviefav-backend/internal/models"
)

// Users is the credential store. Create enforces username and email
// uniqueness atomically with the insert.
type Users interface {
	Create(ctx context.Context, username, email, passwordHash string) (models.User, error)
	FindByID(ctx context.Context, id int64) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
}

// Favorites holds at most one record per (user, movie).
type Favorites interface {
	ListByUser(ctx context.Context, userID int64) ([]models.FavoriteMovie, error)
	Find(ctx context.Context, userID, movieID int64) (models.FavoriteMovie, error)
	Add(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error)
	Remove(ctx context.Context, userID, movieID int64) (bool, error)
}
