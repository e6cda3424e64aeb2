package memory

import (
	"time"

	repo "github.com/baharkarakas/moviefav-backend/internal/repository"
)

type Repositories struct {
	Users     repo.Users
	Favorites repo.Favorites
}

// process ömrü boyunca; restart'ta her şey gider
func NewRepositories() Repositories {
	return Repositories{
		Users:     newUsersRepo(time.Now),
		Favorites: newFavoritesRepo(time.Now),
	}
}
