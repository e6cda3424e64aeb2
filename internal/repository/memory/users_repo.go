package memory

import (
	"context"
	"sync"
	"time"

	"github.com/baharkarakas/moviefav-backend/internal/models"
	repo "github.com/baharkarakas/moviefav-backend/internal/repository"
)

type usersRepo struct {
	mu         sync.RWMutex
	now        func() time.Time
	nextID     int64
	byID       map[int64]models.User
	byUsername map[string]int64
	byEmail    map[string]int64
}

var _ repo.Users = (*usersRepo)(nil)

func newUsersRepo(now func() time.Time) *usersRepo {
	return &usersRepo{
		now:        now,
		nextID:     1,
		byID:       make(map[int64]models.User),
		byUsername: make(map[string]int64),
		byEmail:    make(map[string]int64),
	}
}

func (r *usersRepo) Create(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUsername[username]; ok {
		return models.User{}, repo.ErrUsernameTaken
	}
	if _, ok := r.byEmail[email]; ok {
		return models.User{}, repo.ErrEmailTaken
	}

	u := models.User{
		ID:           r.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    r.now().UTC(),
	}
	r.nextID++
	r.byID[u.ID] = u
	r.byUsername[u.Username] = u.ID
	r.byEmail[u.Email] = u.ID
	return u, nil
}

func (r *usersRepo) FindByID(ctx context.Context, id int64) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (r *usersRepo) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findByIndex(ctx, r.byUsername, username)
}

func (r *usersRepo) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findByIndex(ctx, r.byEmail, email)
}

func (r *usersRepo) findByIndex(ctx context.Context, idx map[string]int64, key string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := idx[key]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return r.byID[id], nil
}
