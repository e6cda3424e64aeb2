package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/moviefav-backend/internal/auth"
	"github.com/baharkarakas/moviefav-backend/internal/models"
	repo "github.com/baharkarakas/moviefav-backend/internal/repository"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockUsers struct {
	createFunc         func(ctx context.Context, username, email, hash string) (models.User, error)
	findByIDFunc       func(ctx context.Context, id int64) (models.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (models.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (models.User, error)
}

func (m *mockUsers) Create(ctx context.Context, username, email, hash string) (models.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, username, email, hash)
	}
	return models.User{}, errors.New("not implemented")
}

func (m *mockUsers) FindByID(ctx context.Context, id int64) (models.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return models.User{}, repo.ErrNotFound
}

func (m *mockUsers) FindByUsername(ctx context.Context, username string) (models.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return models.User{}, repo.ErrNotFound
}

func (m *mockUsers) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return models.User{}, repo.ErrNotFound
}

type mockFavorites struct {
	listFunc   func(ctx context.Context, userID int64) ([]models.FavoriteMovie, error)
	addFunc    func(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error)
	removeFunc func(ctx context.Context, userID, movieID int64) (bool, error)
}

func (m *mockFavorites) ListByUser(ctx context.Context, userID int64) ([]models.FavoriteMovie, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID)
	}
	return []models.FavoriteMovie{}, nil
}

func (m *mockFavorites) Find(ctx context.Context, userID, movieID int64) (models.FavoriteMovie, error) {
	return models.FavoriteMovie{}, repo.ErrNotFound
}

func (m *mockFavorites) Add(ctx context.Context, userID int64, in models.FavoriteInput) (models.FavoriteMovie, error) {
	if m.addFunc != nil {
		return m.addFunc(ctx, userID, in)
	}
	return models.FavoriteMovie{}, errors.New("not implemented")
}

func (m *mockFavorites) Remove(ctx context.Context, userID, movieID int64) (bool, error) {
	if m.removeFunc != nil {
		return m.removeFunc(ctx, userID, movieID)
	}
	return false, errors.New("not implemented")
}

// =============================================================================
// Helpers
// =============================================================================

const testSecret = "test-secret-key-at-least-32-chars-long"

func newAuth(t *testing.T, users repo.Users) (*AuthService, *auth.TokenManager) {
	t.Helper()
	h, err := auth.NewHasher(bcrypt.MinCost, nil)
	if err != nil {
		t.Fatalf("NewHasher() error = %v", err)
	}
	tm := auth.NewTokenManager(testSecret, "test", time.Hour)
	return NewAuthService(users, h, tm), tm
}

func register(t *testing.T, s *AuthService, username, email, password string) AuthResult {
	t.Helper()
	res, err := s.Register(context.Background(), RegisterInput{Username: username, Email: email, Password: password})
	if err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	return res
}

func fieldsOf(err error) map[string]string {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		return nil
	}
	out := map[string]string{}
	for _, f := range verr.Fields {
		out[f.Field] = f.Msg
	}
	return out
}
