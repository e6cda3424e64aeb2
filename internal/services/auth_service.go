package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/baharkarakas/moviefav-backend/internal/auth"
	"github.com/baharkarakas/moviefav-backend/internal/metrics"
	"github.com/baharkarakas/moviefav-backend/internal/models"
	repo "github.com/baharkarakas/moviefav-backend/internal/repository"
	"github.com/baharkarakas/moviefav-backend/internal/validate"
)

// bcrypt ignores everything past 72 bytes
const maxPasswordBytes = 72

type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResult struct {
	User      models.PublicUser `json:"user"`
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
}

// Identity is what a valid token proves about its bearer.
type Identity struct {
	ID       int64
	Username string
}

type AuthService struct {
	users  repo.Users
	hasher *auth.Hasher
	tokens *auth.TokenManager
}

func NewAuthService(users repo.Users, hasher *auth.Hasher, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates an account and signs the caller in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if err := validate.Struct(in); err != nil {
		metrics.AuthEvents.WithLabelValues("register", "invalid").Inc()
		return AuthResult{}, asValidation(err)
	}
	// whitespace-only passwords would fail the login presence check
	if err := validate.Collect(
		validate.Required("password", in.Password),
		validate.MaxBytes("password", in.Password, maxPasswordBytes),
	); err != nil {
		metrics.AuthEvents.WithLabelValues("register", "invalid").Inc()
		return AuthResult{}, asValidation(err)
	}

	// fail fast before paying for bcrypt; Create re-checks under its lock
	if err := s.ensureAvailable(ctx, in.Username, in.Email); err != nil {
		return AuthResult{}, s.registerFailed(err)
	}

	hash, err := s.hasher.Hash(ctx, in.Password)
	if err != nil {
		return AuthResult{}, err
	}

	u, err := s.users.Create(ctx, in.Username, in.Email, hash)
	if err != nil {
		return AuthResult{}, s.registerFailed(err)
	}

	res, err := s.issue(u)
	if err != nil {
		return AuthResult{}, err
	}
	metrics.AuthEvents.WithLabelValues("register", "success").Inc()
	slog.InfoContext(ctx, "user registered", "user_id", u.ID)
	return res, nil
}

func (s *AuthService) ensureAvailable(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return repo.ErrUsernameTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return repo.ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) registerFailed(err error) error {
	switch {
	case errors.Is(err, repo.ErrUsernameTaken):
		metrics.AuthEvents.WithLabelValues("register", "conflict").Inc()
		return &ConflictError{Field: "username", Message: "username already exists"}
	case errors.Is(err, repo.ErrEmailTaken):
		metrics.AuthEvents.WithLabelValues("register", "conflict").Inc()
		return &ConflictError{Field: "email", Message: "email already exists"}
	}
	return fmt.Errorf("create user: %w", err)
}

// Login checks credentials. Unknown usernames and wrong passwords produce
// the same error and take about the same time.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (AuthResult, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validate.Collect(
		validate.Required("username", in.Username),
		validate.Required("password", in.Password),
	); err != nil {
		metrics.AuthEvents.WithLabelValues("login", "invalid").Inc()
		return AuthResult{}, asValidation(err)
	}

	u, err := s.users.FindByUsername(ctx, in.Username)
	if errors.Is(err, repo.ErrNotFound) {
		s.hasher.CompareDummy(ctx, in.Password)
		metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
		return AuthResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return AuthResult{}, fmt.Errorf("find user: %w", err)
	}

	if err := s.hasher.Compare(ctx, u.PasswordHash, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			metrics.AuthEvents.WithLabelValues("login", "failure").Inc()
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	res, err := s.issue(u)
	if err != nil {
		return AuthResult{}, err
	}
	metrics.AuthEvents.WithLabelValues("login", "success").Inc()
	return res, nil
}

// Validate resolves a bearer token to the identity it was issued for.
func (s *AuthService) Validate(token string) (Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		metrics.AuthEvents.WithLabelValues("validate", "failure").Inc()
		return Identity{}, ErrInvalidToken
	}
	return Identity{ID: claims.UserID, Username: claims.Username}, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id int64) (models.PublicUser, error) {
	u, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return models.PublicUser{}, &NotFoundError{Resource: "user", Message: "user not found"}
	}
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("find user: %w", err)
	}
	return u.Public(), nil
}

func (s *AuthService) issue(u models.User) (AuthResult, error) {
	tok, exp, err := s.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: u.Public(), Token: tok, ExpiresAt: exp}, nil
}
