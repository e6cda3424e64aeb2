package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	repo "github.com/baharkarakas/moviefav-backend/internal/repository"
)

var fixedNow = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

// =============================================================================
// Create Tests
// =============================================================================

func TestUsersRepo_Create_AssignsIncreasingIDs(t *testing.T) {
	r := newUsersRepo(fixedNow)
	ctx := context.Background()

	first, err := r.Create(ctx, "alice", "alice@example.com", "hash-a")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := r.Create(ctx, "bob", "bob@example.com", "hash-b")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
	if !first.CreatedAt.Equal(fixedNow()) {
		t.Errorf("CreatedAt = %v, want %v", first.CreatedAt, fixedNow())
	}
}

func TestUsersRepo_Create_Conflicts(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{"same username", "alice", "other@example.com", repo.ErrUsernameTaken},
		{"same email", "alice2", "alice@example.com", repo.ErrEmailTaken},
		{"both taken reports username", "alice", "alice@example.com", repo.ErrUsernameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newUsersRepo(fixedNow)
			ctx := context.Background()
			if _, err := r.Create(ctx, "alice", "alice@example.com", "h"); err != nil {
				t.Fatalf("seed Create() error = %v", err)
			}

			_, err := r.Create(ctx, tt.username, tt.email, "h")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Create() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, repo.ErrConflict) {
				t.Errorf("Create() error = %v, should wrap ErrConflict", err)
			}
		})
	}
}

func TestUsersRepo_Create_ConcurrentSameUsername(t *testing.T) {
	r := newUsersRepo(fixedNow)
	ctx := context.Background()

	const n = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	created := 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Create(ctx, "racer", fmt.Sprintf("racer%d@example.com", i), "h")
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}
}

func TestUsersRepo_Create_CancelledContext(t *testing.T) {
	r := newUsersRepo(fixedNow)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := r.Create(ctx, "alice", "alice@example.com", "h"); !errors.Is(err, context.Canceled) {
		t.Errorf("Create() error = %v, want context.Canceled", err)
	}
}

// =============================================================================
// Lookup Tests
// =============================================================================

func TestUsersRepo_Find(t *testing.T) {
	r := newUsersRepo(fixedNow)
	ctx := context.Background()
	u, _ := r.Create(ctx, "alice", "alice@example.com", "h")

	if got, err := r.FindByID(ctx, u.ID); err != nil || got.Username != "alice" {
		t.Errorf("FindByID() = %+v, %v", got, err)
	}
	if got, err := r.FindByUsername(ctx, "alice"); err != nil || got.ID != u.ID {
		t.Errorf("FindByUsername() = %+v, %v", got, err)
	}
	if got, err := r.FindByEmail(ctx, "alice@example.com"); err != nil || got.ID != u.ID {
		t.Errorf("FindByEmail() = %+v, %v", got, err)
	}

	if _, err := r.FindByID(ctx, 99); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("FindByID(missing) error = %v, want ErrNotFound", err)
	}
	if _, err := r.FindByUsername(ctx, "Alice"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("FindByUsername is case sensitive, got err = %v", err)
	}
	if _, err := r.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, repo.ErrNotFound) {
		t.Errorf("FindByEmail(missing) error = %v, want ErrNotFound", err)
	}
}
