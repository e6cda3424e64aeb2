package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// Runner executes f on a bounded pool; *worker.Pool satisfies it.
type Runner interface {
	Do(ctx context.Context, f func()) error
}

type inline struct{}

func (inline) Do(ctx context.Context, f func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f()
	return nil
}

// Hasher wraps bcrypt. Work runs on the given runner, never under a store
// lock.
type Hasher struct {
	cost  int
	run   Runner
	dummy []byte
}

// NewHasher builds a Hasher with the given bcrypt cost. run may be nil, in
// which case work happens on the calling goroutine.
func NewHasher(cost int, run Runner) (*Hasher, error) {
	if run == nil {
		run = inline{}
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte("timing-equalizer"), cost)
	if err != nil {
		return nil, fmt.Errorf("bcrypt cost %d: %w", cost, err)
	}
	return &Hasher{cost: cost, run: run, dummy: dummy}, nil
}

func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	var out []byte
	var herr error
	if err := h.run.Do(ctx, func() {
		out, herr = bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	}); err != nil {
		return "", err
	}
	if herr != nil {
		return "", fmt.Errorf("hash password: %w", herr)
	}
	return string(out), nil
}

// Compare returns nil when plain matches hash and ErrPasswordMismatch when it
// does not.
func (h *Hasher) Compare(ctx context.Context, hash, plain string) error {
	var cerr error
	if err := h.run.Do(ctx, func() {
		cerr = bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	}); err != nil {
		return err
	}
	switch {
	case cerr == nil:
		return nil
	case errors.Is(cerr, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("compare password: %w", cerr)
	}
}

// CompareDummy burns the same time as a real comparison. Used when the user
// does not exist so the response time does not reveal it.
func (h *Hasher) CompareDummy(ctx context.Context, plain string) {
	_ = h.run.Do(ctx, func() {
		_ = bcrypt.CompareHashAndPassword(h.dummy, []byte(plain))
	})
}
