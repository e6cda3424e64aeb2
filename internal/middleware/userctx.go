package middleware

import (
	"context"

	"github.com/baharkarakas/moviefav-backend/internal/services"
)

type userKey struct{}

func WithUser(ctx context.Context, id services.Identity) context.Context {
	return context.WithValue(ctx, userKey{}, id)
}

// UserFrom returns the identity set by AuthMiddleware.Auth.
func UserFrom(ctx context.Context) (services.Identity, bool) {
	id, ok := ctx.Value(userKey{}).(services.Identity)
	return id, ok
}
