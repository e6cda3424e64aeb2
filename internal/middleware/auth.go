package middleware

import (
	"net/http"
	"strings"

	"github.com/baharkarakas/moviefav-backend/internal/api/httpx"
	"github.com/baharkarakas/moviefav-backend/internal/services"
)

// TokenValidator is satisfied by *services.AuthService.
type TokenValidator interface {
	Validate(token string) (services.Identity, error)
}

type AuthMiddleware struct {
	v TokenValidator
}

func NewAuthMiddleware(v TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{v: v}
}

// Auth rejects requests without a valid bearer token and puts the caller's
// identity on the request context.
func (m *AuthMiddleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			httpx.WriteServiceError(w, r, services.ErrAuthRequired)
			return
		}
		id, err := m.v.Validate(token)
		if err != nil {
			httpx.WriteServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), id)))
	})
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
