package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baharkarakas/moviefav-backend/internal/api/httpx"
	"github.com/baharkarakas/moviefav-backend/internal/services"
)

// =============================================================================
// Mock Implementations
// =============================================================================

type mockValidator struct {
	validateFunc func(token string) (services.Identity, error)
}

func (m *mockValidator) Validate(token string) (services.Identity, error) {
	if m.validateFunc != nil {
		return m.validateFunc(token)
	}
	return services.Identity{}, services.ErrInvalidToken
}

// =============================================================================
// Auth Tests
// =============================================================================

func TestAuth(t *testing.T) {
	v := &mockValidator{
		validateFunc: func(token string) (services.Identity, error) {
			if token == "good" {
				return services.Identity{ID: 7, Username: "alice"}, nil
			}
			return services.Identity{}, services.ErrInvalidToken
		},
	}
	mw := NewAuthMiddleware(v)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"valid", "Bearer good", http.StatusOK, ""},
		{"lowercase scheme", "bearer good", http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "authentication required"},
		{"no token", "Bearer ", http.StatusUnauthorized, "authentication required"},
		{"basic scheme", "Basic Zm9vOmJhcg==", http.StatusUnauthorized, "authentication required"},
		{"bad token", "Bearer bad", http.StatusUnauthorized, "invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got services.Identity
			var reached bool
			h := mw.Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				got, _ = UserFrom(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/favorites", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if !reached || got.ID != 7 || got.Username != "alice" {
					t.Errorf("identity = %+v, reached = %v", got, reached)
				}
				return
			}
			if reached {
				t.Error("next handler ran for an unauthenticated request")
			}
			var body httpx.APIError
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body.Error != tt.wantMsg || body.Code != "unauthorized" {
				t.Errorf("body = %+v", body)
			}
		})
	}
}

func TestUserFrom_Empty(t *testing.T) {
	if _, ok := UserFrom(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Error("UserFrom() on a bare context should report false")
	}
}
