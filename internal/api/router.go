package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/moviefav-backend/internal/api/handlers"
	"github.com/baharkarakas/moviefav-backend/internal/metrics"
	"github.com/baharkarakas/moviefav-backend/internal/middleware"
)

type RouterDeps struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	// empty disables static file serving
	StaticDir string

	Auth      *handlers.AuthHandler
	Favorites *handlers.FavoriteHandler
	Movies    *handlers.MovieHandler
	Gate      *middleware.AuthMiddleware
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RequestLog(log), middleware.Recover, middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
			r.With(d.Gate.Auth).Get("/me", d.Auth.Me)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Use(d.Gate.Auth)
			r.Get("/", d.Favorites.List)
			r.Post("/", d.Favorites.Add)
			r.Post("/merge", d.Favorites.Merge)
			r.Delete("/{movieId}", d.Favorites.Remove)
		})

		r.Route("/movies", func(r chi.Router) {
			r.Get("/popular", d.Movies.Popular)
			r.Get("/top_rated", d.Movies.TopRated)
			r.Get("/search", d.Movies.Search)
			r.Get("/{id}", d.Movies.Details)
		})

		r.NotFound(notFound)
	})

	if d.StaticDir != "" {
		r.NotFound(spaHandler(d.StaticDir).ServeHTTP)
	} else {
		r.NotFound(notFound)
	}
	return r
}
