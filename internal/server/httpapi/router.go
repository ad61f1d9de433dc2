package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/gallery/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every route. Protected routes sit behind RequireAuth.
func NewRouter(h *Handler, logger logging.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger.With("module", "http")))
	r.Use(Metrics())
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", h.Root)
	r.Get("/health", h.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Get("/uploads/{filename}", h.File)
	r.Head("/uploads/{filename}", h.File)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(h.users))
		r.Post("/logout", h.Logout)
		r.Post("/upload", h.Upload)
		r.Get("/images", h.Images)
	})

	return r
}
