package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/trendora/recommendation-service/internal/handler"
)

func Setup(h *handler.Handler, staticDir string) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Pages
	r.Get("/", h.Index)
	r.Get("/index", h.Index)
	r.Get("/main", h.Main)
	r.Get("/recommendations", h.Recommendations)
	r.Post("/recommendations", h.Recommendations)

	// Accounts
	r.Post("/signup", h.SignUp)
	r.Post("/signin", h.SignIn)
	r.Post("/signout", h.SignOut)

	r.Get("/health", h.Health)

	// Placeholder images and stylesheets
	fs := http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir)))
	r.Get("/static/*", fs.ServeHTTP)

	return r
}
