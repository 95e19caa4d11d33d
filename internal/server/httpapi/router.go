package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Router assembles the route tree. Everything under /api requires a valid
// session; the auth routes are public.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Post("/verify", s.handleVerify)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.Authenticate)
		r.Post("/api", s.handleAPI)
	})

	return r
}
