package server

import (
	"net/http"

	"league-tracker/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func NewRouter(s *Server, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID(logger))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", s.Health)

	r.Route("/profile", func(r chi.Router) {
		r.Get("/live/{region}/{puuid}", s.GetLiveStatus)
		r.Get("/{region}/{gameName}/{tagLine}", s.GetProfile)
	})

	r.Get("/matches/{region}/{puuid}", s.GetMatches)
	r.Get("/searches/recent", s.GetRecentSearches)
	r.Get("/static/versions", s.GetVersions)

	return r
}
