package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"league-tracker/internal/api"
	"league-tracker/internal/constants"
	"league-tracker/internal/domain"
	"league-tracker/internal/regions"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type ProfileGetter interface {
	GetProfile(ctx context.Context, region, gameName, tagLine string) (*domain.Profile, error)
	GetLiveStatus(ctx context.Context, region, puuid string) (*domain.LiveGameStatus, error)
}

type HistoryGetter interface {
	GetHistory(ctx context.Context, region, puuid, mode string) (*domain.MatchHistory, error)
}

type SearchLister interface {
	Recent(ctx context.Context, limit int) ([]domain.RecentSearch, error)
}

type VersionLister interface {
	Versions(ctx context.Context) ([]string, error)
}

type Server struct {
	profiles ProfileGetter
	matches  HistoryGetter
	searches SearchLister
	assets   VersionLister
	logger   zerolog.Logger
}

func NewServer(profiles ProfileGetter, matches HistoryGetter, searches SearchLister, assets VersionLister, logger zerolog.Logger) *Server {
	return &Server{profiles: profiles, matches: matches, searches: searches, assets: assets, logger: logger}
}

func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	gameName := chi.URLParam(r, "gameName")
	tagLine := chi.URLParam(r, "tagLine")

	profile, err := s.profiles.GetProfile(r.Context(), region, gameName, tagLine)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, profile)
}

// GetLiveStatus always answers 200 for a supported region: not-in-game and
// upstream failure are indistinguishable by design.
func (s *Server) GetLiveStatus(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	puuid := chi.URLParam(r, "puuid")

	status, err := s.profiles.GetLiveStatus(r.Context(), region, puuid)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) GetMatches(w http.ResponseWriter, r *http.Request) {
	region := chi.URLParam(r, "region")
	puuid := chi.URLParam(r, "puuid")
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = "all"
	}

	history, err := s.matches.GetHistory(r.Context(), region, puuid, mode)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, history)
}

func (s *Server) GetRecentSearches(w http.ResponseWriter, r *http.Request) {
	limit := constants.RecentSearchLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > constants.RecentSearchMaxLimit {
			s.writeErrorMessage(w, http.StatusBadRequest, "invalid limit parameter")
			return
		}
		limit = n
	}

	searches, err := s.searches.Recent(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if searches == nil {
		searches = []domain.RecentSearch{}
	}
	s.writeJSON(w, http.StatusOK, searches)
}

func (s *Server) GetVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.assets.Versions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, versions)
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}

// writeError maps the error taxonomy to a response: unsupported region is a
// 400, an upstream verdict keeps its status code and message, everything
// else is a 500. The body is always a single error object.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, regions.ErrUnsupportedRegion) {
		s.writeErrorMessage(w, http.StatusBadRequest, "unsupported region")
		return
	}

	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		message := statusErr.Message
		if message == "" {
			message = http.StatusText(statusErr.StatusCode)
		}
		s.writeErrorMessage(w, statusErr.StatusCode, message)
		return
	}

	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	s.writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
}

func (s *Server) writeErrorMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
