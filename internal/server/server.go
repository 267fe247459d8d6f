package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"valorant-mmr/internal/rank"
	"valorant-mmr/internal/riot"
	"valorant-mmr/internal/service"

	"github.com/rs/zerolog"
)

// Server exposes the rank history service as a JSON API. The response
// envelope ({"status": ..., "data"/"errors": ...}) matches what callers
// of the upstream-compatible format expect.
type Server struct {
	rankSvc *service.RankService
	logger  zerolog.Logger
}

func NewServer(rankSvc *service.RankService, logger zerolog.Logger) *Server {
	return &Server{rankSvc: rankSvc, logger: logger}
}

func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/mmr/{name}/{tag}", s.handleRankHistory)
	mux.HandleFunc("GET /api/v1/updates/{puuid}", s.handleMatchUpdates)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

func (s *Server) handleRankHistory(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	tag := r.PathValue("tag")
	region := r.URL.Query().Get("region")
	refresh := r.URL.Query().Get("refresh") == "true"

	report, err := s.rankSvc.GetRankHistory(r.Context(), name, tag, region, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, report)
}

func (s *Server) handleMatchUpdates(w http.ResponseWriter, r *http.Request) {
	puuid := r.PathValue("puuid")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	updates, err := s.rankSvc.GetMatchUpdates(r.Context(), puuid, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeData(w, http.StatusOK, updates)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type envelope struct {
	Status int      `json:"status"`
	Data   any      `json:"data,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

func (s *Server) writeData(w http.ResponseWriter, status int, data any) {
	s.writeJSON(w, status, envelope{Status: status, Data: data})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	logger := zerolog.Ctx(r.Context())

	switch {
	case errors.Is(err, riot.ErrPlayerNotFound):
		s.writeJSON(w, http.StatusNotFound, envelope{Status: http.StatusNotFound, Errors: []string{"player_not_found"}})
	case errors.Is(err, rank.ErrNoRatingData):
		s.writeJSON(w, http.StatusNotFound, envelope{Status: http.StatusNotFound, Errors: []string{"no_competitive_data"}})
	default:
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		s.writeJSON(w, http.StatusInternalServerError, envelope{Status: http.StatusInternalServerError, Errors: []string{"internal_error"}})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode response")
	}
}
