package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"likestats/pkg/likes"
	"likestats/pkg/stats"
)

// response is the JSON envelope for all stats endpoints. Partial results
// carry an explicit incomplete flag so degraded data is never mistaken for
// the full history.
type response struct {
	Status     string         `json:"status"`
	Incomplete bool           `json:"incomplete,omitempty"`
	Message    string         `json:"message,omitempty"`
	Data       *stats.Summary `json:"data,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, response{Status: "ok"})
}

func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	handle := chi.URLParam(r, "handle")
	if err := s.validate.Var(handle, "required,handle"); err != nil {
		s.respond(w, http.StatusBadRequest, response{
			Status:  "invalid",
			Message: "handle must be 1-15 letters, digits or underscores",
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	result := s.engine.GetStats(ctx, handle)

	// The four outcomes stay distinct: collapsing partial into ok would
	// hide degraded results from the caller.
	switch result.Status {
	case likes.StatusOK:
		s.respond(w, http.StatusOK, response{Status: string(result.Status), Data: result.Stats})
	case likes.StatusPartial:
		s.respond(w, http.StatusPartialContent, response{
			Status:     string(result.Status),
			Incomplete: true,
			Data:       result.Stats,
		})
	case likes.StatusNotFound:
		s.respond(w, http.StatusNotFound, response{
			Status:  string(result.Status),
			Message: "no likes found",
		})
	default:
		s.respond(w, http.StatusForbidden, response{
			Status:  string(likes.StatusForbidden),
			Message: "liked posts unavailable",
		})
	}
}

func (s *Server) respond(w http.ResponseWriter, code int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.WithError(err).Error("failed to encode response")
	}
}
