package server

import (
	"net/http"

	"github.com/blackwell-systems/weatherfocus/internal/logging"
)

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": s.opts.Version})
}

func (s *Server) insights(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Service.Insights(r.Context()))
}

func (s *Server) correlations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Service.Correlations(r.Context()))
}

func (s *Server) patterns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Service.Pomodoro(r.Context()))
}

func (s *Server) suggestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Service.Suggestions(r.Context()))
}

func (s *Server) feed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.opts.Service.Feed(r.Context()))
}

func (s *Server) history(w http.ResponseWriter, r *http.Request) {
	if s.opts.Counter == nil {
		writeError(w, http.StatusNotImplemented, "history counts unavailable")
		return
	}
	counts, err := s.opts.Counter.Counts(r.Context())
	if err != nil {
		logging.FromContext(r.Context(), s.logger).Error("counting history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "counting history failed")
		return
	}
	writeJSON(w, http.StatusOK, counts)
}
