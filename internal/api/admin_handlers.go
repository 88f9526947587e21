package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vrsandeep/ugc-console/internal/poller"
)

const defaultHistoryLimit = 50

type pollStatus struct {
	poller.TaskStatus
	FailuresLastHour int `json:"failures_last_hour"`
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, map[string]string{"version": s.app.Version})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Store.Ping(); err != nil {
		RespondWithError(w, http.StatusServiceUnavailable, "Database connection failed")
		return
	}
	RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleGetPollStatus(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-time.Hour)
	statuses := s.app.Monitor.Poller().Status()
	resp := make([]pollStatus, 0, len(statuses))
	for _, st := range statuses {
		failures, err := s.app.Store.CountFailedPollRuns(st.Name, since)
		if err != nil {
			log.Printf("Warning: could not count failures for '%s': %v", st.Name, err)
		}
		resp = append(resp, pollStatus{TaskStatus: st, FailuresLastHour: failures})
	}
	RespondWithJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPollHistory(w http.ResponseWriter, r *http.Request) {
	task := r.URL.Query().Get("task")
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	runs, err := s.app.Store.ListPollRuns(task, limit)
	if err != nil {
		RespondWithError(w, http.StatusInternalServerError, "Failed to retrieve poll history")
		return
	}
	RespondWithJSON(w, http.StatusOK, runs)
}

func (s *Server) handleRunPoll(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.app.Monitor.Poller().RunNow(name); err != nil {
		if errors.Is(err, poller.ErrStopped) {
			RespondWithError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		RespondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	RespondWithJSON(w, http.StatusAccepted, map[string]string{
		"message": "Poll '" + name + "' started.",
	})
}
