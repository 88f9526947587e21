package api

import (
	"net/http"

	"github.com/vrsandeep/ugc-console/internal/models"
)

func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if !decodePayload(w, r, &req) {
		return
	}
	job, err := s.app.Monitor.CreateJob(r.Context(), req)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, job)
}

func (s *Server) handleLaunchCampaign(w http.ResponseWriter, r *http.Request) {
	var req models.BulkJobRequest
	if !decodePayload(w, r, &req) {
		return
	}
	res, err := s.app.Monitor.LaunchCampaign(r.Context(), req)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, res)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	var req models.EstimateRequest
	if !decodePayload(w, r, &req) {
		return
	}
	estimate, err := s.app.Monitor.Estimate(r.Context(), req)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, estimate)
}

func (s *Server) handleGenerateHook(w http.ResponseWriter, r *http.Request) {
	var req models.HookRequest
	if !decodePayload(w, r, &req) {
		return
	}
	hook, err := s.app.Monitor.GenerateHook(r.Context(), req)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, hook)
}

func (s *Server) handleGenerateScript(w http.ResponseWriter, r *http.Request) {
	var req models.ScriptGenerateRequest
	if !decodePayload(w, r, &req) {
		return
	}
	script, err := s.app.Monitor.GenerateScript(r.Context(), req)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, script)
}

// The browser PUTs the file bytes to the returned signed URL itself.
func (s *Server) handleAssetSignedURL(w http.ResponseWriter, r *http.Request) {
	var req models.SignedURLRequest
	if !decodePayload(w, r, &req) {
		return
	}
	signed, err := s.app.Monitor.AssetSignedURL(r.Context(), req)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, signed)
}

func (s *Server) handleProductUploadURL(w http.ResponseWriter, r *http.Request) {
	var req models.SignedURLRequest
	if !decodePayload(w, r, &req) {
		return
	}
	signed, err := s.app.Monitor.ProductUploadURL(r.Context(), req)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, signed)
}
