package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vrsandeep/ugc-console/internal/models"
)

func (s *Server) handleListInfluencers(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.Monitor.ListInfluencers(r.Context())
	respondWithList(w, list, err)
}

func (s *Server) handleCreateInfluencer(w http.ResponseWriter, r *http.Request) {
	var in models.Influencer
	if !decodePayload(w, r, &in) {
		return
	}
	created, err := s.app.Monitor.CreateInfluencer(r.Context(), in)
	respondWithCreated(w, created, err)
}

func (s *Server) handleUpdateInfluencer(w http.ResponseWriter, r *http.Request) {
	var in models.Influencer
	if !decodePayload(w, r, &in) {
		return
	}
	updated, err := s.app.Monitor.UpdateInfluencer(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteInfluencer(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.app.Monitor.DeleteInfluencer)
}

func (s *Server) handleListScripts(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.Monitor.ListScripts(r.Context())
	respondWithList(w, list, err)
}

func (s *Server) handleCreateScript(w http.ResponseWriter, r *http.Request) {
	var script models.Script
	if !decodePayload(w, r, &script) {
		return
	}
	created, err := s.app.Monitor.CreateScript(r.Context(), script)
	respondWithCreated(w, created, err)
}

func (s *Server) handleDeleteScript(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.app.Monitor.DeleteScript)
}

func (s *Server) handleListAppClips(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.Monitor.ListAppClips(r.Context())
	respondWithList(w, list, err)
}

func (s *Server) handleCreateAppClip(w http.ResponseWriter, r *http.Request) {
	var clip models.AppClip
	if !decodePayload(w, r, &clip) {
		return
	}
	created, err := s.app.Monitor.CreateAppClip(r.Context(), clip)
	respondWithCreated(w, created, err)
}

func (s *Server) handleDeleteAppClip(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, s.app.Monitor.DeleteAppClip)
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.Monitor.ListProducts(r.Context())
	respondWithList(w, list, err)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var p models.Product
	if !decodePayload(w, r, &p) {
		return
	}
	created, err := s.app.Monitor.CreateProduct(r.Context(), p)
	respondWithCreated(w, created, err)
}

func (s *Server) deleteByID(w http.ResponseWriter, r *http.Request, del func(context.Context, string) error) {
	if err := del(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithActionError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondWithList never sends null for an empty library.
func respondWithList[T any](w http.ResponseWriter, list []T, err error) {
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	if list == nil {
		list = []T{}
	}
	RespondWithJSON(w, http.StatusOK, list)
}

func respondWithCreated[T any](w http.ResponseWriter, created *T, err error) {
	if err != nil {
		respondWithActionError(w, err)
		return
	}
	RespondWithJSON(w, http.StatusCreated, created)
}
