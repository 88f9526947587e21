// It defines the API server, sets up the routes (endpoints)
// using chi, and links them to the handler functions.

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vrsandeep/ugc-console/internal/core"
)

// Server holds the dependencies for our API.
type Server struct {
	app *core.App
}

// NewServer creates a new Server instance.
func NewServer(app *core.App) *Server {
	return &Server{app: app}
}

// Router sets up and returns the main router for the application.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)    // Logs requests to the console
	r.Use(middleware.Recoverer) // Recovers from panics
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(CORSMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleGetVersion)
		r.Get("/health", s.handleHealth)

		// Derived views, served from the polled snapshot
		r.Get("/activity", s.handleGetActivity)
		r.Get("/campaigns", s.handleGetCampaigns)
		r.Get("/notifications", s.handleGetNotifications)
		r.Get("/dashboard", s.handleGetDashboard)
		r.Get("/jobs", s.handleListJobs)
		r.Get("/videos", s.handleListVideos)

		// Poll task status and history
		r.Get("/polls/status", s.handleGetPollStatus)
		r.Get("/polls/history", s.handleGetPollHistory)
		r.Post("/polls/{name}/run", s.handleRunPoll)

		// Generation
		r.Post("/jobs", s.handleCreateJob)
		r.Post("/jobs/bulk", s.handleLaunchCampaign)
		r.Post("/estimate", s.handleEstimate)
		r.Post("/ai/hook", s.handleGenerateHook)
		r.Post("/scripts/generate", s.handleGenerateScript)
		r.Post("/assets/signed-url", s.handleAssetSignedURL)

		// Library
		r.Get("/influencers", s.handleListInfluencers)
		r.Post("/influencers", s.handleCreateInfluencer)
		r.Put("/influencers/{id}", s.handleUpdateInfluencer)
		r.Delete("/influencers/{id}", s.handleDeleteInfluencer)
		r.Get("/scripts", s.handleListScripts)
		r.Post("/scripts", s.handleCreateScript)
		r.Delete("/scripts/{id}", s.handleDeleteScript)
		r.Get("/app-clips", s.handleListAppClips)
		r.Post("/app-clips", s.handleCreateAppClip)
		r.Delete("/app-clips/{id}", s.handleDeleteAppClip)
		r.Get("/products", s.handleListProducts)
		r.Post("/products", s.handleCreateProduct)
		r.Post("/products/upload", s.handleProductUploadURL)
	})

	// WebSocket route
	r.Get("/ws/updates", func(w http.ResponseWriter, r *http.Request) {
		s.app.WsHub.ServeWs(w, r)
	})

	return r
}
