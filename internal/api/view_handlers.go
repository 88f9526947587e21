package api

import (
	"net/http"
	"time"

	"github.com/vrsandeep/ugc-console/internal/activity"
)

// handleGetActivity serves the activity table. ?group=campaign adds the
// campaign groups computed from the same snapshot.
func (s *Server) handleGetActivity(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group") == "campaign"
	RespondWithJSON(w, http.StatusOK, s.app.Monitor.Activity(group))
}

func (s *Server) handleGetCampaigns(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Monitor.Campaigns())
}

func (s *Server) handleGetNotifications(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Monitor.Notifications(time.Now()))
}

func (s *Server) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Monitor.Dashboard())
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, s.app.Monitor.Jobs())
}

// handleListVideos serves the finished-video library. ?q= searches influencer
// name, campaign, model and job id; ?influencer= narrows to one influencer.
func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	RespondWithJSON(w, http.StatusOK, s.app.Monitor.Videos(activity.VideoFilter{
		Query:        q.Get("q"),
		InfluencerID: q.Get("influencer"),
	}))
}
