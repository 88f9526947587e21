package activity

import (
	"strings"

	"github.com/vrsandeep/ugc-console/internal/models"
)

// VideoFilter narrows the finished-video library. Zero values match everything.
type VideoFilter struct {
	// Query is matched case-insensitively against the influencer name,
	// campaign, model and job id.
	Query        string
	InfluencerID string
}

// Videos keeps successful jobs that produced a video and match f, in input
// order. names maps influencer ids to display names.
func Videos(jobs []models.Job, names map[string]string, f VideoFilter) []models.Job {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []models.Job{}
	for _, j := range jobs {
		if j.Status != models.JobSuccess || j.FinalVideoURL == "" {
			continue
		}
		if f.InfluencerID != "" && j.InfluencerID != f.InfluencerID {
			continue
		}
		if q != "" && !matchesVideo(j, names[j.InfluencerID], q) {
			continue
		}
		out = append(out, j)
	}
	return out
}

func matchesVideo(j models.Job, influencerName, q string) bool {
	for _, field := range []string{influencerName, j.CampaignName, j.ModelAPI, j.ID} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
