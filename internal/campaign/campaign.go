// Package campaign groups a flat job list by campaign name.
package campaign

import (
	"math"

	"github.com/vrsandeep/ugc-console/internal/models"
)

// SingleGeneration is the group name for jobs launched outside a campaign.
const SingleGeneration = "Single Generation"

// Group buckets jobs by campaign name in one pass. Groups are returned in
// the order their name first appears in jobs.
func Group(jobs []models.Job) []models.CampaignGroup {
	var groups []models.CampaignGroup
	index := make(map[string]int)

	for _, job := range jobs {
		name := job.CampaignName
		if name == "" {
			name = SingleGeneration
		}
		i, ok := index[name]
		if !ok {
			i = len(groups)
			index[name] = i
			groups = append(groups, models.CampaignGroup{Name: name})
		}

		g := &groups[i]
		g.Jobs = append(g.Jobs, job)
		g.Total++
		switch job.Status {
		case models.JobPending:
			g.Pending++
		case models.JobProcessing:
			g.Processing++
		case models.JobSuccess:
			g.Success++
		case models.JobFailed:
			g.Failed++
		}
	}
	return groups
}

// PercentComplete is the rounded share of successful jobs in g, 0 for an
// empty group.
func PercentComplete(g models.CampaignGroup) int {
	return Percent(g.Success, g.Total)
}

// Percent returns round(part/total*100), or 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
