package monitor

import (
	"time"

	"github.com/vrsandeep/ugc-console/internal/activity"
	"github.com/vrsandeep/ugc-console/internal/campaign"
	"github.com/vrsandeep/ugc-console/internal/models"
	"github.com/vrsandeep/ugc-console/internal/notify"
)

// JobRow is a job decorated for the activity table.
type JobRow struct {
	models.Job
	InfluencerName  string `json:"influencer_name,omitempty"`
	DisplayProgress int    `json:"display_progress"`
	Duration        string `json:"duration"`
	Troubleshooting string `json:"troubleshooting,omitempty"`
}

// CampaignView is a campaign group with its completion percentage.
type CampaignView struct {
	models.CampaignGroup
	PercentComplete int `json:"percent_complete"`
}

type ActivityView struct {
	Summary   models.ActivitySummary `json:"summary"`
	CostStats *models.CostStats      `json:"cost_stats,omitempty"`
	Jobs      []JobRow               `json:"jobs"`
	Campaigns []CampaignView         `json:"campaigns,omitempty"`
	Error     string                 `json:"error,omitempty"`
}

type DashboardView struct {
	Stats       *models.Stats        `json:"stats,omitempty"`
	CostStats   *models.CostStats    `json:"cost_stats,omitempty"`
	Metrics     *models.Metrics      `json:"metrics,omitempty"`
	Errors      map[string]string    `json:"errors"`
	RefreshedAt map[string]time.Time `json:"refreshed_at"`
}

// Jobs returns the current job snapshot.
func (m *Monitor) Jobs() []models.Job {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]models.Job{}, m.jobs...)
}

// Activity recomputes the activity view from the current snapshot.
func (m *Monitor) Activity(groupByCampaign bool) ActivityView {
	m.mu.RLock()
	jobs := m.jobs
	names := m.influencerNames()
	view := ActivityView{
		CostStats: m.costStats,
		Error:     m.lastError[TaskJobs],
	}
	m.mu.RUnlock()

	// jobs is replaced, never mutated, so it is safe to read unlocked.
	view.Summary = activity.Summarize(jobs)
	view.Jobs = make([]JobRow, 0, len(jobs))
	for _, j := range jobs {
		row := JobRow{
			Job:             j,
			InfluencerName:  names[j.InfluencerID],
			DisplayProgress: j.EffectiveProgress(),
			Duration:        activity.DurationLabel(j),
		}
		if j.Status == models.JobFailed && j.ErrorMessage != "" {
			row.Troubleshooting = activity.Troubleshoot(j.ErrorMessage)
		}
		view.Jobs = append(view.Jobs, row)
	}
	if groupByCampaign {
		view.Campaigns = campaignViews(jobs)
	}
	return view
}

// Videos lists finished videos from the job snapshot, decorated like the
// activity rows.
func (m *Monitor) Videos(f activity.VideoFilter) []JobRow {
	m.mu.RLock()
	jobs := m.jobs
	names := m.influencerNames()
	m.mu.RUnlock()

	videos := activity.Videos(jobs, names, f)
	rows := make([]JobRow, 0, len(videos))
	for _, j := range videos {
		rows = append(rows, JobRow{
			Job:             j,
			InfluencerName:  names[j.InfluencerID],
			DisplayProgress: j.EffectiveProgress(),
			Duration:        activity.DurationLabel(j),
		})
	}
	return rows
}

// influencerNames must be called with m.mu held.
func (m *Monitor) influencerNames() map[string]string {
	names := make(map[string]string, len(m.influencers))
	for _, inf := range m.influencers {
		names[inf.ID] = inf.Name
	}
	return names
}

// Campaigns groups the current job snapshot by campaign.
func (m *Monitor) Campaigns() []CampaignView {
	m.mu.RLock()
	jobs := m.jobs
	m.mu.RUnlock()
	return campaignViews(jobs)
}

func campaignViews(jobs []models.Job) []CampaignView {
	groups := campaign.Group(jobs)
	views := make([]CampaignView, 0, len(groups))
	for _, g := range groups {
		views = append(views, CampaignView{CampaignGroup: g, PercentComplete: campaign.PercentComplete(g)})
	}
	return views
}

// Notifications derives messages for recently finished jobs as of now.
func (m *Monitor) Notifications(now time.Time) []models.Notification {
	m.mu.RLock()
	recent := m.recent
	m.mu.RUnlock()

	out := notify.Derive(recent, now)
	if out == nil {
		out = []models.Notification{}
	}
	return out
}

func (m *Monitor) Dashboard() DashboardView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	view := DashboardView{
		Stats:       m.stats,
		CostStats:   m.costStats,
		Metrics:     m.metrics,
		Errors:      make(map[string]string, len(m.lastError)),
		RefreshedAt: make(map[string]time.Time, len(m.refreshedAt)),
	}
	for k, v := range m.lastError {
		view.Errors[k] = v
	}
	for k, v := range m.refreshedAt {
		view.RefreshedAt[k] = v
	}
	return view
}
