package models

// Stats is the GET /stats payload shown on the campaigns dashboard.
type Stats struct {
	TotalJobs   int `json:"total_jobs"`
	Pending     int `json:"pending"`
	Processing  int `json:"processing"`
	Success     int `json:"success"`
	Failed      int `json:"failed"`
	Influencers int `json:"influencers"`
	Scripts     int `json:"scripts"`
	AppClips    int `json:"app_clips"`
}

type CostStats struct {
	TotalSpendMonth float64 `json:"total_spend_month"`
	TotalSpendAll   float64 `json:"total_spend_all"`
}

// Metrics is the home page summary from GET /metrics.
type Metrics struct {
	VideosGenerated int     `json:"videos_generated"`
	CreditsSpent    float64 `json:"credits_spent"`
	Status          string  `json:"status"`
}

type ActivitySummary struct {
	TotalJobs          int     `json:"total_jobs"`
	SuccessJobs        int     `json:"success_jobs"`
	FailedJobs         int     `json:"failed_jobs"`
	ActiveQueue        int     `json:"active_queue"` // pending + processing
	SuccessRate        int     `json:"success_rate"`
	AvgDurationMinutes int     `json:"avg_duration_minutes"`
	TotalCost          float64 `json:"total_cost"`
}
