package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// JobStatus is the backend's lifecycle state for a video generation job.
type JobStatus string

const (
	JobPending    JobStatus = "pending"
	JobProcessing JobStatus = "processing"
	JobSuccess    JobStatus = "success"
	JobFailed     JobStatus = "failed"
)

// Done reports whether the job has reached a terminal state.
func (s JobStatus) Done() bool {
	return s == JobSuccess || s == JobFailed
}

// Job mirrors a row returned by GET /jobs. Fields the console never reads
// are dropped on decode.
type Job struct {
	ID             string    `json:"id"`
	Status         JobStatus `json:"status"`
	Progress       int       `json:"progress"`
	CreatedAt      Timestamp `json:"created_at"`
	UpdatedAt      Timestamp `json:"updated_at"`
	CampaignName   string    `json:"campaign_name,omitempty"`
	InfluencerID   string    `json:"influencer_id,omitempty"`
	ScriptID       string    `json:"script_id,omitempty"`
	AppClipID      string    `json:"app_clip_id,omitempty"`
	ModelAPI       string    `json:"model_api,omitempty"`
	FinalVideoURL  string    `json:"final_video_url,omitempty"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	CostVideo      *float64  `json:"cost_video,omitempty"`
	CostVoice      *float64  `json:"cost_voice,omitempty"`
	CostMusic      *float64  `json:"cost_music,omitempty"`
	CostProcessing *float64  `json:"cost_processing,omitempty"`
	TotalCost      *float64  `json:"total_cost,omitempty"`
}

// EffectiveProgress is the stored progress while the job is in flight and
// 100 once it has finished, whichever way it finished.
func (j Job) EffectiveProgress() int {
	if j.Status.Done() {
		return 100
	}
	if j.Progress < 0 {
		return 0
	}
	if j.Progress > 100 {
		return 100
	}
	return j.Progress
}

// ShortID is the first six characters of the job id, used in messages.
func (j Job) ShortID() string {
	r := []rune(j.ID)
	if len(r) <= 6 {
		return j.ID
	}
	return string(r[:6])
}

// timestampLayouts covers what the backend emits: Postgres timestamptz
// strings with or without an offset and with optional fractional seconds.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// Timestamp is a time.Time that tolerates the backend's ISO variants and
// decodes null or "" to the zero time. Strings without an offset are read
// as UTC, which is what the backend's database stores.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.UTC().Format(time.RFC3339Nano))
}

// CampaignGroup is a derived bucket of jobs sharing a campaign name.
type CampaignGroup struct {
	Name       string `json:"name"`
	Jobs       []Job  `json:"jobs"`
	Pending    int    `json:"pending"`
	Processing int    `json:"processing"`
	Success    int    `json:"success"`
	Failed     int    `json:"failed"`
	Total      int    `json:"total"`
}

// Notification is a derived, never persisted status message for one job.
type Notification struct {
	JobID   string    `json:"job_id"`
	Status  JobStatus `json:"status"`
	Message string    `json:"message"`
}
