package models

import "time"

// PollRun is the audit record of one polling task execution.
type PollRun struct {
	ID        string        `json:"id"`
	Task      string        `json:"task"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
	OK        bool          `json:"ok"`
	Error     string        `json:"error,omitempty"`
}
