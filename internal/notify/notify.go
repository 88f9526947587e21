// Package notify turns recently finished jobs into short status messages.
package notify

import (
	"fmt"
	"time"

	"github.com/vrsandeep/ugc-console/internal/models"
)

// Window is how far back a finished job still produces a notification.
const Window = time.Hour

// Derive returns one notification per success/failed job created less than
// Window before now, in input order.
//
// The window is anchored on created_at, not on completion time, so a job
// that runs for longer than Window never notifies. This matches the
// dashboard's long-standing behaviour and is kept until the backend exposes
// a completion timestamp.
func Derive(jobs []models.Job, now time.Time) []models.Notification {
	var out []models.Notification
	for _, job := range jobs {
		if !job.Status.Done() || job.CreatedAt.IsZero() {
			continue
		}
		if now.Sub(job.CreatedAt.Time) >= Window {
			continue
		}
		out = append(out, models.Notification{
			JobID:   job.ID,
			Status:  job.Status,
			Message: Message(job),
		})
	}
	return out
}

// Message renders the notification text for a finished job.
func Message(job models.Job) string {
	if job.Status == models.JobSuccess {
		return fmt.Sprintf("Video %s completed!", job.ShortID())
	}
	return fmt.Sprintf("Job %s failed.", job.ShortID())
}
