// Package activity derives the summary figures shown on the activity view.
package activity

import (
	"fmt"
	"math"
	"strings"

	"github.com/vrsandeep/ugc-console/internal/campaign"
	"github.com/vrsandeep/ugc-console/internal/models"
)

// Summarize computes the activity header figures from a job snapshot.
func Summarize(jobs []models.Job) models.ActivitySummary {
	s := models.ActivitySummary{TotalJobs: len(jobs)}
	for _, j := range jobs {
		switch j.Status {
		case models.JobSuccess:
			s.SuccessJobs++
		case models.JobFailed:
			s.FailedJobs++
		case models.JobPending, models.JobProcessing:
			s.ActiveQueue++
		}
		if j.TotalCost != nil {
			s.TotalCost += *j.TotalCost
		}
	}
	s.SuccessRate = campaign.Percent(s.SuccessJobs, s.TotalJobs)
	s.AvgDurationMinutes = AverageDurationMinutes(jobs)
	return s
}

// SuccessRate is round(success/total*100), 0 for an empty list.
func SuccessRate(jobs []models.Job) int {
	success := 0
	for _, j := range jobs {
		if j.Status == models.JobSuccess {
			success++
		}
	}
	return campaign.Percent(success, len(jobs))
}

// AverageDurationMinutes is the rounded mean of updated_at - created_at over
// successful jobs that carry both timestamps. No such jobs yields 0.
func AverageDurationMinutes(jobs []models.Job) int {
	var sum float64
	n := 0
	for _, j := range jobs {
		if !hasDuration(j) {
			continue
		}
		sum += j.UpdatedAt.Sub(j.CreatedAt.Time).Minutes()
		n++
	}
	if n == 0 {
		return 0
	}
	return int(math.Round(sum / float64(n)))
}

// DurationLabel formats a single job's generation time for a table cell.
func DurationLabel(j models.Job) string {
	if !hasDuration(j) {
		return "—"
	}
	mins := int(math.Round(j.UpdatedAt.Sub(j.CreatedAt.Time).Minutes()))
	if mins <= 0 {
		return "<1m"
	}
	return fmt.Sprintf("%dm", mins)
}

func hasDuration(j models.Job) bool {
	return j.Status == models.JobSuccess && !j.CreatedAt.IsZero() && !j.UpdatedAt.IsZero()
}

type hint struct {
	needles []string
	text    string
}

var hints = []hint{
	{[]string{"missingschema", "invalid url"}, "The reference image URL is invalid. Check the influencer's image URL in the Library."},
	{[]string{"timeout", "timed out"}, "The AI API took too long to respond. This is usually temporary. Try again in a few minutes."},
	{[]string{"nonetype", "'none'"}, "A required field was missing. Check that the influencer, script, and app clip are all properly configured."},
	{[]string{"bucket", "storage"}, "A storage bucket is misconfigured. Check the storage configuration."},
	{[]string{"rate limit", "429"}, "You've hit an API rate limit. Wait a few minutes and try again."},
	{[]string{"auth", "403", "401"}, "Authentication error. Check the API keys in the backend configuration."},
}

// Troubleshoot maps a job's error text to a suggested fix.
func Troubleshoot(errText string) string {
	lower := strings.ToLower(errText)
	for _, h := range hints {
		for _, n := range h.needles {
			if strings.Contains(lower, n) {
				return h.text
			}
		}
	}
	return "An unexpected error occurred. Check the full error message for details."
}
