// Command ugc-cli fetches the backend once and prints the same derived
// views the console serves: campaign progress, recent notifications and
// the activity summary.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vrsandeep/ugc-console/internal/activity"
	"github.com/vrsandeep/ugc-console/internal/campaign"
	"github.com/vrsandeep/ugc-console/internal/client"
	"github.com/vrsandeep/ugc-console/internal/config"
	"github.com/vrsandeep/ugc-console/internal/models"
	"github.com/vrsandeep/ugc-console/internal/notify"
)

func main() {
	// Load configuration from config.yml
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	baseURL := flag.String("backend", cfg.Backend.BaseURL, "UGC Engine backend base URL")
	limit := flag.Int("limit", cfg.Polling.JobsLimit, "number of recent jobs to fetch")
	recentLimit := flag.Int("notifications-limit", cfg.Polling.NotificationsLimit, "number of newest jobs scanned for notifications")
	timeout := flag.Duration("timeout", 30*time.Second, "overall request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	rep, err := load(ctx, client.New(*baseURL), *limit, *recentLimit)
	if err != nil {
		log.Fatalf("Could not reach backend at %s: %s", *baseURL, client.Message(err))
	}

	printCampaigns(rep.jobs)
	printNotifications(rep.recent)
	printSummary(rep.jobs, rep.costs)
}

// report is one snapshot of the backend. recent is fetched with its own,
// smaller limit so notifications match what the console shows.
type report struct {
	jobs   []models.Job
	recent []models.Job
	costs  *models.CostStats
}

func load(ctx context.Context, backend *client.Client, jobsLimit, recentLimit int) (*report, error) {
	rep := &report{}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rep.jobs, err = backend.ListJobs(gctx, jobsLimit)
		return err
	})
	g.Go(func() error {
		var err error
		rep.recent, err = backend.ListJobs(gctx, recentLimit)
		return err
	})
	g.Go(func() error {
		var err error
		rep.costs, err = backend.CostStats(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

func printCampaigns(jobs []models.Job) {
	fmt.Println("Campaigns")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTOTAL\tPENDING\tPROCESSING\tSUCCESS\tFAILED\tDONE")
	for _, g := range campaign.Group(jobs) {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d%%\n",
			g.Name, g.Total, g.Pending, g.Processing, g.Success, g.Failed, campaign.PercentComplete(g))
	}
	w.Flush()
	fmt.Println()
}

func printNotifications(jobs []models.Job) {
	notes := notify.Derive(jobs, time.Now())
	fmt.Printf("Notifications (%d in the last %s)\n", len(notes), notify.Window)
	for _, n := range notes {
		fmt.Printf("  [%s] %s\n", n.Status, n.Message)
	}
	fmt.Println()
}

func printSummary(jobs []models.Job, costs *models.CostStats) {
	s := activity.Summarize(jobs)
	fmt.Println("Activity")
	fmt.Printf("  Jobs:          %d (%d succeeded, %d failed)\n", s.TotalJobs, s.SuccessJobs, s.FailedJobs)
	fmt.Printf("  Success rate:  %d%%\n", s.SuccessRate)
	fmt.Printf("  Avg duration:  %dm\n", s.AvgDurationMinutes)
	fmt.Printf("  Listed cost:   $%.2f\n", s.TotalCost)
	if costs != nil {
		fmt.Printf("  Spend (month): $%.2f\n", costs.TotalSpendMonth)
		fmt.Printf("  Spend (all):   $%.2f\n", costs.TotalSpendAll)
	}
}
