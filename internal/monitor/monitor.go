// Package monitor keeps the console's last-known-good snapshot of the
// backend and derives every view from it.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vrsandeep/ugc-console/internal/client"
	"github.com/vrsandeep/ugc-console/internal/config"
	"github.com/vrsandeep/ugc-console/internal/models"
	"github.com/vrsandeep/ugc-console/internal/poller"
)

// Poll task names. They double as websocket event types.
const (
	TaskJobs          = "jobs"
	TaskStats         = "stats"
	TaskNotifications = "notifications"
	TaskCosts         = "costs"
	TaskMetrics       = "metrics"
	TaskHistoryPrune  = "history-prune"
)

const pruneInterval = time.Hour

// Backend is the part of the backend API the monitor needs.
// *client.Client implements it.
type Backend interface {
	ListJobs(ctx context.Context, limit int) ([]models.Job, error)
	CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error)
	CreateBulkJobs(ctx context.Context, req models.BulkJobRequest) (*models.BulkJobResult, error)
	Stats(ctx context.Context) (*models.Stats, error)
	CostStats(ctx context.Context) (*models.CostStats, error)
	Metrics(ctx context.Context) (*models.Metrics, error)
	Estimate(ctx context.Context, req models.EstimateRequest) (*models.CostEstimate, error)
	GenerateHook(ctx context.Context, req models.HookRequest) (*models.Hook, error)
	GenerateScript(ctx context.Context, req models.ScriptGenerateRequest) (*models.GeneratedScript, error)
	AssetSignedURL(ctx context.Context, req models.SignedURLRequest) (*models.SignedURL, error)
	ProductUploadURL(ctx context.Context, req models.SignedURLRequest) (*models.SignedURL, error)
	ListInfluencers(ctx context.Context) ([]models.Influencer, error)
	CreateInfluencer(ctx context.Context, in models.Influencer) (*models.Influencer, error)
	UpdateInfluencer(ctx context.Context, id string, in models.Influencer) (*models.Influencer, error)
	DeleteInfluencer(ctx context.Context, id string) error
	ListScripts(ctx context.Context) ([]models.Script, error)
	CreateScript(ctx context.Context, s models.Script) (*models.Script, error)
	DeleteScript(ctx context.Context, id string) error
	ListAppClips(ctx context.Context) ([]models.AppClip, error)
	CreateAppClip(ctx context.Context, clip models.AppClip) (*models.AppClip, error)
	DeleteAppClip(ctx context.Context, id string) error
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) (*models.Product, error)
}

// Publisher is told which collection just changed.
type Publisher interface {
	Publish(eventType string)
}

// HistoryPruner trims the poll history. *store.Store implements it.
type HistoryPruner interface {
	PrunePollRuns(cutoff time.Time) (int64, error)
}

type Options struct {
	Polling   config.PollingConfig
	Retention time.Duration
}

// Monitor owns the snapshot. Each poll task replaces its part wholesale;
// overlapping fetches are not sequenced, the last one to finish wins.
type Monitor struct {
	backend Backend
	poller  *poller.Manager
	pub     Publisher
	pruner  HistoryPruner

	mu          sync.RWMutex
	opts        Options
	jobs        []models.Job
	influencers []models.Influencer
	recent      []models.Job
	stats       *models.Stats
	costStats   *models.CostStats
	metrics     *models.Metrics
	lastError   map[string]string
	refreshedAt map[string]time.Time
}

// New registers the poll tasks on pm. pub and pruner may be nil.
func New(backend Backend, pm *poller.Manager, pub Publisher, pruner HistoryPruner, opts Options) (*Monitor, error) {
	m := &Monitor{
		backend:     backend,
		poller:      pm,
		pub:         pub,
		pruner:      pruner,
		opts:        opts,
		lastError:   make(map[string]string),
		refreshedAt: make(map[string]time.Time),
	}

	p := opts.Polling
	tasks := []struct {
		name     string
		interval time.Duration
		fn       poller.Task
	}{
		{TaskJobs, p.JobsInterval, m.refreshJobs},
		{TaskStats, p.StatsInterval, m.refreshStats},
		{TaskNotifications, p.NotificationsInterval, m.refreshRecent},
		{TaskCosts, p.MetricsInterval, m.refreshCosts},
		{TaskMetrics, p.MetricsInterval, m.refreshMetrics},
	}
	for _, t := range tasks {
		if err := pm.Register(t.name, t.interval, t.fn); err != nil {
			return nil, err
		}
	}
	if pruner != nil && opts.Retention > 0 {
		if err := pm.Register(TaskHistoryPrune, pruneInterval, m.pruneHistory); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Start begins polling. Every task fetches immediately.
func (m *Monitor) Start() error {
	return m.poller.Start()
}

// Stop cancels every poll timer and in-flight fetch.
func (m *Monitor) Stop() {
	m.poller.Stop()
}

// Poller exposes the task manager for status reporting.
func (m *Monitor) Poller() *poller.Manager {
	return m.poller
}

// ApplyPolling hot-applies new intervals and limits.
func (m *Monitor) ApplyPolling(p config.PollingConfig) {
	m.mu.Lock()
	m.opts.Polling = p
	m.mu.Unlock()

	for name, interval := range map[string]time.Duration{
		TaskJobs:          p.JobsInterval,
		TaskStats:         p.StatsInterval,
		TaskNotifications: p.NotificationsInterval,
		TaskCosts:         p.MetricsInterval,
		TaskMetrics:       p.MetricsInterval,
	} {
		if err := m.poller.Reschedule(name, interval); err != nil {
			log.Printf("Warning: could not reschedule '%s': %v", name, err)
		}
	}
}

func (m *Monitor) limits() (jobs, recent int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opts.Polling.JobsLimit, m.opts.Polling.NotificationsLimit
}

// refreshJobs fetches jobs and influencers together; both must succeed for
// either to replace the snapshot.
func (m *Monitor) refreshJobs(ctx context.Context) error {
	limit, _ := m.limits()
	var jobs []models.Job
	var influencers []models.Influencer

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		jobs, err = m.backend.ListJobs(gctx, limit)
		return err
	})
	g.Go(func() error {
		var err error
		influencers, err = m.backend.ListInfluencers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return m.fail(TaskJobs, err)
	}

	m.mu.Lock()
	m.jobs = jobs
	m.influencers = influencers
	m.markRefreshed(TaskJobs)
	m.mu.Unlock()
	m.publish(TaskJobs)
	return nil
}

func (m *Monitor) refreshRecent(ctx context.Context) error {
	_, limit := m.limits()
	jobs, err := m.backend.ListJobs(ctx, limit)
	if err != nil {
		return m.fail(TaskNotifications, err)
	}
	m.mu.Lock()
	m.recent = jobs
	m.markRefreshed(TaskNotifications)
	m.mu.Unlock()
	m.publish(TaskNotifications)
	return nil
}

func (m *Monitor) refreshStats(ctx context.Context) error {
	stats, err := m.backend.Stats(ctx)
	if err != nil {
		return m.fail(TaskStats, err)
	}
	m.mu.Lock()
	m.stats = stats
	m.markRefreshed(TaskStats)
	m.mu.Unlock()
	m.publish(TaskStats)
	return nil
}

func (m *Monitor) refreshCosts(ctx context.Context) error {
	costs, err := m.backend.CostStats(ctx)
	if err != nil {
		return m.fail(TaskCosts, err)
	}
	m.mu.Lock()
	m.costStats = costs
	m.markRefreshed(TaskCosts)
	m.mu.Unlock()
	m.publish(TaskCosts)
	return nil
}

func (m *Monitor) refreshMetrics(ctx context.Context) error {
	metrics, err := m.backend.Metrics(ctx)
	if err != nil {
		return m.fail(TaskMetrics, err)
	}
	m.mu.Lock()
	m.metrics = metrics
	m.markRefreshed(TaskMetrics)
	m.mu.Unlock()
	m.publish(TaskMetrics)
	return nil
}

func (m *Monitor) pruneHistory(ctx context.Context) error {
	m.mu.RLock()
	retention := m.opts.Retention
	m.mu.RUnlock()

	removed, err := m.pruner.PrunePollRuns(time.Now().Add(-retention))
	if err != nil {
		return fmt.Errorf("prune poll history: %w", err)
	}
	if removed > 0 {
		log.Printf("Pruned %d poll history rows older than %s.", removed, retention)
	}
	return nil
}

// fail records a background poll failure. The previous snapshot stays.
// Fetches aborted by Stop are not failures and leave no error behind.
func (m *Monitor) fail(task string, err error) error {
	if isCancelled(err) {
		return err
	}
	msg := client.Message(err)
	log.Printf("Background poll '%s' failed, keeping last data: %s", task, msg)
	m.mu.Lock()
	m.lastError[task] = msg
	m.mu.Unlock()
	return err
}

// markRefreshed must be called with m.mu held.
func (m *Monitor) markRefreshed(task string) {
	delete(m.lastError, task)
	m.refreshedAt[task] = time.Now().UTC()
}

func (m *Monitor) publish(task string) {
	if m.pub != nil {
		m.pub.Publish(task)
	}
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
