package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/google/uuid"

	"github.com/vrsandeep/ugc-console/internal/models"
)

var (
	ErrUnknownTask = errors.New("unknown poll task")
	ErrStopped     = errors.New("poller is stopped")
)

// Task performs one full refresh. ctx is cancelled when the manager stops.
type Task func(ctx context.Context) error

// Recorder receives every finished execution. The store implements it.
type Recorder interface {
	RecordPollRun(run models.PollRun) error
}

type TaskStatus struct {
	Name      string        `json:"name"`
	Interval  time.Duration `json:"interval_ns"`
	Status    string        `json:"status"` // "idle", "running", "success", "failed"
	Message   string        `json:"message"`
	Runs      int           `json:"runs"`
	StartTime time.Time     `json:"start_time,omitempty"`
	EndTime   time.Time     `json:"end_time,omitempty"`
}

type task struct {
	name     string
	interval time.Duration
	fn       Task
	status   TaskStatus
}

// Manager owns every polling timer in the process. Tasks run once as soon
// as Start is called and then on their interval until Stop.
type Manager struct {
	mu        sync.Mutex
	scheduler *gocron.Scheduler
	tasks     map[string]*task
	order     []string
	recorder  Recorder
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	started   bool
	stopped   bool
}

func NewManager(recorder Recorder) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scheduler: gocron.NewScheduler(time.UTC),
		tasks:     make(map[string]*task),
		recorder:  recorder,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Register adds a named task. It must be called before Start.
func (m *Manager) Register(name string, interval time.Duration, fn Task) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return fmt.Errorf("poller already started, cannot register '%s'", name)
	}
	if interval <= 0 {
		return fmt.Errorf("task '%s' needs a positive interval, got %s", name, interval)
	}
	if _, exists := m.tasks[name]; exists {
		return fmt.Errorf("task '%s' is already registered", name)
	}
	m.tasks[name] = &task{
		name:     name,
		interval: interval,
		fn:       fn,
		status:   TaskStatus{Name: name, Interval: interval, Status: "idle"},
	}
	m.order = append(m.order, name)
	return nil
}

// Start fires every task immediately and schedules the repeats.
// Overlapping executions of the same task are allowed.
func (m *Manager) Start() error {
	m.mu.Lock()
	if m.started || m.stopped {
		m.mu.Unlock()
		return fmt.Errorf("poller cannot be started twice")
	}
	m.started = true
	tasks := make([]*task, 0, len(m.order))
	for _, name := range m.order {
		tasks = append(tasks, m.tasks[name])
	}
	m.mu.Unlock()

	for _, t := range tasks {
		if err := m.schedule(t.name, t.interval); err != nil {
			m.Stop()
			return err
		}
	}

	log.Printf("Starting poller with %d tasks...", len(tasks))
	m.scheduler.StartAsync()
	for _, t := range tasks {
		go m.execute(t.name)
	}
	return nil
}

func (m *Manager) schedule(name string, interval time.Duration) error {
	_, err := m.scheduler.Every(interval).Tag(name).WaitForSchedule().Do(func() {
		m.execute(name)
	})
	if err != nil {
		return fmt.Errorf("error scheduling '%s': %w", name, err)
	}
	log.Printf("Scheduling poll task '%s' every %s.", name, interval)
	return nil
}

// Reschedule changes a running task's interval.
func (m *Manager) Reschedule(name string, interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("task '%s' needs a positive interval, got %s", name, interval)
	}
	m.mu.Lock()
	t, ok := m.tasks[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w '%s'", ErrUnknownTask, name)
	}
	if t.interval == interval {
		m.mu.Unlock()
		return nil
	}
	t.interval = interval
	t.status.Interval = interval
	started := m.started && !m.stopped
	m.mu.Unlock()

	if !started {
		return nil
	}
	if err := m.scheduler.RemoveByTag(name); err != nil {
		return fmt.Errorf("could not unschedule '%s': %w", name, err)
	}
	return m.schedule(name, interval)
}

// RunNow triggers an out-of-band execution, e.g. after a user action.
func (m *Manager) RunNow(name string) error {
	m.mu.Lock()
	_, ok := m.tasks[name]
	stopped := m.stopped
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w '%s'", ErrUnknownTask, name)
	}
	if stopped {
		return ErrStopped
	}
	go m.execute(name)
	return nil
}

// Stop cancels in-flight fetches, stops the timers and waits for running
// executions to return. It is safe to call more than once.
func (m *Manager) Stop() {
	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		return
	}
	m.stopped = true
	m.mu.Unlock()

	m.cancel()
	m.scheduler.Stop()
	m.wg.Wait()
	log.Println("Poller stopped.")
}

func (m *Manager) execute(name string) {
	m.mu.Lock()
	t, ok := m.tasks[name]
	if !ok || m.stopped {
		m.mu.Unlock()
		return
	}
	m.wg.Add(1)
	defer m.wg.Done()
	ctx := m.ctx
	fn := t.fn
	started := time.Now()
	t.status.Status = "running"
	t.status.StartTime = started
	t.status.Message = "Polling..."
	m.mu.Unlock()

	err := safeRun(ctx, fn)
	elapsed := time.Since(started)

	m.mu.Lock()
	t.status.Runs++
	t.status.EndTime = time.Now()
	if err != nil {
		t.status.Status = "failed"
		t.status.Message = err.Error()
	} else {
		t.status.Status = "success"
		t.status.Message = fmt.Sprintf("Refreshed in %s.", elapsed.Round(time.Millisecond))
	}
	m.mu.Unlock()

	// Executions cut short by Stop are not worth keeping.
	if ctx.Err() != nil || m.recorder == nil {
		return
	}
	run := models.PollRun{
		ID:        uuid.NewString(),
		Task:      name,
		StartedAt: started,
		Duration:  elapsed,
		OK:        err == nil,
	}
	if err != nil {
		run.Error = err.Error()
	}
	if rerr := m.recorder.RecordPollRun(run); rerr != nil {
		log.Printf("Warning: could not record poll run for '%s': %v", name, rerr)
	}
}

func safeRun(ctx context.Context, fn Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v", r)
		}
	}()
	return fn(ctx)
}

// Status returns a copy of every task's status in registration order.
func (m *Manager) Status() []TaskStatus {
	m.mu.Lock()
	defer m.mu.Unlock()

	statuses := make([]TaskStatus, 0, len(m.order))
	for _, name := range m.order {
		statuses = append(statuses, m.tasks[name].status)
	}
	return statuses
}
