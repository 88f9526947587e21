// A fake UGC Engine backend shared by the monitor and api tests.

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vrsandeep/ugc-console/internal/models"
)

type failure struct {
	status int
	detail string
}

// FakeBackend serves the subset of the backend API the console uses, from
// in-memory state that tests can change between polls.
type FakeBackend struct {
	Server *httptest.Server

	mu          sync.Mutex
	jobs        []models.Job
	influencers []models.Influencer
	scripts     []models.Script
	appClips    []models.AppClip
	products    []models.Product
	stats       models.Stats
	costStats   models.CostStats
	metrics     models.Metrics
	failures    map[string]failure
	delays      map[string]time.Duration
	calls       map[string]int
	lastBody    map[string]json.RawMessage
	nextID      int
}

func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	f := &FakeBackend{
		failures: make(map[string]failure),
		delays:   make(map[string]time.Duration),
		calls:    make(map[string]int),
		lastBody: make(map[string]json.RawMessage),
		metrics:  models.Metrics{Status: "Online"},
	}

	r := chi.NewRouter()
	r.Use(f.track)
	r.Get("/jobs", f.handleListJobs)
	r.Post("/jobs", f.handleCreateJob)
	r.Post("/jobs/bulk", f.handleBulk)
	r.Get("/stats", func(w http.ResponseWriter, r *http.Request) { f.respond(w, func() any { return f.stats }) })
	r.Get("/stats/costs", func(w http.ResponseWriter, r *http.Request) { f.respond(w, func() any { return f.costStats }) })
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) { f.respond(w, func() any { return f.metrics }) })
	r.Post("/estimate", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.CostEstimate{CostVideo: 0.3, CostVoice: 0.05, TotalCost: 0.35})
	})
	r.Post("/ai/hook", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.Hook{Hook: "Stop scrolling!"})
	})
	signed := func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, models.SignedURL{SignedURL: "https://storage.test/upload?token=x", PublicURL: "https://storage.test/file", Path: "uploads/file"})
	}
	r.Post("/assets/signed-url", signed)
	r.Post("/api/products/upload", signed)
	r.Post("/api/scripts/generate", f.handleGenerateScript)

	r.Get("/influencers", func(w http.ResponseWriter, r *http.Request) { f.respond(w, func() any { return f.influencers }) })
	r.Post("/influencers", func(w http.ResponseWriter, r *http.Request) {
		var in models.Influencer
		f.create(w, r, &in, func(id string) any {
			in.ID = id
			f.influencers = append(f.influencers, in)
			return in
		})
	})
	r.Put("/influencers/{id}", f.handleUpdateInfluencer)
	r.Delete("/influencers/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.remove(w, r, func(id string) bool { return deleteByID(&f.influencers, id, func(i models.Influencer) string { return i.ID }) })
	})
	r.Get("/scripts", func(w http.ResponseWriter, r *http.Request) { f.respond(w, func() any { return f.scripts }) })
	r.Post("/scripts", func(w http.ResponseWriter, r *http.Request) {
		var s models.Script
		f.create(w, r, &s, func(id string) any {
			s.ID = id
			f.scripts = append(f.scripts, s)
			return s
		})
	})
	r.Delete("/scripts/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.remove(w, r, func(id string) bool { return deleteByID(&f.scripts, id, func(s models.Script) string { return s.ID }) })
	})
	r.Get("/app-clips", func(w http.ResponseWriter, r *http.Request) { f.respond(w, func() any { return f.appClips }) })
	r.Post("/app-clips", func(w http.ResponseWriter, r *http.Request) {
		var c models.AppClip
		f.create(w, r, &c, func(id string) any {
			c.ID = id
			f.appClips = append(f.appClips, c)
			return c
		})
	})
	r.Delete("/app-clips/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.remove(w, r, func(id string) bool { return deleteByID(&f.appClips, id, func(c models.AppClip) string { return c.ID }) })
	})
	r.Get("/api/products", func(w http.ResponseWriter, r *http.Request) { f.respond(w, func() any { return f.products }) })
	r.Post("/api/products", func(w http.ResponseWriter, r *http.Request) {
		var p models.Product
		f.create(w, r, &p, func(id string) any {
			p.ID = id
			f.products = append(f.products, p)
			return p
		})
	})

	f.Server = httptest.NewServer(r)
	t.Cleanup(f.Server.Close)
	return f
}

// URL is the base URL to hand to client.New.
func (f *FakeBackend) URL() string { return f.Server.URL }

func (f *FakeBackend) SetJobs(jobs []models.Job) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append([]models.Job(nil), jobs...)
}

func (f *FakeBackend) SetInfluencers(infs []models.Influencer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.influencers = append([]models.Influencer(nil), infs...)
}

func (f *FakeBackend) SetStats(stats models.Stats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats = stats
}

func (f *FakeBackend) SetCostStats(stats models.CostStats) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.costStats = stats
}

// Fail makes every request to path answer with status and {"detail": detail}.
func (f *FakeBackend) Fail(path string, status int, detail string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = failure{status: status, detail: detail}
}

// Delay holds every request to path for d, or until the caller gives up.
func (f *FakeBackend) Delay(path string, d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.delays[path] = d
}

// Heal undoes Fail for path.
func (f *FakeBackend) Heal(path string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.failures, path)
}

// Calls returns how many requests hit "METHOD /path".
func (f *FakeBackend) Calls(methodPath string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[methodPath]
}

// LastBody returns the last JSON body posted to "METHOD /path".
func (f *FakeBackend) LastBody(methodPath string) json.RawMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastBody[methodPath]
}

func (f *FakeBackend) track(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		var body json.RawMessage
		if r.Body != nil && r.Method != http.MethodGet {
			json.NewDecoder(r.Body).Decode(&body)
			r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		f.mu.Lock()
		f.calls[key]++
		if len(body) > 0 {
			f.lastBody[key] = body
		}
		fail, failing := f.failures[r.URL.Path]
		delay := f.delays[r.URL.Path]
		f.mu.Unlock()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}

		if failing {
			writeJSON(w, fail.status, map[string]string{"detail": fail.detail})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *FakeBackend) respond(w http.ResponseWriter, get func() any) {
	f.mu.Lock()
	payload := get()
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, payload)
}

func (f *FakeBackend) handleListJobs(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	jobs := append([]models.Job{}, f.jobs...)
	f.mu.Unlock()
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit < len(jobs) {
		jobs = jobs[:limit]
	}
	writeJSON(w, http.StatusOK, jobs)
}

func (f *FakeBackend) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req models.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	f.mu.Lock()
	job := models.Job{ID: f.newID(), Status: models.JobPending, InfluencerID: req.InfluencerID}
	f.jobs = append([]models.Job{job}, f.jobs...)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, job)
}

func (f *FakeBackend) handleBulk(w http.ResponseWriter, r *http.Request) {
	var req models.BulkJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	f.mu.Lock()
	res := models.BulkJobResult{Count: req.Count}
	for i := 0; i < req.Count; i++ {
		job := models.Job{ID: f.newID(), Status: models.JobPending, CampaignName: req.CampaignName, InfluencerID: req.InfluencerID}
		f.jobs = append([]models.Job{job}, f.jobs...)
		res.JobIDs = append(res.JobIDs, job.ID)
	}
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, res)
}

func (f *FakeBackend) handleUpdateInfluencer(w http.ResponseWriter, r *http.Request) {
	var in models.Influencer
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	id := chi.URLParam(r, "id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.influencers {
		if f.influencers[i].ID == id {
			in.ID = id
			f.influencers[i] = in
			writeJSON(w, http.StatusOK, in)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Influencer not found"})
}

func (f *FakeBackend) handleGenerateScript(w http.ResponseWriter, r *http.Request) {
	var req models.ScriptGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == req.ProductID {
			writeJSON(w, http.StatusOK, models.GeneratedScript{Script: fmt.Sprintf("Meet the %s.", p.Name)})
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Product not found"})
}

func (f *FakeBackend) create(w http.ResponseWriter, r *http.Request, into any, store func(id string) any) {
	if err := json.NewDecoder(r.Body).Decode(into); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"detail": "invalid body"})
		return
	}
	f.mu.Lock()
	created := store(f.newID())
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, created)
}

func (f *FakeBackend) remove(w http.ResponseWriter, r *http.Request, del func(id string) bool) {
	f.mu.Lock()
	ok := del(chi.URLParam(r, "id"))
	f.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// newID must be called with f.mu held.
func (f *FakeBackend) newID() string {
	f.nextID++
	return fmt.Sprintf("fake%04d-id", f.nextID)
}

func deleteByID[T any](items *[]T, id string, key func(T) string) bool {
	for i, item := range *items {
		if key(item) == id {
			*items = append((*items)[:i], (*items)[i+1:]...)
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
