package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/ugc-console/internal/models"
	"github.com/vrsandeep/ugc-console/internal/monitor"
	"github.com/vrsandeep/ugc-console/internal/testutil"
)

func TestPollHandlers(t *testing.T) {
	server, app, backend := testutil.SetupTestServer(t)
	router := server.Router()

	backend.Fail("/metrics", http.StatusServiceUnavailable, "metrics offline")
	require.NoError(t, app.Monitor.Start())
	require.Eventually(t, func() bool {
		runs, err := app.Store.ListPollRuns(monitor.TaskMetrics, 10)
		return err == nil && len(runs) == 1
	}, 2*time.Second, 10*time.Millisecond)

	t.Run("Status", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/polls/status", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var statuses []struct {
			Name             string `json:"name"`
			Status           string `json:"status"`
			FailuresLastHour int    `json:"failures_last_hour"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &statuses))
		require.Len(t, statuses, 6)
		assert.Equal(t, monitor.TaskJobs, statuses[0].Name)
		for _, st := range statuses {
			if st.Name == monitor.TaskMetrics {
				assert.Equal(t, "failed", st.Status)
				assert.Equal(t, 1, st.FailuresLastHour)
			}
		}
	})

	t.Run("History", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/polls/history?task=metrics", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var runs []models.PollRun
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &runs))
		require.Len(t, runs, 1)
		assert.False(t, runs[0].OK)
		assert.Equal(t, "metrics offline", runs[0].Error)

		rr = doRequest(t, router, "GET", "/api/polls/history?limit=zero", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Run Now", func(t *testing.T) {
		before := backend.Calls("GET /stats")
		rr := doRequest(t, router, "POST", "/api/polls/stats/run", nil)
		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Eventually(t, func() bool { return backend.Calls("GET /stats") > before }, 2*time.Second, 10*time.Millisecond)

		rr = doRequest(t, router, "POST", "/api/polls/nope/run", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestRunPollAfterShutdown(t *testing.T) {
	server, app, backend := testutil.SetupTestServer(t)
	router := server.Router()

	app.Monitor.Stop()

	rr := doRequest(t, router, "POST", "/api/polls/stats/run", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "poller is stopped", errorMessage(t, rr))

	rr = doRequest(t, router, "POST", "/api/polls/nope/run", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Zero(t, backend.Calls("GET /stats"))
}
