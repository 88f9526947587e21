package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/ugc-console/internal/models"
	"github.com/vrsandeep/ugc-console/internal/monitor"
	"github.com/vrsandeep/ugc-console/internal/testutil"
)

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req, _ := http.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &payload), rr.Body.String())
	return payload["error"]
}

func TestSystemHandlers(t *testing.T) {
	server, _, _ := testutil.SetupTestServer(t)
	router := server.Router()

	t.Run("Get Version", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/version", nil)
		if status := rr.Code; status != http.StatusOK {
			t.Errorf("handler returned wrong status code: got %v want %v", status, http.StatusOK)
		}
		assert.JSONEq(t, `{"version":"test"}`, rr.Body.String())
	})

	t.Run("Health", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/health", nil)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	})

	t.Run("CORS Preflight", func(t *testing.T) {
		rr := doRequest(t, router, "OPTIONS", "/api/jobs", nil)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "DELETE")
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PUT")
	})

	t.Run("CORS On Regular Responses", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/version", nil)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestViewHandlers(t *testing.T) {
	server, app, backend := testutil.SetupTestServer(t)
	router := server.Router()

	now := time.Now().UTC()
	backend.SetInfluencers([]models.Influencer{{ID: "inf-1", Name: "Ava"}})
	backend.SetJobs([]models.Job{
		{ID: "111111aaa", Status: models.JobSuccess, CampaignName: "Spring", InfluencerID: "inf-1", FinalVideoURL: "https://cdn.test/111111aaa.mp4",
			CreatedAt: models.Timestamp{Time: now.Add(-10 * time.Minute)}, UpdatedAt: models.Timestamp{Time: now.Add(-4 * time.Minute)}},
		{ID: "222222bbb", Status: models.JobProcessing, Progress: 40, CampaignName: "Spring",
			CreatedAt: models.Timestamp{Time: now.Add(-2 * time.Minute)}},
		{ID: "333333ccc", Status: models.JobFailed, ErrorMessage: "429 Too Many Requests",
			CreatedAt: models.Timestamp{Time: now.Add(-2 * time.Hour)}},
	})
	backend.SetStats(models.Stats{TotalJobs: 3, Success: 1, Processing: 1, Failed: 1})

	require.NoError(t, app.Monitor.Start())
	require.Eventually(t, func() bool {
		dash := app.Monitor.Dashboard()
		_, jobs := dash.RefreshedAt[monitor.TaskJobs]
		_, recent := dash.RefreshedAt[monitor.TaskNotifications]
		return jobs && recent && dash.Stats != nil
	}, 2*time.Second, 10*time.Millisecond)

	t.Run("Activity Grouped By Campaign", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/activity?group=campaign", nil)
		require.Equal(t, http.StatusOK, rr.Code)

		var view monitor.ActivityView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &view))
		assert.Equal(t, 3, view.Summary.TotalJobs)
		assert.Equal(t, 33, view.Summary.SuccessRate)
		assert.Equal(t, 6, view.Summary.AvgDurationMinutes)
		assert.Equal(t, 1, view.Summary.ActiveQueue)
		require.Len(t, view.Jobs, 3)
		assert.Equal(t, "Ava", view.Jobs[0].InfluencerName)
		assert.Equal(t, "6m", view.Jobs[0].Duration)
		assert.Equal(t, 40, view.Jobs[1].DisplayProgress)
		assert.Contains(t, view.Jobs[2].Troubleshooting, "rate limit")

		require.Len(t, view.Campaigns, 2)
		assert.Equal(t, "Spring", view.Campaigns[0].Name)
		assert.Equal(t, 2, view.Campaigns[0].Total)
		assert.Equal(t, 50, view.Campaigns[0].PercentComplete)
		assert.Equal(t, "Single Generation", view.Campaigns[1].Name)
	})

	t.Run("Activity Ungrouped", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/activity", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), `"campaigns"`)
	})

	t.Run("Campaigns", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/campaigns", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var groups []monitor.CampaignView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &groups))
		require.Len(t, groups, 2)
		assert.Equal(t, 1, groups[0].Processing)
		assert.Equal(t, 1, groups[1].Failed)
	})

	t.Run("Notifications Only Recent Finished Jobs", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/notifications", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var notes []models.Notification
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &notes))
		require.Len(t, notes, 1)
		assert.Equal(t, "Video 111111 completed!", notes[0].Message)
	})

	t.Run("Dashboard", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/dashboard", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var dash monitor.DashboardView
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &dash))
		require.NotNil(t, dash.Stats)
		assert.Equal(t, 3, dash.Stats.TotalJobs)
	})

	t.Run("Jobs", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/jobs", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var jobs []models.Job
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &jobs))
		assert.Len(t, jobs, 3)
	})

	t.Run("Videos", func(t *testing.T) {
		rr := doRequest(t, router, "GET", "/api/videos", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		var rows []monitor.JobRow
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
		require.Len(t, rows, 1)
		assert.Equal(t, "111111aaa", rows[0].ID)
		assert.Equal(t, "Ava", rows[0].InfluencerName)

		rr = doRequest(t, router, "GET", "/api/videos?q=SPRING", nil)
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
		assert.Len(t, rows, 1)

		rr = doRequest(t, router, "GET", "/api/videos?influencer=inf-2", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})
}

func TestNotificationsEmptyIsArray(t *testing.T) {
	server, _, _ := testutil.SetupTestServer(t)
	rr := doRequest(t, server.Router(), "GET", "/api/notifications", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
