package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/ugc-console/internal/models"
	"github.com/vrsandeep/ugc-console/internal/testutil"
)

func TestCreateJobHandler(t *testing.T) {
	server, _, backend := testutil.SetupTestServer(t)
	router := server.Router()

	t.Run("Invalid JSON", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/jobs", "{not json")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Invalid request payload", errorMessage(t, rr))
	})

	t.Run("Validation Happens Before The Backend", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/jobs", map[string]string{"script_id": "s1"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "influencer_id is required", errorMessage(t, rr))
		assert.Zero(t, backend.Calls("POST /jobs"))
	})

	t.Run("Success", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/jobs", models.CreateJobRequest{InfluencerID: "inf-1"})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		var job models.Job
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &job))
		assert.Equal(t, models.JobPending, job.Status)
		assert.Equal(t, 1, backend.Calls("POST /jobs"))
	})

	t.Run("Backend Error Is Surfaced", func(t *testing.T) {
		backend.Fail("/jobs", http.StatusBadRequest, "Influencer has no voice configured")
		defer backend.Heal("/jobs")

		rr := doRequest(t, router, "POST", "/api/jobs", models.CreateJobRequest{InfluencerID: "inf-1"})
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Equal(t, "Influencer has no voice configured", errorMessage(t, rr))
	})
}

func TestLaunchCampaignHandler(t *testing.T) {
	server, _, backend := testutil.SetupTestServer(t)
	router := server.Router()

	rr := doRequest(t, router, "POST", "/api/jobs/bulk", models.BulkJobRequest{InfluencerID: "inf-1", Count: 0})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, errorMessage(t, rr), "count")

	rr = doRequest(t, router, "POST", "/api/jobs/bulk", models.BulkJobRequest{
		InfluencerID: "inf-1", Count: 2, CampaignName: "Launch Week", ProductType: models.ProductPhysical,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, errorMessage(t, rr), "product_id")
	assert.Zero(t, backend.Calls("POST /jobs/bulk"))

	rr = doRequest(t, router, "POST", "/api/jobs/bulk", models.BulkJobRequest{InfluencerID: "inf-1", Count: 2, CampaignName: "Launch Week"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var res models.BulkJobResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Count)
	assert.Len(t, res.JobIDs, 2)
}

func TestPassThroughHandlers(t *testing.T) {
	server, _, backend := testutil.SetupTestServer(t)
	router := server.Router()

	t.Run("Estimate", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/estimate", models.EstimateRequest{Duration: 0})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr = doRequest(t, router, "POST", "/api/estimate", models.EstimateRequest{Duration: 15, Model: "kling"})
		require.Equal(t, http.StatusOK, rr.Code)
		var est models.CostEstimate
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &est))
		assert.InDelta(t, 0.35, est.TotalCost, 1e-9)
	})

	t.Run("Hook", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/ai/hook", models.HookRequest{InfluencerID: "inf-1"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"hook":"Stop scrolling!"}`, rr.Body.String())
	})

	t.Run("Signed URL", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/assets/signed-url", models.SignedURLRequest{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "file_name is required", errorMessage(t, rr))

		rr = doRequest(t, router, "POST", "/api/assets/signed-url", models.SignedURLRequest{FileName: "clip.mp4", ContentType: "video/mp4"})
		require.Equal(t, http.StatusOK, rr.Code)
		var signed models.SignedURL
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &signed))
		assert.Equal(t, "uploads/file", signed.Path)
	})

	t.Run("Product Upload URL", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/products/upload", models.SignedURLRequest{FileName: "shoe.png"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, 1, backend.Calls("POST /api/products/upload"))
	})

	t.Run("Generate Script", func(t *testing.T) {
		rr := doRequest(t, router, "POST", "/api/scripts/generate", models.ScriptGenerateRequest{})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "product_id is required", errorMessage(t, rr))
		assert.Zero(t, backend.Calls("POST /api/scripts/generate"))

		rr = doRequest(t, router, "POST", "/api/products", models.Product{Name: "Trail Shoe"})
		require.Equal(t, http.StatusCreated, rr.Code)
		var p models.Product
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))

		rr = doRequest(t, router, "POST", "/api/scripts/generate", models.ScriptGenerateRequest{ProductID: p.ID, Duration: 15})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"script":"Meet the Trail Shoe."}`, rr.Body.String())
	})

	t.Run("Transport Failure Is A Bad Gateway", func(t *testing.T) {
		backend.Server.Close()
		rr := doRequest(t, router, "POST", "/api/ai/hook", models.HookRequest{InfluencerID: "inf-1"})
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.NotEmpty(t, errorMessage(t, rr))
	})
}
