package main

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrsandeep/ugc-console/internal/client"
	"github.com/vrsandeep/ugc-console/internal/models"
	"github.com/vrsandeep/ugc-console/internal/notify"
	"github.com/vrsandeep/ugc-console/internal/testutil"
)

func TestLoadUsesSeparateNotificationsLimit(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	now := time.Now().UTC()
	jobs := make([]models.Job, 0, 15)
	for i := 0; i < 15; i++ {
		jobs = append(jobs, models.Job{
			ID:        fmt.Sprintf("job%05d", i),
			Status:    models.JobSuccess,
			CreatedAt: models.Timestamp{Time: now.Add(-time.Duration(i) * time.Second)},
		})
	}
	backend.SetJobs(jobs)
	backend.SetCostStats(models.CostStats{TotalSpendMonth: 12.5})

	rep, err := load(context.Background(), client.New(backend.URL()), 200, 10)
	require.NoError(t, err)

	assert.Len(t, rep.jobs, 15)
	assert.Len(t, rep.recent, 10)
	assert.Len(t, notify.Derive(rep.recent, now), 10)
	require.NotNil(t, rep.costs)
	assert.InDelta(t, 12.5, rep.costs.TotalSpendMonth, 1e-9)
	assert.Equal(t, 2, backend.Calls("GET /jobs"))
}

func TestLoadFailsWhenAnyFetchFails(t *testing.T) {
	backend := testutil.NewFakeBackend(t)
	backend.Fail("/stats/costs", 500, "boom")

	_, err := load(context.Background(), client.New(backend.URL()), 200, 10)
	require.Error(t, err)
}
