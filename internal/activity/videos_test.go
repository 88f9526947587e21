package activity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vrsandeep/ugc-console/internal/activity"
	"github.com/vrsandeep/ugc-console/internal/models"
)

func videoIDs(jobs []models.Job) []string {
	ids := make([]string, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}
	return ids
}

func TestVideos(t *testing.T) {
	names := map[string]string{"inf-1": "Ava Travels", "inf-2": "Leo"}
	jobs := []models.Job{
		{ID: "a1", Status: models.JobSuccess, FinalVideoURL: "https://cdn/a1.mp4", InfluencerID: "inf-1", CampaignName: "Spring", ModelAPI: "kling"},
		{ID: "b2", Status: models.JobSuccess, InfluencerID: "inf-1"}, // no video
		{ID: "c3", Status: models.JobFailed, FinalVideoURL: "https://cdn/c3.mp4", InfluencerID: "inf-2"},
		{ID: "d4", Status: models.JobSuccess, FinalVideoURL: "https://cdn/d4.mp4", InfluencerID: "inf-2", ModelAPI: "veo"},
		{ID: "SPRING-e5", Status: models.JobSuccess, FinalVideoURL: "https://cdn/e5.mp4"},
	}

	t.Run("only finished videos", func(t *testing.T) {
		assert.Equal(t, []string{"a1", "d4", "SPRING-e5"}, videoIDs(activity.Videos(jobs, names, activity.VideoFilter{})))
	})

	t.Run("query matches influencer name case-insensitively", func(t *testing.T) {
		assert.Equal(t, []string{"a1"}, videoIDs(activity.Videos(jobs, names, activity.VideoFilter{Query: "AVA"})))
	})

	t.Run("query matches campaign and id", func(t *testing.T) {
		assert.Equal(t, []string{"a1", "SPRING-e5"}, videoIDs(activity.Videos(jobs, names, activity.VideoFilter{Query: "spring"})))
	})

	t.Run("query matches model", func(t *testing.T) {
		assert.Equal(t, []string{"d4"}, videoIDs(activity.Videos(jobs, names, activity.VideoFilter{Query: " Veo "})))
	})

	t.Run("influencer filter combines with query", func(t *testing.T) {
		assert.Equal(t, []string{"d4"}, videoIDs(activity.Videos(jobs, names, activity.VideoFilter{InfluencerID: "inf-2"})))
		assert.Empty(t, activity.Videos(jobs, names, activity.VideoFilter{InfluencerID: "inf-2", Query: "kling"}))
	})

	t.Run("no matches is empty not nil", func(t *testing.T) {
		out := activity.Videos(nil, nil, activity.VideoFilter{Query: "x"})
		assert.NotNil(t, out)
		assert.Empty(t, out)
	})
}
