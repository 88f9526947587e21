package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vrsandeep/ugc-console/internal/models"
)

// ListJobs returns the most recent jobs, newest first as ordered by the backend.
func (c *Client) ListJobs(ctx context.Context, limit int) ([]models.Job, error) {
	var jobs []models.Job
	path := "/jobs"
	if limit > 0 {
		path = fmt.Sprintf("/jobs?limit=%d", limit)
	}
	if err := c.Do(ctx, http.MethodGet, path, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Client) CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error) {
	var job models.Job
	if err := c.Do(ctx, http.MethodPost, "/jobs", req, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func (c *Client) CreateBulkJobs(ctx context.Context, req models.BulkJobRequest) (*models.BulkJobResult, error) {
	var res models.BulkJobResult
	if err := c.Do(ctx, http.MethodPost, "/jobs/bulk", req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	if err := c.Do(ctx, http.MethodGet, "/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) CostStats(ctx context.Context) (*models.CostStats, error) {
	var stats models.CostStats
	if err := c.Do(ctx, http.MethodGet, "/stats/costs", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) Metrics(ctx context.Context) (*models.Metrics, error) {
	var m models.Metrics
	if err := c.Do(ctx, http.MethodGet, "/metrics", nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (c *Client) Estimate(ctx context.Context, req models.EstimateRequest) (*models.CostEstimate, error) {
	var est models.CostEstimate
	if err := c.Do(ctx, http.MethodPost, "/estimate", req, &est); err != nil {
		return nil, err
	}
	return &est, nil
}

// GenerateScript has the backend write a script for a physical product.
func (c *Client) GenerateScript(ctx context.Context, req models.ScriptGenerateRequest) (*models.GeneratedScript, error) {
	var script models.GeneratedScript
	if err := c.Do(ctx, http.MethodPost, "/api/scripts/generate", req, &script); err != nil {
		return nil, err
	}
	return &script, nil
}

func (c *Client) GenerateHook(ctx context.Context, req models.HookRequest) (*models.Hook, error) {
	var hook models.Hook
	if err := c.Do(ctx, http.MethodPost, "/ai/hook", req, &hook); err != nil {
		return nil, err
	}
	return &hook, nil
}

func (c *Client) AssetSignedURL(ctx context.Context, req models.SignedURLRequest) (*models.SignedURL, error) {
	var su models.SignedURL
	if err := c.Do(ctx, http.MethodPost, "/assets/signed-url", req, &su); err != nil {
		return nil, err
	}
	return &su, nil
}

func (c *Client) ProductUploadURL(ctx context.Context, req models.SignedURLRequest) (*models.SignedURL, error) {
	var su models.SignedURL
	if err := c.Do(ctx, http.MethodPost, "/api/products/upload", req, &su); err != nil {
		return nil, err
	}
	return &su, nil
}

func (c *Client) ListInfluencers(ctx context.Context) ([]models.Influencer, error) {
	return list[models.Influencer](ctx, c, "/influencers")
}

func (c *Client) CreateInfluencer(ctx context.Context, in models.Influencer) (*models.Influencer, error) {
	return create(ctx, c, "/influencers", in)
}

func (c *Client) UpdateInfluencer(ctx context.Context, id string, in models.Influencer) (*models.Influencer, error) {
	var updated models.Influencer
	if err := c.Do(ctx, http.MethodPut, "/influencers/"+url.PathEscape(id), in, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) DeleteInfluencer(ctx context.Context, id string) error {
	return c.remove(ctx, "/influencers", id)
}

func (c *Client) ListScripts(ctx context.Context) ([]models.Script, error) {
	return list[models.Script](ctx, c, "/scripts")
}

func (c *Client) CreateScript(ctx context.Context, s models.Script) (*models.Script, error) {
	return create(ctx, c, "/scripts", s)
}

func (c *Client) DeleteScript(ctx context.Context, id string) error {
	return c.remove(ctx, "/scripts", id)
}

func (c *Client) ListAppClips(ctx context.Context) ([]models.AppClip, error) {
	return list[models.AppClip](ctx, c, "/app-clips")
}

func (c *Client) CreateAppClip(ctx context.Context, clip models.AppClip) (*models.AppClip, error) {
	return create(ctx, c, "/app-clips", clip)
}

func (c *Client) DeleteAppClip(ctx context.Context, id string) error {
	return c.remove(ctx, "/app-clips", id)
}

func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	return list[models.Product](ctx, c, "/api/products")
}

func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	return create(ctx, c, "/api/products", p)
}

func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var items []T
	if err := c.Do(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func create[T any](ctx context.Context, c *Client, path string, item T) (*T, error) {
	var created T
	if err := c.Do(ctx, http.MethodPost, path, item, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *Client) remove(ctx context.Context, path, id string) error {
	return c.Do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil)
}
