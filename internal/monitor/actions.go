package monitor

import (
	"context"
	"log"
	"strings"

	"github.com/vrsandeep/ugc-console/internal/models"
)

// User actions are foreground: every failure is returned to the caller.
// A successful write is followed by an unconditional jobs refetch.

func (m *Monitor) CreateJob(ctx context.Context, req models.CreateJobRequest) (*models.Job, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	job, err := m.backend.CreateJob(ctx, req)
	if err != nil {
		return nil, err
	}
	m.refetch()
	return job, nil
}

// LaunchCampaign submits a bulk job request.
func (m *Monitor) LaunchCampaign(ctx context.Context, req models.BulkJobRequest) (*models.BulkJobResult, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	req.CampaignName = strings.TrimSpace(req.CampaignName)
	res, err := m.backend.CreateBulkJobs(ctx, req)
	if err != nil {
		return nil, err
	}
	m.refetch()
	return res, nil
}

func (m *Monitor) Estimate(ctx context.Context, req models.EstimateRequest) (*models.CostEstimate, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	return m.backend.Estimate(ctx, req)
}

func (m *Monitor) GenerateHook(ctx context.Context, req models.HookRequest) (*models.Hook, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	return m.backend.GenerateHook(ctx, req)
}

// GenerateScript writes a narration script for a physical product.
func (m *Monitor) GenerateScript(ctx context.Context, req models.ScriptGenerateRequest) (*models.GeneratedScript, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	return m.backend.GenerateScript(ctx, req)
}

func (m *Monitor) AssetSignedURL(ctx context.Context, req models.SignedURLRequest) (*models.SignedURL, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	return m.backend.AssetSignedURL(ctx, req)
}

func (m *Monitor) ProductUploadURL(ctx context.Context, req models.SignedURLRequest) (*models.SignedURL, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	return m.backend.ProductUploadURL(ctx, req)
}

func (m *Monitor) ListInfluencers(ctx context.Context) ([]models.Influencer, error) {
	return m.backend.ListInfluencers(ctx)
}

func (m *Monitor) CreateInfluencer(ctx context.Context, in models.Influencer) (*models.Influencer, error) {
	if err := check(in); err != nil {
		return nil, err
	}
	created, err := m.backend.CreateInfluencer(ctx, in)
	if err != nil {
		return nil, err
	}
	m.refetch()
	return created, nil
}

func (m *Monitor) UpdateInfluencer(ctx context.Context, id string, in models.Influencer) (*models.Influencer, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &ValidationError{Message: "id is required"}
	}
	if err := check(in); err != nil {
		return nil, err
	}
	updated, err := m.backend.UpdateInfluencer(ctx, id, in)
	if err != nil {
		return nil, err
	}
	m.refetch()
	return updated, nil
}

func (m *Monitor) DeleteInfluencer(ctx context.Context, id string) error {
	return m.remove(ctx, id, m.backend.DeleteInfluencer)
}

func (m *Monitor) ListScripts(ctx context.Context) ([]models.Script, error) {
	return m.backend.ListScripts(ctx)
}

func (m *Monitor) CreateScript(ctx context.Context, s models.Script) (*models.Script, error) {
	if err := check(s); err != nil {
		return nil, err
	}
	created, err := m.backend.CreateScript(ctx, s)
	if err != nil {
		return nil, err
	}
	m.refetch()
	return created, nil
}

func (m *Monitor) DeleteScript(ctx context.Context, id string) error {
	return m.remove(ctx, id, m.backend.DeleteScript)
}

func (m *Monitor) ListAppClips(ctx context.Context) ([]models.AppClip, error) {
	return m.backend.ListAppClips(ctx)
}

func (m *Monitor) CreateAppClip(ctx context.Context, clip models.AppClip) (*models.AppClip, error) {
	if err := check(clip); err != nil {
		return nil, err
	}
	created, err := m.backend.CreateAppClip(ctx, clip)
	if err != nil {
		return nil, err
	}
	m.refetch()
	return created, nil
}

func (m *Monitor) DeleteAppClip(ctx context.Context, id string) error {
	return m.remove(ctx, id, m.backend.DeleteAppClip)
}

func (m *Monitor) ListProducts(ctx context.Context) ([]models.Product, error) {
	return m.backend.ListProducts(ctx)
}

func (m *Monitor) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	if err := check(p); err != nil {
		return nil, err
	}
	created, err := m.backend.CreateProduct(ctx, p)
	if err != nil {
		return nil, err
	}
	m.refetch()
	return created, nil
}

func (m *Monitor) remove(ctx context.Context, id string, del func(context.Context, string) error) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Message: "id is required"}
	}
	if err := del(ctx, id); err != nil {
		return err
	}
	m.refetch()
	return nil
}

// refetch triggers the jobs task out of band. It races the timer-driven
// fetch and whichever finishes last wins.
func (m *Monitor) refetch() {
	if err := m.poller.RunNow(TaskJobs); err != nil {
		log.Printf("Warning: could not trigger refetch after user action: %v", err)
	}
}
