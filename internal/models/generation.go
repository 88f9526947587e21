package models

// ProductType selects between app-clip (digital) and product-shot (physical) videos.
type ProductType string

const (
	ProductDigital  ProductType = "digital"
	ProductPhysical ProductType = "physical"
)

// CreateJobRequest is the body of POST /jobs.
type CreateJobRequest struct {
	InfluencerID  string      `json:"influencer_id" validate:"required"`
	ScriptID      string      `json:"script_id,omitempty"`
	AppClipID     string      `json:"app_clip_id,omitempty"`
	ProductID     string      `json:"product_id,omitempty" validate:"required_if=ProductType physical"`
	ProductType   ProductType `json:"product_type,omitempty" validate:"omitempty,oneof=digital physical"`
	Hook          string      `json:"hook,omitempty"`
	ModelAPI      string      `json:"model_api,omitempty"`
	AssistantType string      `json:"assistant_type,omitempty"`
	Length        int         `json:"length,omitempty" validate:"omitempty,gt=0"`
}

// BulkJobRequest is the body of POST /jobs/bulk, i.e. a campaign launch.
type BulkJobRequest struct {
	InfluencerID  string      `json:"influencer_id" validate:"required"`
	Count         int         `json:"count" validate:"required,gte=1"`
	Duration      int         `json:"duration,omitempty" validate:"omitempty,gt=0"`
	ModelAPI      string      `json:"model_api,omitempty"`
	CampaignName  string      `json:"campaign_name,omitempty"`
	AssistantType string      `json:"assistant_type,omitempty"`
	ProductType   ProductType `json:"product_type,omitempty" validate:"omitempty,oneof=digital physical"`
	ProductID     string      `json:"product_id,omitempty" validate:"required_if=ProductType physical"`
}

type BulkJobResult struct {
	Count  int      `json:"count"`
	JobIDs []string `json:"job_ids"`
}

type EstimateRequest struct {
	ScriptText  string      `json:"script_text"`
	Duration    int         `json:"duration" validate:"gt=0"`
	Model       string      `json:"model"`
	ProductType ProductType `json:"product_type,omitempty"`
	NumScenes   int         `json:"num_scenes,omitempty"`
}

type CostEstimate struct {
	CostVideo      float64 `json:"cost_video"`
	CostVoice      float64 `json:"cost_voice"`
	CostMusic      float64 `json:"cost_music"`
	CostProcessing float64 `json:"cost_processing"`
	CostImage      float64 `json:"cost_image"`
	TotalCost      float64 `json:"total_cost"`
}

// ScriptGenerateRequest asks the backend to write a narration script for a
// physical product from its stored visual analysis.
type ScriptGenerateRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Duration  int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
}

type GeneratedScript struct {
	Script string `json:"script"`
}

type HookRequest struct {
	InfluencerID string `json:"influencer_id" validate:"required"`
	Category     string `json:"category,omitempty"`
}

type Hook struct {
	Hook string `json:"hook"`
}

// SignedURLRequest asks the backend for a one-shot upload URL.
type SignedURLRequest struct {
	FileName    string `json:"file_name" validate:"required"`
	ContentType string `json:"content_type,omitempty"`
	Bucket      string `json:"bucket,omitempty"`
}

type SignedURL struct {
	SignedURL string `json:"signed_url"`
	PublicURL string `json:"public_url,omitempty"`
	Path      string `json:"path"`
}
