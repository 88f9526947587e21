package models

// Influencer is a reusable persona applied to generated videos.
type Influencer struct {
	ID                string `json:"id,omitempty"`
	Name              string `json:"name" validate:"required"`
	Description       string `json:"description,omitempty"`
	Personality       string `json:"personality,omitempty"`
	Style             string `json:"style,omitempty"` // category: Travel, Fashion, ...
	SpeakingStyle     string `json:"speaking_style,omitempty"`
	TargetAudience    string `json:"target_audience,omitempty"`
	ImageURL          string `json:"image_url,omitempty" validate:"omitempty,url"`
	ElevenLabsVoiceID string `json:"elevenlabs_voice_id,omitempty"`
}

type Script struct {
	ID       string `json:"id,omitempty"`
	Text     string `json:"text" validate:"required"`
	Category string `json:"category,omitempty"`
}

// AppClip is a short screen recording that can be spliced into a job's output.
type AppClip struct {
	ID              string   `json:"id,omitempty"`
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description,omitempty"`
	VideoURL        string   `json:"video_url" validate:"required,url"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
}

type Product struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	ImageURL    string `json:"image_url,omitempty" validate:"omitempty,url"`
}
