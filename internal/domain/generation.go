package domain

// MediaKind enumerates generated media types.
type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// GenerationMetadata is persisted alongside the generated asset for later display or reuse.
type GenerationMetadata struct {
	CategoryID    string    `json:"category_id,omitempty"`
	SubformatID   string    `json:"subformat_id,omitempty"`
	OrientationID string    `json:"orientation_id,omitempty"`
	StyleName     string    `json:"style_name,omitempty"`
	PaletteColors []string  `json:"palette_colors,omitempty"`
	ExpertMode    bool      `json:"expert_mode"`
	Language      string    `json:"language"`
	MediaKind     MediaKind `json:"media_kind"`
	UserText      string    `json:"user_text"`
}

// GenerationRequest is the output of composition. It is built once and never mutated;
// a regenerate action builds a new one.
type GenerationRequest struct {
	Prompt     string             `json:"prompt"`
	Dimensions Dimensions         `json:"dimensions"`
	Metadata   GenerationMetadata `json:"metadata"`
}
