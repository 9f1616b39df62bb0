package domain

import "time"

// AssetReference points at a generated media file.
type AssetReference struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id,omitempty"`
	SessionID  string             `json:"session_id,omitempty"`
	Kind       MediaKind          `json:"kind"`
	URL        string             `json:"url"`
	MIME       string             `json:"mime,omitempty"`
	Prompt     string             `json:"prompt"`
	Dimensions Dimensions         `json:"dimensions"`
	Metadata   GenerationMetadata `json:"metadata"`
	Provider   string             `json:"provider,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
}
