package image

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"igpt/internal/domain"
	"igpt/internal/providers"
)

// DefaultGeminiModel is used when GEMINI_IMAGE_MODEL is unset.
const DefaultGeminiModel = "gemini-2.5-flash-image-preview"

var blockedFinishReasons = map[genai.FinishReason]bool{
	genai.FinishReasonSafety:                 true,
	genai.FinishReason("PROHIBITED_CONTENT"): true,
	genai.FinishReason("BLOCKLIST"):          true,
	genai.FinishReason("IMAGE_SAFETY"):       true,
	genai.FinishReason("SPII"):               true,
}

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Gemini generates images with a Gemini image model through the genai SDK.
type Gemini struct {
	models contentGenerator
	model  string
	logger zerolog.Logger
}

// NewGemini builds a client for the Gemini Developer API.
func NewGemini(ctx context.Context, apiKey, model string, logger zerolog.Logger) (*Gemini, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return newGemini(client.Models, model, logger), nil
}

func newGemini(models contentGenerator, model string, logger zerolog.Logger) *Gemini {
	model = strings.TrimSpace(model)
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{models: models, model: model, logger: logger}
}

func (g *Gemini) Name() string { return "gemini:" + g.model }

func (g *Gemini) Generate(ctx context.Context, req providers.GenerateRequest) (*providers.Media, error) {
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(buildImagePrompt(req)), config)
	if err != nil {
		return nil, classifyGeminiError(err)
	}
	if resp == nil {
		return nil, errors.New("gemini: empty response")
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, fmt.Errorf("gemini: prompt blocked (%s): %w", fb.BlockReason, domain.ErrContentPolicy)
	}
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini: no candidates returned: %w", domain.ErrContentPolicy)
	}

	var refusal string
	for _, candidate := range resp.Candidates {
		if candidate == nil {
			continue
		}
		if blockedFinishReasons[candidate.FinishReason] {
			return nil, fmt.Errorf("gemini: generation blocked (%s): %w", candidate.FinishReason, domain.ErrContentPolicy)
		}
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				g.logger.Debug().
					Str("request_id", req.RequestID).
					Str("model", g.model).
					Int("bytes", len(part.InlineData.Data)).
					Msg("gemini: generated image")
				return &providers.Media{
					MIME:   mime,
					Data:   part.InlineData.Data,
					Width:  req.Width,
					Height: req.Height,
				}, nil
			}
			if text := strings.TrimSpace(part.Text); text != "" && refusal == "" {
				refusal = text
			}
		}
	}
	if refusal != "" {
		return nil, fmt.Errorf("gemini: no image returned: %s", refusal)
	}
	return nil, errors.New("gemini: no image returned")
}

func buildImagePrompt(req providers.GenerateRequest) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(req.Prompt))
	if req.Width > 0 && req.Height > 0 {
		fmt.Fprintf(&b, "\nAspect ratio: %s", req.AspectRatio())
		fmt.Fprintf(&b, "\nOutput size: %dx%d pixels", req.Width, req.Height)
	}
	return b.String()
}

func classifyGeminiError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return fmt.Errorf("gemini: %s: %w", apiErr.Message, domain.ErrRateLimited)
		case apiErr.Code == http.StatusBadRequest && strings.Contains(strings.ToLower(apiErr.Message), "safety"):
			return fmt.Errorf("gemini: %s: %w", apiErr.Message, domain.ErrContentPolicy)
		}
		return fmt.Errorf("gemini: %s (%d)", apiErr.Message, apiErr.Code)
	}
	return fmt.Errorf("gemini: %w", err)
}

var _ providers.Generator = (*Gemini)(nil)
