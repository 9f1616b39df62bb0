// Package registry picks the generator for each media kind from configuration.
package registry

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"igpt/internal/domain"
	"igpt/internal/providers"
	"igpt/internal/providers/image"
	"igpt/internal/providers/video"
)

const (
	ModeAuto      = "auto"
	ModeSynthetic = "synthetic"
	ModeGemini    = "gemini"
	ModeRunway    = "runway"
)

// KeyLookup returns the API key for a provider, preferring fromEnv.
type KeyLookup func(ctx context.Context, provider, fromEnv string) (string, error)

type Settings struct {
	ImageMode       string
	GeminiAPIKey    string
	GeminiModel     string
	VideoMode       string
	RunwayAPIKey    string
	RunwayBaseURL   string
	RunwayModel     string
	RunwayPerMinute int
}

// Build returns one generator per media kind. In auto mode a real provider is
// used when a key is available and the synthetic renderer otherwise; an
// explicit provider mode without a key is an error.
func Build(ctx context.Context, s Settings, keys KeyLookup, logger zerolog.Logger) (map[domain.MediaKind]providers.Generator, error) {
	img, err := buildImage(ctx, s, keys, logger)
	if err != nil {
		return nil, err
	}
	vid, err := buildVideo(ctx, s, keys, logger)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("image", img.Name()).Str("video", vid.Name()).Msg("providers selected")
	return map[domain.MediaKind]providers.Generator{
		domain.MediaKindImage: img,
		domain.MediaKindVideo: vid,
	}, nil
}

func buildImage(ctx context.Context, s Settings, keys KeyLookup, logger zerolog.Logger) (providers.Generator, error) {
	switch s.ImageMode {
	case ModeSynthetic:
		return image.NewSynthetic(0), nil
	case ModeAuto, ModeGemini, "":
	default:
		return nil, fmt.Errorf("unknown image provider %q", s.ImageMode)
	}
	key, err := lookup(ctx, keys, ModeGemini, s.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	if key == "" {
		if s.ImageMode == ModeGemini {
			return nil, fmt.Errorf("image provider gemini: no API key configured")
		}
		logger.Warn().Msg("no Gemini API key, using synthetic images")
		return image.NewSynthetic(0), nil
	}
	gen, err := image.NewGemini(ctx, key, s.GeminiModel, logger)
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func buildVideo(ctx context.Context, s Settings, keys KeyLookup, logger zerolog.Logger) (providers.Generator, error) {
	switch s.VideoMode {
	case ModeSynthetic:
		return video.NewSynthetic(0), nil
	case ModeAuto, ModeRunway, "":
	default:
		return nil, fmt.Errorf("unknown video provider %q", s.VideoMode)
	}
	key, err := lookup(ctx, keys, ModeRunway, s.RunwayAPIKey)
	if err != nil {
		return nil, err
	}
	if key == "" {
		if s.VideoMode == ModeRunway {
			return nil, fmt.Errorf("video provider runway: no API key configured")
		}
		logger.Warn().Msg("no Runway API key, using synthetic videos")
		return video.NewSynthetic(0), nil
	}
	gen, err := video.NewRunway(video.RunwayOptions{
		APIKey:        key,
		BaseURL:       s.RunwayBaseURL,
		Model:         s.RunwayModel,
		RatePerMinute: s.RunwayPerMinute,
		Logger:        logger,
	})
	if err != nil {
		return nil, err
	}
	return gen, nil
}

func lookup(ctx context.Context, keys KeyLookup, provider, fromEnv string) (string, error) {
	if keys == nil {
		return fromEnv, nil
	}
	key, err := keys(ctx, provider, fromEnv)
	if err != nil {
		return "", fmt.Errorf("resolve %s api key: %w", provider, err)
	}
	return key, nil
}
