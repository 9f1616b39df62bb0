// Package dispatch hands composed generation requests to the configured
// provider for their media kind and normalizes the outcome.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"igpt/internal/domain"
	"igpt/internal/providers"
	"igpt/internal/storage"
)

// AssetWriter stores inline media bytes and returns their public URL.
type AssetWriter interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
}

// Dispatcher routes requests to providers. It never retries and never caches:
// every call is a fresh provider request with a fresh asset id.
type Dispatcher struct {
	generators map[domain.MediaKind]providers.Generator
	assets     AssetWriter
	logger     zerolog.Logger
	now        func() time.Time
}

func New(generators map[domain.MediaKind]providers.Generator, assets AssetWriter, logger zerolog.Logger) *Dispatcher {
	routes := make(map[domain.MediaKind]providers.Generator, len(generators))
	for kind, gen := range generators {
		if gen != nil {
			routes[kind] = gen
		}
	}
	return &Dispatcher{
		generators: routes,
		assets:     assets,
		logger:     logger,
		now:        time.Now,
	}
}

// Dispatch submits req and returns the resulting asset. Provider failures come
// back as *domain.GenerationError; a malformed request as domain.ErrInvalidRequest.
// The returned reference carries the requested dimensions.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.GenerationRequest) (domain.AssetReference, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return domain.AssetReference{}, fmt.Errorf("dispatch: empty prompt: %w", domain.ErrInvalidRequest)
	}
	if !req.Dimensions.Valid() {
		return domain.AssetReference{}, fmt.Errorf("dispatch: dimensions %s: %w", req.Dimensions, domain.ErrInvalidRequest)
	}
	kind := req.Metadata.MediaKind
	if kind == "" {
		kind = domain.MediaKindImage
	}
	gen, ok := d.generators[kind]
	if !ok {
		return domain.AssetReference{}, fmt.Errorf("dispatch: no provider for %q: %w", kind, domain.ErrInvalidRequest)
	}

	id := uuid.NewString()
	log := d.logger.With().
		Str("asset_id", id).
		Str("provider", gen.Name()).
		Str("kind", string(kind)).
		Str("dimensions", req.Dimensions.String()).
		Logger()

	started := d.now()
	media, err := gen.Generate(ctx, providers.GenerateRequest{
		Prompt:    req.Prompt,
		Width:     req.Dimensions.Width,
		Height:    req.Dimensions.Height,
		RequestID: id,
	})
	if err != nil {
		genErr := Classify(err)
		log.Warn().Err(err).Str("error_kind", string(genErr.Kind)).Msg("dispatch: provider failed")
		return domain.AssetReference{}, genErr
	}
	if media == nil || (media.URL == "" && len(media.Data) == 0) {
		log.Warn().Msg("dispatch: provider returned no media")
		return domain.AssetReference{}, &domain.GenerationError{
			Kind:    domain.GenerationErrorProvider,
			Message: "the provider returned no media",
		}
	}

	url := media.URL
	if url == "" {
		if d.assets == nil {
			return domain.AssetReference{}, errors.New("dispatch: inline media returned but no asset store configured")
		}
		key := fmt.Sprintf("%s/%s%s", kind, id, storage.ExtensionFor(media.MIME))
		url, err = d.assets.Put(ctx, key, media.Data)
		if err != nil {
			return domain.AssetReference{}, fmt.Errorf("dispatch: store media: %w", err)
		}
	}

	log.Info().Dur("took", d.now().Sub(started)).Msg("dispatch: asset generated")

	return domain.AssetReference{
		ID:         id,
		Kind:       kind,
		URL:        url,
		MIME:       media.MIME,
		Prompt:     req.Prompt,
		Dimensions: req.Dimensions,
		Metadata:   req.Metadata,
		Provider:   gen.Name(),
		CreatedAt:  d.now().UTC(),
	}, nil
}

// Classify maps a provider error onto the generation error taxonomy.
func Classify(err error) *domain.GenerationError {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	kind := domain.GenerationErrorProvider
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		kind = domain.GenerationErrorRateLimit
	case errors.Is(err, domain.ErrContentPolicy):
		kind = domain.GenerationErrorContentPolicy
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), providers.IsNetworkError(err):
		kind = domain.GenerationErrorNetwork
	}
	return &domain.GenerationError{Kind: kind, Message: err.Error(), Err: err}
}
