package dispatch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"igpt/internal/domain"
	"igpt/internal/providers"
)

type stubGenerator struct {
	name  string
	media *providers.Media
	err   error
	calls []providers.GenerateRequest
}

func (s *stubGenerator) Name() string { return s.name }

func (s *stubGenerator) Generate(_ context.Context, req providers.GenerateRequest) (*providers.Media, error) {
	s.calls = append(s.calls, req)
	return s.media, s.err
}

type memoryAssets struct {
	puts map[string][]byte
}

func (m *memoryAssets) Put(_ context.Context, key string, data []byte) (string, error) {
	if m.puts == nil {
		m.puts = make(map[string][]byte)
	}
	m.puts[key] = data
	return "https://assets.test/" + key, nil
}

func validRequest(kind domain.MediaKind) domain.GenerationRequest {
	return domain.GenerationRequest{
		Prompt:     "a mountain lake, high quality, professional design",
		Dimensions: domain.MustDimensions("1280x720"),
		Metadata:   domain.GenerationMetadata{CategoryID: "photo", MediaKind: kind},
	}
}

func TestDispatchHostedURL(t *testing.T) {
	gen := &stubGenerator{name: "stub", media: &providers.Media{URL: "https://cdn/x.png", MIME: "image/png", Width: 1024, Height: 1024}}
	d := New(map[domain.MediaKind]providers.Generator{domain.MediaKindImage: gen}, nil, zerolog.Nop())

	asset, err := d.Dispatch(context.Background(), validRequest(domain.MediaKindImage))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if asset.URL != "https://cdn/x.png" || asset.Provider != "stub" || asset.Kind != domain.MediaKindImage {
		t.Fatalf("unexpected asset %+v", asset)
	}
	if asset.Dimensions != domain.MustDimensions("1280x720") {
		t.Fatalf("asset dimensions = %s, want requested 1280x720", asset.Dimensions)
	}
	if len(gen.calls) != 1 || gen.calls[0].Width != 1280 || gen.calls[0].Height != 720 || gen.calls[0].RequestID != asset.ID {
		t.Fatalf("provider calls = %+v", gen.calls)
	}
	if asset.Metadata.CategoryID != "photo" {
		t.Fatalf("metadata not carried: %+v", asset.Metadata)
	}
}

func TestDispatchStoresInlineMedia(t *testing.T) {
	gen := &stubGenerator{name: "stub", media: &providers.Media{MIME: "image/jpeg", Data: []byte{1, 2, 3}}}
	store := &memoryAssets{}
	d := New(map[domain.MediaKind]providers.Generator{domain.MediaKindImage: gen}, store, zerolog.Nop())

	asset, err := d.Dispatch(context.Background(), validRequest(""))
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	key := "image/" + asset.ID + ".jpg"
	if _, ok := store.puts[key]; !ok {
		t.Fatalf("store keys = %v, want %s", store.puts, key)
	}
	if asset.URL != "https://assets.test/"+key {
		t.Fatalf("URL = %q", asset.URL)
	}
}

func TestDispatchNeverCaches(t *testing.T) {
	gen := &stubGenerator{name: "stub", media: &providers.Media{URL: "https://cdn/x.png"}}
	d := New(map[domain.MediaKind]providers.Generator{domain.MediaKindImage: gen}, nil, zerolog.Nop())
	req := validRequest(domain.MediaKindImage)
	first, err := d.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	second, err := d.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if first.ID == second.ID || len(gen.calls) != 2 {
		t.Fatalf("identical requests were deduplicated: %s %s calls=%d", first.ID, second.ID, len(gen.calls))
	}
}

func TestDispatchRoutesByKind(t *testing.T) {
	img := &stubGenerator{name: "img", media: &providers.Media{URL: "u"}}
	vid := &stubGenerator{name: "vid", media: &providers.Media{URL: "v"}}
	d := New(map[domain.MediaKind]providers.Generator{domain.MediaKindImage: img, domain.MediaKindVideo: vid}, nil, zerolog.Nop())
	asset, err := d.Dispatch(context.Background(), validRequest(domain.MediaKindVideo))
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if asset.Provider != "vid" || len(img.calls) != 0 {
		t.Fatalf("video request routed to %s", asset.Provider)
	}
}

func TestDispatchRejectsInvalidRequests(t *testing.T) {
	gen := &stubGenerator{name: "stub", media: &providers.Media{URL: "u"}}
	d := New(map[domain.MediaKind]providers.Generator{domain.MediaKindImage: gen}, nil, zerolog.Nop())

	cases := map[string]domain.GenerationRequest{
		"blank prompt": {Prompt: "   ", Dimensions: domain.DefaultDimensions},
		"zero width":   {Prompt: "x", Dimensions: domain.Dimensions{Width: 0, Height: 10}},
		"negative":     {Prompt: "x", Dimensions: domain.Dimensions{Width: 10, Height: -1}},
		"unknown kind": {Prompt: "x", Dimensions: domain.DefaultDimensions, Metadata: domain.GenerationMetadata{MediaKind: domain.MediaKindVideo}},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := d.Dispatch(context.Background(), req); !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("Dispatch() error = %v, want ErrInvalidRequest", err)
			}
		})
	}
	if len(gen.calls) != 0 {
		t.Fatalf("provider called for invalid requests")
	}
}

func TestDispatchClassifiesProviderFailures(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domain.GenerationErrorKind
	}{
		{"rate limit", fmt.Errorf("quota: %w", domain.ErrRateLimited), domain.GenerationErrorRateLimit},
		{"content policy", fmt.Errorf("blocked: %w", domain.ErrContentPolicy), domain.GenerationErrorContentPolicy},
		{"network", &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, domain.GenerationErrorNetwork},
		{"deadline", context.DeadlineExceeded, domain.GenerationErrorNetwork},
		{"other", errors.New("internal server error"), domain.GenerationErrorProvider},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &stubGenerator{name: "stub", err: tc.err}
			d := New(map[domain.MediaKind]providers.Generator{domain.MediaKindImage: gen}, nil, zerolog.Nop())
			_, err := d.Dispatch(context.Background(), validRequest(domain.MediaKindImage))
			var genErr *domain.GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("Dispatch() error = %v, want GenerationError", err)
			}
			if genErr.Kind != tc.want {
				t.Fatalf("Kind = %s, want %s", genErr.Kind, tc.want)
			}
			if !strings.Contains(genErr.Message, tc.err.Error()) {
				t.Fatalf("Message = %q does not carry provider message", genErr.Message)
			}
			if len(gen.calls) != 1 {
				t.Fatalf("provider called %d times, want exactly 1", len(gen.calls))
			}
		})
	}
}

func TestDispatchEmptyMedia(t *testing.T) {
	gen := &stubGenerator{name: "stub", media: &providers.Media{}}
	d := New(map[domain.MediaKind]providers.Generator{domain.MediaKindImage: gen}, nil, zerolog.Nop())
	_, err := d.Dispatch(context.Background(), validRequest(domain.MediaKindImage))
	var genErr *domain.GenerationError
	if !errors.As(err, &genErr) || genErr.Kind != domain.GenerationErrorProvider {
		t.Fatalf("Dispatch() error = %v", err)
	}
}
