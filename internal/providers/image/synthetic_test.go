package image

import (
	"bytes"
	"context"
	stdimage "image"
	_ "image/png"
	"testing"
	"time"

	"igpt/internal/providers"
)

func TestSyntheticRendersRequestedSize(t *testing.T) {
	gen := NewSynthetic(0)
	media, err := gen.Generate(context.Background(), providers.GenerateRequest{
		Prompt:    "a mountain lake",
		Width:     1200,
		Height:    630,
		RequestID: "req-1",
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if media.MIME != "image/png" || media.URL != "" {
		t.Fatalf("unexpected media %+v", media)
	}
	cfg, format, err := stdimage.DecodeConfig(bytes.NewReader(media.Data))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if format != "png" || cfg.Width != 1200 || cfg.Height != 630 {
		t.Fatalf("decoded %s %dx%d", format, cfg.Width, cfg.Height)
	}
}

func TestSyntheticIsDeterministic(t *testing.T) {
	req := providers.GenerateRequest{Prompt: "p", Width: 64, Height: 64, RequestID: "r"}
	a, err := NewSynthetic(0).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, err := NewSynthetic(0).Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !bytes.Equal(a.Data, b.Data) {
		t.Fatalf("same request produced different bytes")
	}
	req.RequestID = "other"
	c, _ := NewSynthetic(0).Generate(context.Background(), req)
	if bytes.Equal(a.Data, c.Data) {
		t.Fatalf("different request ids produced identical bytes")
	}
}

func TestSyntheticHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSynthetic(time.Second).Generate(ctx, providers.GenerateRequest{Width: 8, Height: 8}); err == nil {
		t.Fatalf("expected context error")
	}
}
