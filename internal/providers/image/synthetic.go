package image

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"time"

	"igpt/internal/providers"
)

// Synthetic renders a deterministic striped PNG at the requested size. It is
// used when no image API key is configured so the rest of the pipeline stays
// exercised in local and CI environments.
type Synthetic struct {
	delay time.Duration
}

func NewSynthetic(delay time.Duration) *Synthetic {
	return &Synthetic{delay: delay}
}

func (s *Synthetic) Name() string { return "synthetic" }

func (s *Synthetic) Generate(ctx context.Context, req providers.GenerateRequest) (*providers.Media, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seed := deterministicSeed(req.RequestID, req.Prompt, req.Width, req.Height)
	data, err := RenderPlaceholder(req.Width, req.Height, seed)
	if err != nil {
		return nil, fmt.Errorf("render placeholder: %w", err)
	}
	return &providers.Media{
		MIME:   "image/png",
		Data:   data,
		Width:  req.Width,
		Height: req.Height,
	}, nil
}

// RenderPlaceholder draws horizontal stripes and a diagonal hatch whose colors
// derive from seed.
func RenderPlaceholder(width, height int, seed string) ([]byte, error) {
	if width <= 0 {
		width = 1024
	}
	if height <= 0 {
		height = 1024
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{colorFromSeed(seed, 0)}, image.Point{}, draw.Src)

	accent := &image.Uniform{colorFromSeed(seed, 1)}
	stripeHeight := max(32, height/12)
	for y := 0; y < height; y += stripeHeight * 2 {
		stripe := image.Rect(0, y, width, min(height, y+stripeHeight))
		draw.Draw(img, stripe, accent, image.Point{}, draw.Over)
	}

	diagonal := colorFromSeed(seed, 2)
	for x := 0; x < width; x += max(16, width/32) {
		for y := 0; y < height && x+y < width; y++ {
			img.SetRGBA(x+y, y, diagonal)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func colorFromSeed(seed string, shift int) color.RGBA {
	if len(seed) < 6 {
		seed = "000000"
	}
	doubled := seed + seed
	start := (shift * 6) % len(seed)
	segment := doubled[start : start+6]
	return color.RGBA{
		R: parseHexByte(segment[0:2]),
		G: parseHexByte(segment[2:4]),
		B: parseHexByte(segment[4:6]),
		A: 255,
	}
}

func parseHexByte(s string) uint8 {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0
	}
	return uint8(v)
}

func deterministicSeed(parts ...any) string {
	hasher := sha256.New()
	for _, part := range parts {
		fmt.Fprintf(hasher, "%v|", part)
	}
	return hex.EncodeToString(hasher.Sum(nil))[:16]
}

var _ providers.Generator = (*Synthetic)(nil)
