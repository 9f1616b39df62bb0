package video

import (
	"bytes"
	"context"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/gif"
	"time"

	"igpt/internal/providers"
)

const (
	syntheticFrames  = 12
	syntheticMaxSide = 320
)

// Synthetic renders a short looping GIF at the requested aspect ratio. It
// stands in for the video provider when no API key is configured.
type Synthetic struct {
	delay time.Duration
}

func NewSynthetic(delay time.Duration) *Synthetic {
	return &Synthetic{delay: delay}
}

func (s *Synthetic) Name() string { return "synthetic-video" }

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
	width, height := scaleDown(req.Width, req.Height, syntheticMaxSide)
	data, err := renderLoop(width, height, req.RequestID+"|"+req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("render loop: %w", err)
	}
	return &providers.Media{
		MIME:   "image/gif",
		Data:   data,
		Width:  width,
		Height: height,
	}, nil
}

func renderLoop(width, height int, seed string) ([]byte, error) {
	h := fnv.New32a()
	h.Write([]byte(seed))
	sum := h.Sum32()
	palette := color.Palette{
		color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255},
		color.RGBA{R: ^uint8(sum), G: ^uint8(sum >> 8), B: ^uint8(sum >> 16), A: 255},
	}

	band := max(4, width/8)
	anim := &gif.GIF{LoopCount: 0}
	for f := 0; f < syntheticFrames; f++ {
		frame := image.NewPaletted(image.Rect(0, 0, width, height), palette)
		offset := f * band * 2 / syntheticFrames
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if ((x+y+offset)/band)%2 == 1 {
					frame.SetColorIndex(x, y, 1)
				}
			}
		}
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, 8)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func scaleDown(width, height, maxSide int) (int, int) {
	if width <= 0 || height <= 0 {
		return maxSide, maxSide
	}
	if width <= maxSide && height <= maxSide {
		return width, height
	}
	if width >= height {
		return maxSide, max(1, height*maxSide/width)
	}
	return max(1, width*maxSide/height), maxSide
}

var _ providers.Generator = (*Synthetic)(nil)
