package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultDimensions is used when neither a sub-format nor an orientation is active.
var DefaultDimensions = Dimensions{Width: 1080, Height: 1080}

// Dimensions is a pixel width × height pair.
type Dimensions struct {
	Width  int
	Height int
}

// String formats the pair as "WIDTHxHEIGHT".
func (d Dimensions) String() string {
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Valid reports whether both sides are positive.
func (d Dimensions) Valid() bool {
	return d.Width > 0 && d.Height > 0
}

// IsZero reports whether the pair is unset.
func (d Dimensions) IsZero() bool {
	return d.Width == 0 && d.Height == 0
}

// ParseDimensions parses "WIDTHxHEIGHT".
func ParseDimensions(s string) (Dimensions, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Dimensions{}, fmt.Errorf("dimensions %q: missing separator", s)
	}
	width, err := strconv.Atoi(w)
	if err != nil {
		return Dimensions{}, fmt.Errorf("dimensions %q: width: %w", s, err)
	}
	height, err := strconv.Atoi(h)
	if err != nil {
		return Dimensions{}, fmt.Errorf("dimensions %q: height: %w", s, err)
	}
	d := Dimensions{Width: width, Height: height}
	if !d.Valid() {
		return Dimensions{}, fmt.Errorf("dimensions %q: must be positive", s)
	}
	return d, nil
}

// MustDimensions is ParseDimensions for static data.
func MustDimensions(s string) Dimensions {
	d, err := ParseDimensions(s)
	if err != nil {
		panic(err)
	}
	return d
}

func (d Dimensions) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dimensions) UnmarshalText(b []byte) error {
	parsed, err := ParseDimensions(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
