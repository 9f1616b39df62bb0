// Package providers defines the contract shared by external image and video
// generation backends.
package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// GenerateRequest is the provider-facing view of a composed request.
type GenerateRequest struct {
	Prompt    string
	Width     int
	Height    int
	RequestID string
}

// AspectRatio reduces the requested size to its simplest ratio, e.g. "16:9".
func (r GenerateRequest) AspectRatio() string {
	if r.Width <= 0 || r.Height <= 0 {
		return "1:1"
	}
	g := gcd(r.Width, r.Height)
	return fmt.Sprintf("%d:%d", r.Width/g, r.Height/g)
}

// Media is what a provider returns: either a hosted URL or inline bytes.
type Media struct {
	URL    string
	MIME   string
	Data   []byte
	Width  int
	Height int
}

// Generator is implemented by every generation backend.
type Generator interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (*Media, error)
}

// IsNetworkError reports transport failures such as timeouts or refused connections.
func IsNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
