package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidSelection    = errors.New("invalid selection")
	ErrExpertModeLocked    = errors.New("expert mode locked")
	ErrEmptyPrompt         = errors.New("empty prompt")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrDispatchInFlight    = errors.New("dispatch already in flight")
	ErrConcurrentUpdate    = errors.New("concurrent update")
	ErrUnsupportedPlan     = errors.New("unsupported plan")

	// Provider failures. Providers wrap ErrRateLimited and ErrContentPolicy so the
	// dispatcher can classify them without knowing provider specific codes.
	ErrProviderFailure = errors.New("provider failure")
	ErrRateLimited     = errors.New("rate limited")
	ErrContentPolicy   = errors.New("content policy rejection")
)

// GenerationErrorKind classifies an external provider failure.
type GenerationErrorKind string

const (
	GenerationErrorNetwork       GenerationErrorKind = "network"
	GenerationErrorRateLimit     GenerationErrorKind = "rate_limit"
	GenerationErrorContentPolicy GenerationErrorKind = "content_policy"
	GenerationErrorProvider      GenerationErrorKind = "provider"
)

// GenerationError is returned by the dispatcher when the provider call fails.
// Message is meant to be shown to the user as-is.
type GenerationError struct {
	Kind    GenerationErrorKind
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("generation failed (%s)", e.Kind)
	}
	return fmt.Sprintf("generation failed (%s): %s", e.Kind, e.Message)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrProviderFailure) match every generation error.
func (e *GenerationError) Is(target error) bool {
	return target == ErrProviderFailure
}
