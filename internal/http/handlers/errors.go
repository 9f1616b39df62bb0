package handlers

import (
	"errors"
	"net/http"

	"igpt/internal/domain"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domain.ErrInvalidSelection, http.StatusUnprocessableEntity, "invalid_selection"},
	{domain.ErrEmptyPrompt, http.StatusUnprocessableEntity, "empty_prompt"},
	{domain.ErrInvalidRequest, http.StatusUnprocessableEntity, "invalid_request"},
	{domain.ErrUnsupportedPlan, http.StatusUnprocessableEntity, "unsupported_plan"},
	{domain.ErrExpertModeLocked, http.StatusConflict, "expert_mode_locked"},
	{domain.ErrDispatchInFlight, http.StatusConflict, "dispatch_in_flight"},
	{domain.ErrConcurrentUpdate, http.StatusConflict, "concurrent_update"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrInsufficientCredits, http.StatusPaymentRequired, "insufficient_credits"},
	{domain.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
	{domain.ErrForbidden, http.StatusForbidden, "forbidden"},
}

// writeError translates domain errors into the JSON error envelope. Provider
// messages are passed through verbatim so the chat can show them.
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var genErr *domain.GenerationError
	if errors.As(err, &genErr) {
		status := http.StatusBadGateway
		if genErr.Kind == domain.GenerationErrorRateLimit {
			status = http.StatusTooManyRequests
		}
		a.error(w, status, "generation_"+string(genErr.Kind), genErr.Message)
		return
	}
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			a.error(w, m.status, m.code, err.Error())
			return
		}
	}
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("unhandled error")
	a.error(w, http.StatusInternalServerError, "internal", "internal server error")
}
