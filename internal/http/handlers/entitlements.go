package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"igpt/internal/domain"
	"igpt/internal/entitlement"
	"igpt/internal/middleware"
)

type grantRequest struct {
	Credits int `json:"credits"`
}

type planRequest struct {
	Plan string `json:"plan"`
}

func (a *App) MyEntitlement(w http.ResponseWriter, r *http.Request) {
	ent, err := a.Entitlements.Get(r.Context(), a.currentUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"entitlement":  ent,
		"balance":      ent.Balance(),
		"unlimited":    ent.Unlimited(),
		"can_download": entitlement.CanConsume(ent),
	})
}

// GrantCredits adds paid credits to a user. Admin only.
func (a *App) GrantCredits(w http.ResponseWriter, r *http.Request) {
	var body grantRequest
	if err := a.decode(r, &body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if body.Credits <= 0 {
		a.writeError(w, r, fmt.Errorf("credits must be positive: %w", domain.ErrInvalidRequest))
		return
	}
	target := chi.URLParam(r, "user_id")
	ent, err := a.Entitlements.Grant(r.Context(), target, body.Credits)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.Logger.Info().
		Str("admin_id", middleware.UserIDFromContext(r.Context())).
		Str("user_id", target).
		Int("credits", body.Credits).
		Msg("credits granted")
	a.json(w, http.StatusOK, ent)
}

// SetPlan changes a user's subscription. Admin only.
func (a *App) SetPlan(w http.ResponseWriter, r *http.Request) {
	var body planRequest
	if err := a.decode(r, &body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	plan, err := entitlement.ParseSubscription(body.Plan)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	target := chi.URLParam(r, "user_id")
	ent, err := a.Entitlements.Subscribe(r.Context(), target, plan)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.Logger.Info().
		Str("admin_id", middleware.UserIDFromContext(r.Context())).
		Str("user_id", target).
		Str("plan", string(plan)).
		Msg("plan changed")
	a.json(w, http.StatusOK, ent)
}
