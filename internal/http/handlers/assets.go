package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

func (a *App) ListAssets(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	items, err := a.Assets.ListByUser(r.Context(), userID, limit, offset)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "limit": limit, "offset": offset})
}

// DownloadAsset is the only place credits are spent. Each call consumes one
// credit unless the user is on the unlimited plan; the balance is untouched
// when the gate refuses.
func (a *App) DownloadAsset(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	asset, err := a.Assets.GetForUser(r.Context(), chi.URLParam(r, "id"), userID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	ent, err := a.Entitlements.Consume(r.Context(), userID)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.Logger.Info().
		Str("user_id", userID).
		Str("asset_id", asset.ID).
		Int("balance", ent.Balance()).
		Str("plan", string(ent.Subscription)).
		Msg("asset download granted")
	a.json(w, http.StatusOK, map[string]any{
		"url":         asset.URL,
		"mime":        asset.MIME,
		"kind":        asset.Kind,
		"dimensions":  asset.Dimensions,
		"entitlement": ent,
	})
}
