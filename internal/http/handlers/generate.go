package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"igpt/internal/composer"
	"igpt/internal/domain"
	"igpt/internal/middleware"
	"igpt/internal/selection"
)

type composeRequest struct {
	Text string `json:"text"`
}

// generateResponse carries Applied=false when the session was reset while the
// provider was working.
type generateResponse struct {
	Asset   domain.AssetReference    `json:"asset"`
	Request domain.GenerationRequest `json:"request"`
	Applied bool                     `json:"applied"`
	Session selection.SessionView    `json:"session"`
}

// Compose previews the request a submit would send, without dispatching it.
func (a *App) Compose(w http.ResponseWriter, r *http.Request) {
	var body composeRequest
	if err := a.decode(r, &body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	lang := middleware.LocaleFromContext(r.Context())
	var req domain.GenerationRequest
	_, err := a.Sessions.Update(chi.URLParam(r, "id"), a.currentUserID(r), func(st *selection.State) error {
		var err error
		req, err = composer.Compose(body.Text, st, lang)
		return err
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, req)
}

// Generate composes the request from the session's selection, dispatches it
// and records the asset in the user's history. Only one generation per
// session may run at a time.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	var body composeRequest
	if err := a.decode(r, &body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	sessionID := chi.URLParam(r, "id")
	userID := a.currentUserID(r)
	lang := middleware.LocaleFromContext(r.Context())

	var req domain.GenerationRequest
	token, err := a.Sessions.BeginDispatch(sessionID, userID, func(st *selection.State) error {
		var err error
		req, err = composer.Compose(body.Text, st, lang)
		return err
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	log := a.Logger.With().
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Str("session_id", sessionID).
		Str("user_id", userID).
		Str("category", req.Metadata.CategoryID).
		Logger()

	asset, err := a.dispatch(r.Context(), req)
	if err == nil {
		asset.UserID = userID
		asset.SessionID = sessionID
		if saveErr := a.Assets.Save(r.Context(), asset); saveErr != nil {
			err = saveErr
		}
	}
	if err != nil {
		a.Sessions.CompleteDispatch(sessionID, token, nil, err)
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			log.Warn().Str("error_kind", string(genErr.Kind)).Msg("generate: provider failure")
		} else {
			log.Error().Err(err).Msg("generate: failed")
		}
		// a malformed request past composition is a server fault
		if errors.Is(err, domain.ErrInvalidRequest) {
			a.error(w, http.StatusInternalServerError, "internal", "generation failed, please try again")
			return
		}
		a.writeError(w, r, err)
		return
	}

	applied := a.Sessions.CompleteDispatch(sessionID, token, &asset, nil)
	if !applied {
		log.Info().Str("asset_id", asset.ID).Msg("generate: session reset during dispatch, result kept in history only")
	}
	resp := generateResponse{Asset: asset, Request: req, Applied: applied}
	if view, err := a.Sessions.Get(sessionID, userID); err == nil {
		resp.Session = view
	}
	a.json(w, http.StatusCreated, resp)
}

func (a *App) dispatch(ctx context.Context, req domain.GenerationRequest) (domain.AssetReference, error) {
	ctx, cancel := context.WithTimeout(ctx, a.dispatchTimeout())
	defer cancel()
	return a.Dispatcher.Dispatch(ctx, req)
}
