package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"igpt/internal/catalog"
	"igpt/internal/selection"
)

type selectRequest struct {
	ID string `json:"id"`
}

func (a *App) CreateSession(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusCreated, a.Sessions.Create(a.currentUserID(r)))
}

func (a *App) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.Sessions.Get(chi.URLParam(r, "id"), a.currentUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, view)
}

func (a *App) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := a.Sessions.Delete(chi.URLParam(r, "id"), a.currentUserID(r)); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ResetSession starts a new conversation in place. A dispatch still running
// for the session will not be applied to it.
func (a *App) ResetSession(w http.ResponseWriter, r *http.Request) {
	view, err := a.Sessions.Reset(chi.URLParam(r, "id"), a.currentUserID(r))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, view)
}

// SelectCategory activates a category. An empty id clears the selection.
func (a *App) SelectCategory(w http.ResponseWriter, r *http.Request) {
	a.updateSelection(w, r, func(st *selection.State, id string) error {
		if id == "" {
			st.SelectCategory(nil)
			return nil
		}
		cat, err := a.Catalog.LookupCategory(id)
		if err != nil {
			return err
		}
		st.SelectCategory(cat)
		return nil
	})
}

func (a *App) SelectSubformat(w http.ResponseWriter, r *http.Request) {
	a.updateSelection(w, r, func(st *selection.State, id string) error {
		return st.SelectSubformat(id)
	})
}

func (a *App) SelectOrientation(w http.ResponseWriter, r *http.Request) {
	a.updateSelection(w, r, func(st *selection.State, id string) error {
		return st.SelectOrientation(id)
	})
}

// SelectStyle sets or, with an empty id, clears the style.
func (a *App) SelectStyle(w http.ResponseWriter, r *http.Request) {
	a.updateSelection(w, r, func(st *selection.State, id string) error {
		var style *catalog.Style
		if id != "" {
			var err error
			if style, err = a.Catalog.LookupStyle(id); err != nil {
				return err
			}
		}
		st.SetStyle(style)
		return nil
	})
}

// SelectPalette sets or, with an empty id, clears the palette.
func (a *App) SelectPalette(w http.ResponseWriter, r *http.Request) {
	a.updateSelection(w, r, func(st *selection.State, id string) error {
		var palette *catalog.Palette
		if id != "" {
			var err error
			if palette, err = a.Catalog.LookupPalette(id); err != nil {
				return err
			}
		}
		st.SetPalette(palette)
		return nil
	})
}

// ToggleExpertMode flips the assisted/expert flag of one category.
func (a *App) ToggleExpertMode(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "category_id")
	view, err := a.Sessions.Update(chi.URLParam(r, "id"), a.currentUserID(r), func(st *selection.State) error {
		_, err := st.ToggleExpertMode(categoryID)
		return err
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, view)
}

func (a *App) updateSelection(w http.ResponseWriter, r *http.Request, apply func(*selection.State, string) error) {
	var body selectRequest
	if err := a.decode(r, &body); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	view, err := a.Sessions.Update(chi.URLParam(r, "id"), a.currentUserID(r), func(st *selection.State) error {
		return apply(st, body.ID)
	})
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, view)
}
