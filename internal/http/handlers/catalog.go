package handlers

import (
	"net/http"

	"igpt/internal/catalog"
	"igpt/internal/domain"
	"igpt/internal/middleware"
)

type orientationView struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Dimensions domain.Dimensions `json:"dimensions"`
}

type subformatView struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Dimensions   domain.Dimensions `json:"dimensions"`
	Orientations []orientationView `json:"orientations,omitempty"`
}

type categoryView struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Kind              domain.MediaKind `json:"kind"`
	ExpertMode        string           `json:"expert_mode"`
	DefaultExpertMode bool             `json:"default_expert_mode"`
	Freeform          bool             `json:"freeform"`
	Subformats        []subformatView  `json:"subformats,omitempty"`
}

type styleView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type paletteView struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Colors []string `json:"colors"`
}

// GetCatalog returns the whole catalog localized for the request language.
func (a *App) GetCatalog(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{
		"language":   lang,
		"categories": categoryViews(a.Catalog.Categories(), lang),
		"styles":     styleViews(a.Catalog.Styles(), lang),
		"palettes":   paletteViews(a.Catalog.Palettes(), lang),
	})
}

func (a *App) CatalogStyles(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{"items": styleViews(a.Catalog.Styles(), lang)})
}

func (a *App) CatalogPalettes(w http.ResponseWriter, r *http.Request) {
	lang := middleware.LocaleFromContext(r.Context())
	a.json(w, http.StatusOK, map[string]any{"items": paletteViews(a.Catalog.Palettes(), lang)})
}

func categoryViews(cats []*catalog.Category, lang string) []categoryView {
	out := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		v := categoryView{
			ID:                c.ID,
			Name:              c.Name.In(lang),
			Description:       c.Description.In(lang),
			Kind:              c.Kind,
			ExpertMode:        string(c.ExpertMode),
			DefaultExpertMode: c.InitialExpertMode(),
			Freeform:          c.FreeformOverride,
		}
		for _, sf := range c.Subformats {
			sv := subformatView{ID: sf.ID, Name: sf.Name.In(lang), Dimensions: sf.Dimensions}
			for _, o := range sf.Orientations {
				sv.Orientations = append(sv.Orientations, orientationView{ID: o.ID, Name: o.Name.In(lang), Dimensions: o.Dimensions})
			}
			v.Subformats = append(v.Subformats, sv)
		}
		out = append(out, v)
	}
	return out
}

func styleViews(styles []*catalog.Style, lang string) []styleView {
	out := make([]styleView, 0, len(styles))
	for _, s := range styles {
		out = append(out, styleView{ID: s.ID, Name: s.Name.In(lang)})
	}
	return out
}

func paletteViews(palettes []*catalog.Palette, lang string) []paletteView {
	out := make([]paletteView, 0, len(palettes))
	for _, p := range palettes {
		out = append(out, paletteView{ID: p.ID, Name: p.Name.In(lang), Colors: p.Colors})
	}
	return out
}
