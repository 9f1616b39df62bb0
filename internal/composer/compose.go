// Package composer turns a selection and the user's free text into a
// GenerationRequest. It performs no I/O.
package composer

import (
	"fmt"
	"strings"

	"igpt/internal/catalog"
	"igpt/internal/domain"
	"igpt/internal/selection"
)

const (
	// QualitySuffix closes every composed prompt.
	QualitySuffix = "high quality, professional design"
	palettePrefix = "color palette: "
	separator     = ", "
)

// Compose builds the final prompt and dimensions for the current selection.
// Text is never truncated or rewritten beyond trimming surrounding whitespace.
// A category with sub-formats cannot be composed until one is chosen.
func Compose(text string, st *selection.State, lang string) (domain.GenerationRequest, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.GenerationRequest{}, fmt.Errorf("compose: %w", domain.ErrEmptyPrompt)
	}

	lang = catalog.Language(lang)
	cat := st.Category()
	if cat != nil && !st.Ready() {
		return domain.GenerationRequest{}, fmt.Errorf("compose: category %q needs a sub-format: %w", cat.ID, domain.ErrInvalidSelection)
	}
	meta := domain.GenerationMetadata{
		Language:  lang,
		MediaKind: domain.MediaKindImage,
		UserText:  text,
	}
	if cat != nil {
		meta.CategoryID = cat.ID
		meta.ExpertMode = st.ExpertMode(cat.ID)
		if cat.Kind != "" {
			meta.MediaKind = cat.Kind
		}
	}

	if cat != nil && cat.FreeformOverride {
		return domain.GenerationRequest{
			Prompt:     join(text, QualitySuffix),
			Dimensions: domain.DefaultDimensions,
			Metadata:   meta,
		}, nil
	}

	parts := []string{text}
	if cat != nil && !st.ExpertMode(cat.ID) {
		parts = append(parts, cat.BasePrompt.Exact(lang))
	}
	if sf := st.Subformat(); sf != nil {
		parts = append(parts, sf.Prompt.In(lang))
		meta.SubformatID = sf.ID
	}
	if o := st.Orientation(); o != nil {
		meta.OrientationID = o.ID
	}
	if style := st.Style(); style != nil {
		parts = append(parts, style.Prompt.In(lang))
		meta.StyleName = style.Name.In(lang)
	}
	if p := st.Palette(); p != nil && len(p.Colors) > 0 {
		parts = append(parts, PaletteClause(p))
		meta.PaletteColors = append([]string(nil), p.Colors...)
	}
	parts = append(parts, QualitySuffix)

	return domain.GenerationRequest{
		Prompt:     join(parts...),
		Dimensions: ResolveDimensions(st),
		Metadata:   meta,
	}, nil
}

// ResolveDimensions picks the orientation override, then the sub-format size,
// then the default square.
func ResolveDimensions(st *selection.State) domain.Dimensions {
	if cat := st.Category(); cat != nil && cat.FreeformOverride {
		return domain.DefaultDimensions
	}
	if o := st.Orientation(); o != nil && o.Dimensions.Valid() {
		return o.Dimensions
	}
	if sf := st.Subformat(); sf != nil && sf.Dimensions.Valid() {
		return sf.Dimensions
	}
	return domain.DefaultDimensions
}

// PaletteClause names the raw color values of p.
func PaletteClause(p *catalog.Palette) string {
	return palettePrefix + strings.Join(p.Colors, separator)
}

func join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, separator)
}
