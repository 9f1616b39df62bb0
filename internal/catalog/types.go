package catalog

import (
	"strings"

	"igpt/internal/domain"
)

const (
	LangEnglish = "en"
	LangFrench  = "fr"
)

// SupportedLanguages lists the UI languages every catalog entry is translated to.
// The first entry is the fallback.
var SupportedLanguages = []string{LangEnglish, LangFrench}

// Language returns lang when it is supported, otherwise the fallback language.
func Language(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	for _, supported := range SupportedLanguages {
		if lang == supported {
			return lang
		}
	}
	return SupportedLanguages[0]
}

// Text maps a language code to a display string or prompt fragment.
type Text map[string]string

// In returns the text for lang, falling back to English then French.
func (t Text) In(lang string) string {
	if v, ok := t[lang]; ok {
		return v
	}
	for _, fallback := range SupportedLanguages {
		if v, ok := t[fallback]; ok {
			return v
		}
	}
	return ""
}

// Exact returns the text for lang only, with no fallback.
func (t Text) Exact(lang string) string {
	return t[lang]
}

// ExpertModePolicy says whether a category's expert mode may be toggled.
type ExpertModePolicy string

const (
	ExpertModeToggleable    ExpertModePolicy = "toggleable"
	ExpertModeFixedAssisted ExpertModePolicy = "fixed_assisted"
	ExpertModeFixedExpert   ExpertModePolicy = "fixed_expert"
)

// Locked reports whether the category's expert mode is authoritative.
func (p ExpertModePolicy) Locked() bool {
	return p == ExpertModeFixedAssisted || p == ExpertModeFixedExpert
}

// Category is one generation intent bucket. Entries are read-only once loaded.
type Category struct {
	ID          string
	Name        Text
	Description Text
	// BasePrompt is the assistance fragment injected in assisted mode. Empty for free-form categories.
	BasePrompt Text
	ExpertMode ExpertModePolicy
	// DefaultExpertMode seeds the per-session toggle of toggleable categories.
	DefaultExpertMode bool
	// FreeformOverride disables every prompt augmentation except the quality clause.
	FreeformOverride bool
	Kind             domain.MediaKind
	Subformats       []Subformat
}

// HasSubformats reports whether the category offers concrete output shapes.
func (c *Category) HasSubformats() bool {
	return len(c.Subformats) > 0
}

// Subformat returns the sub-format with the given id, if it belongs to the category.
func (c *Category) Subformat(id string) (*Subformat, bool) {
	for i := range c.Subformats {
		if c.Subformats[i].ID == id {
			return &c.Subformats[i], true
		}
	}
	return nil, false
}

// InitialExpertMode is the value a fresh session starts with.
func (c *Category) InitialExpertMode() bool {
	switch c.ExpertMode {
	case ExpertModeFixedExpert:
		return true
	case ExpertModeFixedAssisted:
		return false
	default:
		return c.DefaultExpertMode
	}
}

// Subformat is a concrete output shape within a category.
type Subformat struct {
	ID           string
	Name         Text
	Prompt       Text
	Dimensions   domain.Dimensions
	Orientations []Orientation
}

// Orientation returns the orientation with the given id, if it belongs to the sub-format.
func (s *Subformat) Orientation(id string) (*Orientation, bool) {
	for i := range s.Orientations {
		if s.Orientations[i].ID == id {
			return &s.Orientations[i], true
		}
	}
	return nil, false
}

// Orientation refines a sub-format and overrides its dimensions.
type Orientation struct {
	ID         string
	Name       Text
	Dimensions domain.Dimensions
}

// Style is a category independent prompt fragment.
type Style struct {
	ID     string
	Name   Text
	Prompt Text
}

// Palette is an ordered list of hex colors appended to prompts as a textual constraint.
type Palette struct {
	ID     string
	Name   Text
	Colors []string
}
