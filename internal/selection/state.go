package selection

import (
	"fmt"

	"igpt/internal/catalog"
	"igpt/internal/domain"
)

// State is one chat session's current, possibly partial, selection.
// It is not safe for concurrent use; Store serializes access per session.
type State struct {
	catalog *catalog.Catalog

	category    *catalog.Category
	subformat   *catalog.Subformat
	orientation *catalog.Orientation
	expertMode  map[string]bool
	style       *catalog.Style
	palette     *catalog.Palette
}

// NewState returns an empty selection with expert modes seeded from the catalog.
func NewState(c *catalog.Catalog) *State {
	s := &State{catalog: c}
	s.Reset()
	return s
}

// Reset clears every field back to the initial empty selection.
func (s *State) Reset() {
	s.category = nil
	s.subformat = nil
	s.orientation = nil
	s.style = nil
	s.palette = nil
	s.expertMode = make(map[string]bool)
	for _, cat := range s.catalog.Categories() {
		s.expertMode[cat.ID] = cat.InitialExpertMode()
	}
}

// SelectCategory makes c the active category and clears the sub-format and
// orientation. It reports whether the selection is immediately ready to compose,
// which is the case for categories without sub-formats.
func (s *State) SelectCategory(c *catalog.Category) bool {
	s.category = c
	s.subformat = nil
	s.orientation = nil
	return c != nil && !c.HasSubformats()
}

// SelectSubformat activates a sub-format of the active category and clears the orientation.
func (s *State) SelectSubformat(id string) error {
	if s.category == nil || !s.category.HasSubformats() {
		return fmt.Errorf("subformat %q: no active category with sub-formats: %w", id, domain.ErrInvalidSelection)
	}
	sf, ok := s.category.Subformat(id)
	if !ok {
		return fmt.Errorf("subformat %q not in category %q: %w", id, s.category.ID, domain.ErrInvalidSelection)
	}
	s.subformat = sf
	s.orientation = nil
	return nil
}

// SelectOrientation activates an orientation of the active sub-format.
func (s *State) SelectOrientation(id string) error {
	if s.subformat == nil || len(s.subformat.Orientations) == 0 {
		return fmt.Errorf("orientation %q: no active sub-format with orientations: %w", id, domain.ErrInvalidSelection)
	}
	o, ok := s.subformat.Orientation(id)
	if !ok {
		return fmt.Errorf("orientation %q not in subformat %q: %w", id, s.subformat.ID, domain.ErrInvalidSelection)
	}
	s.orientation = o
	return nil
}

// ToggleExpertMode flips the expert flag of a toggleable category and returns the new value.
func (s *State) ToggleExpertMode(categoryID string) (bool, error) {
	cat, err := s.catalog.LookupCategory(categoryID)
	if err != nil {
		return false, err
	}
	if cat.ExpertMode.Locked() {
		return s.expertMode[categoryID], fmt.Errorf("category %q: %w", categoryID, domain.ErrExpertModeLocked)
	}
	s.expertMode[categoryID] = !s.expertMode[categoryID]
	return s.expertMode[categoryID], nil
}

// ExpertMode reports whether categoryID is in expert (non-assisted) mode.
func (s *State) ExpertMode(categoryID string) bool {
	return s.expertMode[categoryID]
}

func (s *State) SetStyle(st *catalog.Style) { s.style = st }
func (s *State) SetPalette(p *catalog.Palette) { s.palette = p }

func (s *State) Category() *catalog.Category { return s.category }
func (s *State) Subformat() *catalog.Subformat { return s.subformat }
func (s *State) Orientation() *catalog.Orientation { return s.orientation }
func (s *State) Style() *catalog.Style { return s.style }
func (s *State) Palette() *catalog.Palette { return s.palette }

// Ready reports whether a submit may compose a request from the current selection.
func (s *State) Ready() bool {
	if s.category == nil {
		return false
	}
	return !s.category.HasSubformats() || s.subformat != nil
}

// Clone returns an independent copy sharing the read-only catalog entries.
func (s *State) Clone() *State {
	out := *s
	out.expertMode = make(map[string]bool, len(s.expertMode))
	for k, v := range s.expertMode {
		out.expertMode[k] = v
	}
	return &out
}

// View is the JSON projection of a State.
type View struct {
	CategoryID    string          `json:"category_id,omitempty"`
	SubformatID   string          `json:"subformat_id,omitempty"`
	OrientationID string          `json:"orientation_id,omitempty"`
	StyleID       string          `json:"style_id,omitempty"`
	PaletteID     string          `json:"palette_id,omitempty"`
	ExpertMode    map[string]bool `json:"expert_mode"`
	Ready         bool            `json:"ready"`
}

func (s *State) View() View {
	v := View{ExpertMode: make(map[string]bool, len(s.expertMode)), Ready: s.Ready()}
	for k, val := range s.expertMode {
		v.ExpertMode[k] = val
	}
	if s.category != nil {
		v.CategoryID = s.category.ID
	}
	if s.subformat != nil {
		v.SubformatID = s.subformat.ID
	}
	if s.orientation != nil {
		v.OrientationID = s.orientation.ID
	}
	if s.style != nil {
		v.StyleID = s.style.ID
	}
	if s.palette != nil {
		v.PaletteID = s.palette.ID
	}
	return v
}
