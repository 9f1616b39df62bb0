package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"igpt/internal/domain"
)

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Catalog exposes the static category, style and palette trees. It has no
// mutation methods; everything is built once by New.
type Catalog struct {
	categories  []*Category
	byID        map[string]*Category
	styles      []*Style
	styleByID   map[string]*Style
	palettes    []*Palette
	paletteByID map[string]*Palette
}

// New builds a catalog and verifies its integrity: ids are unique across the
// whole category tree (categories, sub-formats and orientations share one id
// space), styles and palettes have unique ids, every dimension is positive.
func New(categories []Category, styles []Style, palettes []Palette) (*Catalog, error) {
	c := &Catalog{
		byID:        make(map[string]*Category, len(categories)),
		styleByID:   make(map[string]*Style, len(styles)),
		paletteByID: make(map[string]*Palette, len(palettes)),
	}

	treeIDs := make(map[string]struct{})
	claim := func(id, kind string) error {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("catalog: %s with empty id", kind)
		}
		if _, dup := treeIDs[id]; dup {
			return fmt.Errorf("catalog: duplicate id %q (%s)", id, kind)
		}
		treeIDs[id] = struct{}{}
		return nil
	}

	for i := range categories {
		cat := categories[i]
		if err := claim(cat.ID, "category"); err != nil {
			return nil, err
		}
		if err := validateCategory(&cat, claim); err != nil {
			return nil, err
		}
		c.categories = append(c.categories, &cat)
		c.byID[cat.ID] = &cat
	}

	for i := range styles {
		st := styles[i]
		if strings.TrimSpace(st.ID) == "" {
			return nil, fmt.Errorf("catalog: style with empty id")
		}
		if _, dup := c.styleByID[st.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate style id %q", st.ID)
		}
		c.styles = append(c.styles, &st)
		c.styleByID[st.ID] = &st
	}

	for i := range palettes {
		p := palettes[i]
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("catalog: palette with empty id")
		}
		if _, dup := c.paletteByID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate palette id %q", p.ID)
		}
		if len(p.Colors) == 0 {
			return nil, fmt.Errorf("catalog: palette %q has no colors", p.ID)
		}
		for _, color := range p.Colors {
			if !hexColorPattern.MatchString(color) {
				return nil, fmt.Errorf("catalog: palette %q: invalid color %q", p.ID, color)
			}
		}
		c.palettes = append(c.palettes, &p)
		c.paletteByID[p.ID] = &p
	}

	return c, nil
}

func validateCategory(cat *Category, claim func(id, kind string) error) error {
	switch cat.ExpertMode {
	case ExpertModeToggleable, ExpertModeFixedAssisted, ExpertModeFixedExpert:
	default:
		return fmt.Errorf("catalog: category %q: unknown expert mode policy %q", cat.ID, cat.ExpertMode)
	}
	switch cat.Kind {
	case domain.MediaKindImage, domain.MediaKindVideo:
	default:
		return fmt.Errorf("catalog: category %q: unknown media kind %q", cat.ID, cat.Kind)
	}
	if cat.FreeformOverride {
		if cat.HasSubformats() {
			return fmt.Errorf("catalog: free-form category %q cannot have sub-formats", cat.ID)
		}
		for lang, fragment := range cat.BasePrompt {
			if strings.TrimSpace(fragment) != "" {
				return fmt.Errorf("catalog: free-form category %q has a %s base prompt", cat.ID, lang)
			}
		}
	}
	for _, sf := range cat.Subformats {
		if err := claim(sf.ID, "subformat"); err != nil {
			return err
		}
		if !sf.Dimensions.Valid() {
			return fmt.Errorf("catalog: subformat %q: invalid dimensions %v", sf.ID, sf.Dimensions)
		}
		for _, o := range sf.Orientations {
			if err := claim(o.ID, "orientation"); err != nil {
				return err
			}
			if !o.Dimensions.Valid() {
				return fmt.Errorf("catalog: orientation %q: invalid dimensions %v", o.ID, o.Dimensions)
			}
		}
	}
	return nil
}

// Load validates and returns the built-in catalog.
func Load() (*Catalog, error) {
	return New(defaultCategories, defaultStyles, defaultPalettes)
}

// Default returns the built-in catalog. It panics if the static data is
// inconsistent, which is checked by the package tests.
func Default() *Catalog {
	c, err := Load()
	if err != nil {
		panic(err)
	}
	return c
}

// LookupCategory returns the category with the given id or domain.ErrNotFound.
func (c *Catalog) LookupCategory(id string) (*Category, error) {
	if cat, ok := c.byID[id]; ok {
		return cat, nil
	}
	return nil, fmt.Errorf("category %q: %w", id, domain.ErrNotFound)
}

// LookupStyle returns the style with the given id or domain.ErrNotFound.
func (c *Catalog) LookupStyle(id string) (*Style, error) {
	if st, ok := c.styleByID[id]; ok {
		return st, nil
	}
	return nil, fmt.Errorf("style %q: %w", id, domain.ErrNotFound)
}

// LookupPalette returns the palette with the given id or domain.ErrNotFound.
func (c *Catalog) LookupPalette(id string) (*Palette, error) {
	if p, ok := c.paletteByID[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("palette %q: %w", id, domain.ErrNotFound)
}

// Categories returns the categories in display order.
func (c *Catalog) Categories() []*Category {
	out := make([]*Category, len(c.categories))
	copy(out, c.categories)
	return out
}

func (c *Catalog) Styles() []*Style {
	out := make([]*Style, len(c.styles))
	copy(out, c.styles)
	return out
}

func (c *Catalog) Palettes() []*Palette {
	out := make([]*Palette, len(c.palettes))
	copy(out, c.palettes)
	return out
}
