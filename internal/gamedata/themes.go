package gamedata

import (
	"errors"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// ThemeDef is the look of the dungeon from a given depth onwards.
type ThemeDef struct {
	ID         string `json:"id"`         // Unique identifier (e.g., "caverns")
	Name       string `json:"name"`       // Display name
	MinLevel   int    `json:"minLevel"`   // First level the theme applies to
	WallColor  string `json:"wallColor"`  // Hex color code
	FloorColor string `json:"floorColor"` // Hex color code
	WallGlyph  string `json:"wallGlyph"`  // Single character for walls
	FloorGlyph string `json:"floorGlyph"` // Single character for floor
}

// WallRune returns the wall glyph as a rune for rendering.
func (t *ThemeDef) WallRune() rune {
	return firstRune(t.WallGlyph, '#')
}

// FloorRune returns the floor glyph as a rune for rendering.
func (t *ThemeDef) FloorRune() rune {
	return firstRune(t.FloorGlyph, '.')
}

// WallTCellColor returns the wall color, or gray if it does not parse.
func (t *ThemeDef) WallTCellColor() tcell.Color {
	c, err := ParseHexColor(t.WallColor)
	if err != nil {
		return tcell.ColorGray
	}
	return c
}

// FloorTCellColor returns the floor color, or dark gray if it does not parse.
func (t *ThemeDef) FloorTCellColor() tcell.Color {
	c, err := ParseHexColor(t.FloorColor)
	if err != nil {
		return tcell.ColorDarkGray
	}
	return c
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}

// ThemesFile represents the structure of themes.json.
type ThemesFile struct {
	Themes []ThemeDef `json:"themes"`
}

// LoadThemes loads theme definitions from the embedded themes.json file.
func LoadThemes() ([]ThemeDef, error) {
	file, err := Load[ThemesFile]("themes.json")
	if err != nil {
		return nil, err
	}
	return file.Themes, nil
}

// ThemeRegistry maps dungeon depth to a theme.
type ThemeRegistry struct {
	themes []ThemeDef // Sorted by MinLevel
}

// NewThemeRegistry creates a registry from theme definitions.
func NewThemeRegistry(themes []ThemeDef) *ThemeRegistry {
	sorted := make([]ThemeDef, len(themes))
	copy(sorted, themes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MinLevel < sorted[j].MinLevel
	})
	return &ThemeRegistry{themes: sorted}
}

// LoadThemeRegistry loads a registry from the embedded themes.json.
func LoadThemeRegistry() (*ThemeRegistry, error) {
	themes, err := LoadThemes()
	if err != nil {
		return nil, err
	}
	if len(themes) == 0 {
		return nil, errors.New("no themes loaded from themes.json")
	}
	return NewThemeRegistry(themes), nil
}

// ForLevel returns the deepest theme whose MinLevel is at or below level.
// Levels shallower than every theme get the first one.
func (r *ThemeRegistry) ForLevel(level int) *ThemeDef {
	if len(r.themes) == 0 {
		return nil
	}
	chosen := &r.themes[0]
	for i := range r.themes {
		if r.themes[i].MinLevel <= level {
			chosen = &r.themes[i]
		}
	}
	return chosen
}

// Thresholds returns the levels at which the theme changes, ascending.
func (r *ThemeRegistry) Thresholds() []int {
	out := make([]int, 0, len(r.themes))
	for _, t := range r.themes {
		if t.MinLevel > 0 {
			out = append(out, t.MinLevel)
		}
	}
	return out
}
