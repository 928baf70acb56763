package card

import (
	"fmt"
	"image/color"

	"GiftChart/internal/model"
)

type backdropHex struct {
	name, center, edge string
}

var palette = []backdropHex{
	{"Black", "#363738", "#0e0f0f"},
	{"Electric Purple", "#ca70c6", "#9662d4"},
	{"Lavender", "#b789e4", "#8a5abc"},
	{"Cyberpunk", "#858ff3", "#865fd3"},
	{"Electric Indigo", "#a980f3", "#5b62d8"},
	{"Neon Blue", "#7596f9", "#6862e4"},
	{"Navy Blue", "#6c9edd", "#5c6ec9"},
	{"Sapphire", "#58a3c8", "#5379c2"},
	{"Sky Blue", "#58b4c8", "#538bc2"},
	{"Azure Blue", "#5db1cb", "#448bab"},
	{"Mint", "#5dc8b1", "#4abf9c"},
}

// Backdrops is the fixed palette, parsed once.
var Backdrops = mustParsePalette(palette)

// PickBackdrop chooses a palette entry using rnd.
func PickBackdrop(rnd model.RandSource) model.Backdrop {
	return Backdrops[rnd.Intn(len(Backdrops))]
}

func mustParsePalette(entries []backdropHex) []model.Backdrop {
	out := make([]model.Backdrop, len(entries))
	for i, e := range entries {
		center, err := ParseHex(e.center)
		if err != nil {
			panic(err)
		}
		edge, err := ParseHex(e.edge)
		if err != nil {
			panic(err)
		}
		out[i] = model.Backdrop{Name: e.name, Center: center, Edge: edge}
	}
	return out
}

// ParseHex parses "#rrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	var c color.RGBA
	if len(s) != 7 || s[0] != '#' {
		return c, fmt.Errorf("invalid hex colour %q", s)
	}
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	c.A = 0xFF
	return c, nil
}
