package chart

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"GiftChart/internal/model"
)

// BuiltinPrefix marks a chain entry that names an embedded font.
const BuiltinPrefix = "builtin:"

var builtinFonts = map[string][]byte{
	"gobold":    gobold.TTF,
	"goregular": goregular.TTF,
}

// DefaultFontChain lists the font candidates tried when none are configured.
func DefaultFontChain() []string {
	return []string{
		"/System/Library/Fonts/SF-Pro-Rounded-Black.otf",
		"/Library/Fonts/SF-Pro-Rounded-Black.otf",
		"/System/Library/Fonts/SFNSDisplay.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
		BuiltinPrefix + "gobold",
	}
}

// FontBook is a parsed font from which sized faces are created.
// Faces are not safe for concurrent use; create them per render.
type FontBook struct {
	Source string
	font   *opentype.Font
}

// LoadFont tries each chain entry in order and returns the first that loads
// and parses. Exhausting the chain yields an error wrapping
// model.ErrRenderUnavailable.
func LoadFont(chain []string) (*FontBook, error) {
	var errs []error
	for _, src := range chain {
		data, err := readFontSource(src)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		f, err := opentype.Parse(data)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s: %w", src, err))
			continue
		}
		log.Printf("[INFO] font loaded: %s", src)
		return &FontBook{Source: src, font: f}, nil
	}
	if len(chain) == 0 {
		errs = append(errs, errors.New("empty font chain"))
	}
	return nil, fmt.Errorf("%w: no usable font: %w", model.ErrRenderUnavailable, errors.Join(errs...))
}

func readFontSource(src string) ([]byte, error) {
	if name, ok := strings.CutPrefix(src, BuiltinPrefix); ok {
		data, found := builtinFonts[name]
		if !found {
			return nil, fmt.Errorf("unknown builtin font %q", name)
		}
		return data, nil
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", src, err)
	}
	return data, nil
}

// Face returns a new face at size pixels.
func (b *FontBook) Face(size float64) (font.Face, error) {
	face, err := opentype.NewFace(b.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: face %.0fpx from %s: %w", model.ErrRenderUnavailable, size, b.Source, err)
	}
	return face, nil
}
