package render

import (
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

// Bundle collects every stylistic knob the pipeline exposes: canvas
// geometry, typography bounds, colors and the graph layout seed. A bundle
// is loaded once from TOML and shared read-only by the renderer, the
// layout engine and the assembler.
type Bundle struct {
	// CanvasSize is the side length of the square viewport in SVG units.
	CanvasSize float64 `toml:"canvas_size" validate:"gt=0"`
	// MarginFrac is the fraction of the canvas kept clear on each side
	// when fitting data coordinates.
	MarginFrac float64 `toml:"margin_frac" validate:"gte=0,lt=0.5"`

	// FontMin and FontMax bound the body font search during layout.
	FontMin float64 `toml:"font_min" validate:"gt=0"`
	FontMax float64 `toml:"font_max" validate:"gtefield=FontMin"`
	// LineHeight is the line box height as a multiple of the font size.
	LineHeight float64 `toml:"line_height" validate:"gte=1"`
	// LabelSize is the font size used for figure annotations.
	LabelSize float64 `toml:"label_size" validate:"gt=0"`

	Background string `toml:"background" validate:"hexcolor"`
	Foreground string `toml:"foreground" validate:"hexcolor"`
	Accent     string `toml:"accent" validate:"hexcolor"`
	Muted      string `toml:"muted" validate:"hexcolor"`

	StrokeWidth float64 `toml:"stroke_width" validate:"gt=0"`

	// Seed drives the force-directed graph layout PRNG.
	Seed uint64 `toml:"seed"`
}

// DefaultBundle returns the built-in style used when no bundle file is
// given on the command line.
func DefaultBundle() Bundle {
	return Bundle{
		CanvasSize:  1000,
		MarginFrac:  0.08,
		FontMin:     11,
		FontMax:     22,
		LineHeight:  1.4,
		LabelSize:   16,
		Background:  "#ffffff",
		Foreground:  "#1a1a2e",
		Accent:      "#e94560",
		Muted:       "#9a9ab0",
		StrokeWidth: 2,
		Seed:        1,
	}
}

var bundleValidate = validator.New()

// Validate checks the bundle against its field constraints.
func (b Bundle) Validate() error {
	if err := bundleValidate.Struct(b); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidBundle, err, "invalid style bundle")
	}
	return nil
}

// LoadBundle reads and validates a TOML bundle file. Fields absent from
// the file keep their defaults, so partial bundles are fine.
func LoadBundle(path string) (Bundle, error) {
	b := DefaultBundle()
	if _, err := toml.DecodeFile(path, &b); err != nil {
		return Bundle{}, errors.Wrap(errors.ErrCodeInvalidBundle, err, "parse bundle file")
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// margin returns the absolute margin in canvas units.
func (b Bundle) margin() float64 { return b.CanvasSize * b.MarginFrac }
