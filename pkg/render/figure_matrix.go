package render

import (
	"fmt"
	"math"
	"strconv"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

// renderMatrix draws a rectangular grid of cells, each shaded by its
// value relative to the matrix range and overlaid with the value itself.
func (r *Renderer) renderMatrix(data payload) (Figure, error) {
	raw, ok := data["values"].([]any)
	if !ok || len(raw) == 0 {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "matrix payload has no values")
	}

	rows := make([][]float64, 0, len(raw))
	width := -1
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, rowRaw := range raw {
		row, ok := asFloats(rowRaw)
		if !ok || len(row) == 0 || (width != -1 && len(row) != width) {
			return Figure{}, errors.New(errors.ErrCodeInvalidInput, "matrix rows must be equal-length numeric arrays")
		}
		width = len(row)
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		rows = append(rows, row)
	}

	size := r.bundle.CanvasSize
	m := r.bundle.margin()
	inner := size - 2*m
	// The grid keeps square cells and is centered on the slack axis.
	cell := math.Min(inner/float64(width), inner/float64(len(rows)))
	gridW := cell * float64(width)
	gridH := cell * float64(len(rows))
	x0 := m + (inner-gridW)/2
	y0 := m + (inner-gridH)/2

	c := newCanvas(r.bundle)
	fontSize := math.Min(r.bundle.LabelSize, cell*0.4)

	for i, row := range rows {
		for j, v := range row {
			frac := 0.0
			if hi > lo {
				frac = (v - lo) / (hi - lo)
			}
			fill := lerpColor(r.bundle.Background, r.bundle.Accent, frac*0.75)
			x := x0 + float64(j)*cell
			y := y0 + float64(i)*cell
			c.rect(x, y, cell, cell, fill, r.bundle.Muted, r.bundle.StrokeWidth/2)
			c.text(Point{x + cell/2, y + cell/2 + fontSize*0.35}, fontSize, anchorMiddle,
				r.bundle.Foreground, strconv.FormatFloat(v, 'g', 4, 64))
		}
	}

	return r.finish(c, nil), nil
}

// lerpColor blends two #rrggbb colors; frac 0 gives a, 1 gives b.
func lerpColor(a, b string, frac float64) string {
	ar, ag, ab, okA := parseHex(a)
	br, bg, bb, okB := parseHex(b)
	if !okA || !okB {
		return a
	}
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + frac*(float64(y)-float64(x))))
	}
	return fmt.Sprintf("#%02x%02x%02x", mix(ar, br), mix(ag, bg), mix(ab, bb))
}

func parseHex(s string) (r, g, b uint8, ok bool) {
	if len(s) != 7 || s[0] != '#' {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), true
}
