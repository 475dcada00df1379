package render

import (
	"fmt"
	"math"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

// lineWindow is the half-width of the data window drawn around the
// intersection point.
const lineWindow = 5.0

// renderLines draws two lines ax + by = c and marks their intersection,
// obtained via Cramer's rule.
func (r *Renderer) renderLines(data payload) (Figure, error) {
	raw, ok := data["lines"].([]any)
	if !ok || len(raw) != 2 {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "line payload needs exactly two lines")
	}
	l1, ok1 := asFloats(raw[0])
	l2, ok2 := asFloats(raw[1])
	if !ok1 || !ok2 || len(l1) != 3 || len(l2) != 3 {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "line coefficients must be [a, b, c] triples")
	}

	det := l1[0]*l2[1] - l2[0]*l1[1]
	if math.Abs(det) < 1e-12 {
		return Figure{}, errors.New(errors.ErrCodeSingularSystem, "lines are parallel or identical")
	}
	p := Point{
		X: (l1[2]*l2[1] - l2[2]*l1[1]) / det,
		Y: (l1[0]*l2[2] - l2[0]*l1[2]) / det,
	}

	box := Rect{p.X - lineWindow, p.Y - lineWindow, p.X + lineWindow, p.Y + lineWindow}
	t := FitTransform(box, r.bundle.CanvasSize, r.bundle.MarginFrac, true)

	c := newCanvas(r.bundle)
	c.axes(t)

	placer := NewLabelPlacer(r.bundle.CanvasSize)
	for i, coeffs := range [][]float64{l1, l2} {
		a, b := clipLine(coeffs, box)
		ca, cb := t.Apply(a), t.Apply(b)
		c.line(ca, cb, r.bundle.Accent, r.bundle.StrokeWidth)

		label := fmt.Sprintf("g%d: %.4gx + %.4gy = %.4g", i+1, coeffs[0], coeffs[1], coeffs[2])
		pos, _ := placer.Place(cb, label, r.bundle.LabelSize)
		c.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Muted, label)
	}

	cp := t.Apply(p)
	c.dot(cp, r.bundle.StrokeWidth*2, r.bundle.Foreground)
	label := fmt.Sprintf("S (%.4g, %.4g)", p.X, p.Y)
	pos, _ := placer.Place(cp, label, r.bundle.LabelSize)
	c.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Foreground, label)

	return r.finish(c, placer), nil
}

// clipLine returns the two points where ax + by = c crosses the data
// window boundary.
func clipLine(coeffs []float64, box Rect) (Point, Point) {
	a, b, c := coeffs[0], coeffs[1], coeffs[2]
	if math.Abs(b) > math.Abs(a) {
		// Mostly horizontal: parameterize by x.
		y := func(x float64) float64 { return (c - a*x) / b }
		return Point{box.MinX, y(box.MinX)}, Point{box.MaxX, y(box.MaxX)}
	}
	x := func(y float64) float64 { return (c - b*y) / a }
	return Point{x(box.MinY), box.MinY}, Point{x(box.MaxY), box.MaxY}
}
