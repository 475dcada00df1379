package render

import (
	"fmt"
	"math"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

// triangleAreaEps rejects triangles whose vertices are (numerically)
// collinear.
const triangleAreaEps = 1e-9

// renderTriangle draws a triangle with vertex names, side lengths and
// interior angles computed by the law of cosines.
func (r *Renderer) renderTriangle(data payload) (Figure, error) {
	pts := data.points("points")
	if len(pts) != 3 {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "triangle payload needs exactly three points")
	}
	if math.Abs(signedArea(pts[0], pts[1], pts[2])) < triangleAreaEps {
		return Figure{}, errors.New(errors.ErrCodeDegenerateGeometry, "triangle vertices are collinear")
	}

	box := BoundsOf(pts)
	t := FitTransform(box, r.bundle.CanvasSize, r.bundle.MarginFrac, true)

	a := dist(pts[1], pts[2]) // side opposite A
	b := dist(pts[0], pts[2])
	cLen := dist(pts[0], pts[1])

	cv := newCanvas(r.bundle)
	canvasPts := []Point{t.Apply(pts[0]), t.Apply(pts[1]), t.Apply(pts[2])}
	cv.polygon(canvasPts, "none", r.bundle.Accent, r.bundle.StrokeWidth)

	placer := NewLabelPlacer(r.bundle.CanvasSize)
	names := [3]string{"A", "B", "C"}
	opposite := [3]float64{a, b, cLen}
	for i, p := range canvasPts {
		cv.dot(p, r.bundle.StrokeWidth*1.5, r.bundle.Foreground)

		angle := interiorAngle(pts[i], pts[(i+1)%3], pts[(i+2)%3])
		label := fmt.Sprintf("%s (%.1f°)", names[i], angle*180/math.Pi)
		pos, _ := placer.Place(p, label, r.bundle.LabelSize)
		cv.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Foreground, label)
	}

	// Side labels at the midpoints, named after the opposite vertex.
	sideNames := [3]string{"a", "b", "c"}
	for i := range canvasPts {
		p1 := canvasPts[(i+1)%3]
		p2 := canvasPts[(i+2)%3]
		mid := Point{(p1.X + p2.X) / 2, (p1.Y + p2.Y) / 2}
		label := fmt.Sprintf("%s = %.4g", sideNames[i], opposite[i])
		pos, _ := placer.Place(mid, label, r.bundle.LabelSize)
		cv.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Muted, label)
	}

	return r.finish(cv, placer), nil
}

func dist(a, b Point) float64 { return math.Hypot(b.X-a.X, b.Y-a.Y) }

func signedArea(a, b, c Point) float64 {
	return ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)) / 2
}

// interiorAngle returns the angle at vertex v between rays to p and q.
func interiorAngle(v, p, q Point) float64 {
	opp := dist(p, q)
	s1 := dist(v, p)
	s2 := dist(v, q)
	// Law of cosines, clamped against floating point drift.
	cos := (s1*s1 + s2*s2 - opp*opp) / (2 * s1 * s2)
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos)
}
