package render

import (
	"fmt"
	"math"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

// renderCircle draws a circle given either center and radius or three
// boundary points (circumcircle).
func (r *Renderer) renderCircle(data payload) (Figure, error) {
	center, radius, err := circleGeometry(data)
	if err != nil {
		return Figure{}, err
	}

	box := Rect{
		MinX: center.X - radius, MinY: center.Y - radius,
		MaxX: center.X + radius, MaxY: center.Y + radius,
	}
	t := FitTransform(box, r.bundle.CanvasSize, r.bundle.MarginFrac, true)

	c := newCanvas(r.bundle)
	cc := t.Apply(center)
	cr := t.ScaleLen(radius)
	c.circle(cc, cr, "none", r.bundle.Accent, r.bundle.StrokeWidth)
	c.dot(cc, r.bundle.StrokeWidth*1.5, r.bundle.Foreground)

	// Radius marker drawn to the east.
	edge := Point{cc.X + cr, cc.Y}
	c.dashedLine(cc, edge, r.bundle.Muted, r.bundle.StrokeWidth/2)

	placer := NewLabelPlacer(r.bundle.CanvasSize)
	centerLabel := fmt.Sprintf("M (%.4g, %.4g)", center.X, center.Y)
	pos, _ := placer.Place(cc, centerLabel, r.bundle.LabelSize)
	c.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Foreground, centerLabel)

	radiusLabel := fmt.Sprintf("r = %.4g", radius)
	mid := Point{cc.X + cr/2, cc.Y}
	pos, _ = placer.Place(mid, radiusLabel, r.bundle.LabelSize)
	c.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Muted, radiusLabel)

	// Boundary points are marked when the circle came from three points.
	for _, p := range data.points("points") {
		cp := t.Apply(p)
		c.dot(cp, r.bundle.StrokeWidth*1.5, r.bundle.Accent)
	}

	return r.finish(c, placer), nil
}

func circleGeometry(data payload) (Point, float64, error) {
	if center, ok := data.point("center"); ok {
		radius, ok := data.float("radius")
		if !ok || radius <= 0 {
			return Point{}, 0, errors.New(errors.ErrCodeInvalidInput, "circle radius must be positive")
		}
		return center, radius, nil
	}

	pts := data.points("points")
	if len(pts) != 3 {
		return Point{}, 0, errors.New(errors.ErrCodeInvalidInput, "circle payload needs center/radius or three points")
	}
	return circumcircle(pts[0], pts[1], pts[2])
}

// circumcircle solves the perpendicular-bisector system for the circle
// through three points. Collinear points have no finite circumcircle.
func circumcircle(a, b, c Point) (Point, float64, error) {
	d := 2 * ((b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y))
	if math.Abs(d) < 1e-9 {
		return Point{}, 0, errors.New(errors.ErrCodeDegenerateGeometry, "circle points are collinear")
	}

	abSq := b.X*b.X - a.X*a.X + b.Y*b.Y - a.Y*a.Y
	acSq := c.X*c.X - a.X*a.X + c.Y*c.Y - a.Y*a.Y

	center := Point{
		X: (abSq*(c.Y-a.Y) - acSq*(b.Y-a.Y)) / d,
		Y: (acSq*(b.X-a.X) - abSq*(c.X-a.X)) / d,
	}
	return center, dist(center, a), nil
}
