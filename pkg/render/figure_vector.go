package render

import (
	"fmt"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

// renderVector draws one or more arrows from a shared base point. The
// data box always includes the origin so the axes stay visible.
func (r *Renderer) renderVector(data payload) (Figure, error) {
	tips := data.points("points")
	if len(tips) == 0 {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "vector payload has no points")
	}
	base, hasBase := data.point("base")
	if !hasBase {
		base = Point{0, 0}
	}

	box := BoundsOf(tips).Include(base).Include(Point{0, 0})
	t := FitTransform(box, r.bundle.CanvasSize, r.bundle.MarginFrac, true)

	c := newCanvas(r.bundle)
	c.axes(t)

	placer := NewLabelPlacer(r.bundle.CanvasSize)
	origin := t.Apply(base)
	for i, tip := range tips {
		end := t.Apply(tip)
		c.arrow(origin, end, r.bundle.Accent, r.bundle.StrokeWidth)

		label := fmt.Sprintf("v%d (%.4g, %.4g)", i+1, tip.X-base.X, tip.Y-base.Y)
		pos, _ := placer.Place(end, label, r.bundle.LabelSize)
		c.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Foreground, label)
	}
	c.dot(origin, r.bundle.StrokeWidth*1.5, r.bundle.Foreground)

	return r.finish(c, placer), nil
}
