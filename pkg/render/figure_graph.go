package render

import (
	"math"
	"math/rand"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

const (
	graphIterations = 200
	graphInitTemp   = 0.1
)

// renderGraph draws an undirected graph with a Fruchterman-Reingold
// force-directed layout. The PRNG is seeded from the bundle so the same
// input always yields the same picture.
func (r *Renderer) renderGraph(data payload) (Figure, error) {
	names := data.strings("nodes")
	if len(names) == 0 {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "graph payload has no nodes")
	}

	index := make(map[string]int, len(names))
	for i, name := range names {
		index[name] = i
	}

	var edges [][2]int
	if raw, ok := data["edges"].([]any); ok {
		for _, rawEdge := range raw {
			pair, ok := rawEdge.([]any)
			if !ok || len(pair) != 2 {
				continue
			}
			from, okF := pair[0].(string)
			to, okT := pair[1].(string)
			if !okF || !okT {
				continue
			}
			fi, okF := index[from]
			ti, okT := index[to]
			if !okF || !okT {
				return Figure{}, errors.New(errors.ErrCodeInvalidInput, "graph edge references unknown node")
			}
			edges = append(edges, [2]int{fi, ti})
		}
	}

	pos := layoutForceDirected(len(names), edges, r.bundle.Seed)

	box := BoundsOf(pos)
	t := FitTransform(box, r.bundle.CanvasSize, r.bundle.MarginFrac, true)

	c := newCanvas(r.bundle)
	canvasPos := make([]Point, len(pos))
	for i, p := range pos {
		canvasPos[i] = t.Apply(p)
	}
	for _, e := range edges {
		c.line(canvasPos[e[0]], canvasPos[e[1]], r.bundle.Muted, r.bundle.StrokeWidth)
	}

	placer := NewLabelPlacer(r.bundle.CanvasSize)
	nodeR := r.bundle.LabelSize * 0.8
	for _, p := range canvasPos {
		c.circle(p, nodeR, r.bundle.Background, r.bundle.Accent, r.bundle.StrokeWidth)
		placer.Reserve(p.X-nodeR, p.Y-nodeR, p.X+nodeR, p.Y+nodeR)
	}
	for i, p := range canvasPos {
		lpos, _ := placer.Place(p, names[i], r.bundle.LabelSize)
		c.text(lpos, r.bundle.LabelSize, anchorMiddle, r.bundle.Foreground, names[i])
	}

	return r.finish(c, placer), nil
}

// layoutForceDirected runs Fruchterman-Reingold in the unit square:
// all pairs repel, edges attract, displacement is capped by a linearly
// cooling temperature.
func layoutForceDirected(n int, edges [][2]int, seed uint64) []Point {
	rng := rand.New(rand.NewSource(int64(seed)))

	pos := make([]Point, n)
	for i := range pos {
		pos[i] = Point{rng.Float64(), rng.Float64()}
	}
	if n == 1 {
		return pos
	}

	k := math.Sqrt(1.0 / float64(n)) // ideal pairwise distance
	disp := make([]Point, n)

	for iter := 0; iter < graphIterations; iter++ {
		for i := range disp {
			disp[i] = Point{}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i].X - pos[j].X
				dy := pos[i].Y - pos[j].Y
				d := math.Hypot(dx, dy)
				if d < 1e-9 {
					// Coincident nodes get a deterministic nudge.
					dx, dy, d = 1e-3, 1e-3, 1e-3*math.Sqrt2
				}
				f := k * k / d / d
				disp[i].X += dx * f
				disp[i].Y += dy * f
				disp[j].X -= dx * f
				disp[j].Y -= dy * f
			}
		}

		for _, e := range edges {
			i, j := e[0], e[1]
			dx := pos[i].X - pos[j].X
			dy := pos[i].Y - pos[j].Y
			d := math.Hypot(dx, dy)
			if d < 1e-9 {
				continue
			}
			f := d / k
			disp[i].X -= dx / d * f
			disp[i].Y -= dy / d * f
			disp[j].X += dx / d * f
			disp[j].Y += dy / d * f
		}

		temp := graphInitTemp * (1 - float64(iter)/float64(graphIterations))
		for i := range pos {
			d := math.Hypot(disp[i].X, disp[i].Y)
			if d < 1e-12 {
				continue
			}
			step := math.Min(d, temp)
			pos[i].X += disp[i].X / d * step
			pos[i].Y += disp[i].Y / d * step
		}
	}
	return pos
}
