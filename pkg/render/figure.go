package render

import (
	"github.com/hwidmann/taskcanvas/pkg/errors"
	"github.com/hwidmann/taskcanvas/pkg/problem"
)

// Figure is a finished square SVG fragment plus its metadata.
type Figure struct {
	SVG      []byte
	Width    float64
	Height   float64
	Warnings []string
}

// Renderer renders visualization specs with one shared style bundle.
type Renderer struct {
	bundle Bundle
}

// NewRenderer validates the bundle and builds a renderer. An invalid
// bundle is a programmer error at the call site, so it fails loudly.
func NewRenderer(b Bundle) (*Renderer, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{bundle: b}, nil
}

// Render dispatches over the closed set of figure types. The spec is
// assumed schema-valid; malformed payloads that slip through still fail
// with coded errors, never panics.
func (r *Renderer) Render(spec *problem.VizSpec) (Figure, error) {
	if spec == nil {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "nil visualization spec")
	}

	data := payload(spec.Data)
	switch spec.Type {
	case problem.VizVector2D:
		return r.renderVector(data)
	case problem.VizTriangle:
		return r.renderTriangle(data)
	case problem.VizCircle:
		return r.renderCircle(data)
	case problem.VizLineIntersection:
		return r.renderLines(data)
	case problem.VizFunctionPlot:
		return r.renderPlot(data)
	case problem.VizTree:
		return r.renderTree(data)
	case problem.VizGraph:
		return r.renderGraph(data)
	case problem.VizMatrix:
		return r.renderMatrix(data)
	}
	return Figure{}, errors.New(errors.ErrCodeInvalidVizType, "unknown visualization type %s", spec.Type)
}

// Placeholder renders the figure shown when the real one failed: a muted
// frame with a short notice. Documents survive a broken figure, they do
// not silently drop it.
func Placeholder(b Bundle, cause error) Figure {
	c := newCanvas(b)
	m := b.margin()
	c.rect(m, m, b.CanvasSize-2*m, b.CanvasSize-2*m, "none", b.Muted, b.StrokeWidth)
	c.dashedLine(Point{m, m}, Point{b.CanvasSize - m, b.CanvasSize - m}, b.Muted, b.StrokeWidth/2)
	c.dashedLine(Point{b.CanvasSize - m, m}, Point{m, b.CanvasSize - m}, b.Muted, b.StrokeWidth/2)
	c.text(Point{b.CanvasSize / 2, b.CanvasSize / 2}, b.LabelSize*1.25, anchorMiddle, b.Foreground,
		"figure unavailable")

	fig := Figure{SVG: c.bytes(), Width: b.CanvasSize, Height: b.CanvasSize}
	if cause != nil {
		fig.Warnings = append(fig.Warnings, "figure failed: "+errors.UserMessage(cause))
	}
	return fig
}

func (r *Renderer) finish(c *canvas, p *LabelPlacer, warnings ...string) Figure {
	fig := Figure{
		SVG:      c.bytes(),
		Width:    r.bundle.CanvasSize,
		Height:   r.bundle.CanvasSize,
		Warnings: warnings,
	}
	if p != nil && p.Crowded() {
		fig.Warnings = append(fig.Warnings, WarnCrowded)
	}
	return fig
}
