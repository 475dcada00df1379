package render

import (
	"math"
	"strconv"

	"github.com/hwidmann/taskcanvas/pkg/errors"
)

const (
	plotSamples = 160
	// Domain search: widen by plotGrowFactor per round until the sampled
	// y-range grows by less than plotStableTol, or the round cap is hit.
	plotGrowFactor = 1.25
	plotStableTol  = 0.01
	plotMaxRounds  = 16
)

// WarnFallbackDomain is attached when automatic domain selection failed
// and the plot fell back to the default window.
const WarnFallbackDomain = "function plot: automatic domain selection failed, using fallback domain [-5, 5]"

var defaultDomain = [2]float64{-5, 5}

// renderPlot draws a polynomial y = Σ coeffs[i]·xⁱ over an explicit or
// automatically chosen domain. Axes are scaled independently so steep
// polynomials stay readable.
func (r *Renderer) renderPlot(data payload) (Figure, error) {
	coeffs := data.floats("coeffs")
	if len(coeffs) == 0 {
		return Figure{}, errors.New(errors.ErrCodeInvalidInput, "function plot has no coefficients")
	}

	var warnings []string
	lo, hi, ok := plotDomain(data, coeffs)
	if !ok {
		lo, hi = defaultDomain[0], defaultDomain[1]
		warnings = append(warnings, WarnFallbackDomain)
	}

	pts := finitePoints(samplePoly(coeffs, lo, hi, plotSamples))
	if len(pts) < 2 {
		return Figure{}, errors.New(errors.ErrCodeRenderFailed, "polynomial has no finite values over the plot domain")
	}
	box := BoundsOf(pts).Include(Point{0, 0})
	// Anisotropic fit: a cubic over [-5,5] spans hundreds in y.
	t := FitTransform(box, r.bundle.CanvasSize, r.bundle.MarginFrac, false)

	c := newCanvas(r.bundle)
	c.axes(t)

	curve := make([]Point, len(pts))
	for i, p := range pts {
		curve[i] = t.Apply(p)
	}
	c.polyline(curve, r.bundle.Accent, r.bundle.StrokeWidth)

	placer := NewLabelPlacer(r.bundle.CanvasSize)
	label := polyLabel(coeffs)
	pos, _ := placer.Place(curve[len(curve)-1], label, r.bundle.LabelSize)
	c.text(pos, r.bundle.LabelSize, anchorMiddle, r.bundle.Foreground, label)

	return r.finish(c, placer, warnings...), nil
}

// plotDomain picks a drawing window. An explicit domain wins; otherwise
// the window grows from [-1, 1] until the sampled y-range stabilizes
// (the function's large-scale shape stops changing relative to the
// window). Non-finite samples abort the search.
func plotDomain(data payload, coeffs []float64) (lo, hi float64, ok bool) {
	if d := data.floats("domain"); len(d) == 2 && d[0] < d[1] {
		if finiteOver(coeffs, d[0], d[1]) {
			return d[0], d[1], true
		}
		return 0, 0, false
	}

	lo, hi = -1, 1
	prev := yRange(coeffs, lo, hi)
	if math.IsInf(prev, 0) || math.IsNaN(prev) {
		return 0, 0, false
	}
	for round := 0; round < plotMaxRounds; round++ {
		nlo, nhi := lo*plotGrowFactor, hi*plotGrowFactor
		next := yRange(coeffs, nlo, nhi)
		if math.IsInf(next, 0) || math.IsNaN(next) {
			break
		}
		if next-prev <= plotStableTol*math.Max(prev, 1) {
			return nlo, nhi, true
		}
		lo, hi, prev = nlo, nhi, next
	}
	return lo, hi, true
}

func yRange(coeffs []float64, lo, hi float64) float64 {
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range samplePoly(coeffs, lo, hi, plotSamples) {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxY - minY
}

func finiteOver(coeffs []float64, lo, hi float64) bool {
	for _, p := range samplePoly(coeffs, lo, hi, plotSamples) {
		if math.IsInf(p.Y, 0) || math.IsNaN(p.Y) {
			return false
		}
	}
	return true
}

// finitePoints drops samples where the polynomial overflowed float64.
func finitePoints(pts []Point) []Point {
	out := pts[:0]
	for _, p := range pts {
		if math.IsInf(p.Y, 0) || math.IsNaN(p.Y) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func samplePoly(coeffs []float64, lo, hi float64, n int) []Point {
	pts := make([]Point, n+1)
	step := (hi - lo) / float64(n)
	for i := 0; i <= n; i++ {
		x := lo + float64(i)*step
		pts[i] = Point{x, evalPoly(coeffs, x)}
	}
	return pts
}

// evalPoly evaluates the polynomial by Horner's scheme; coeffs holds the
// constant term first.
func evalPoly(coeffs []float64, x float64) float64 {
	y := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}
	return y
}

func polyLabel(coeffs []float64) string {
	out := "f(x) = "
	first := true
	for i := len(coeffs) - 1; i >= 0; i-- {
		c := coeffs[i]
		if c == 0 && len(coeffs) > 1 {
			continue
		}
		term := formatTerm(c, i, first)
		out += term
		first = false
	}
	return out
}

func formatTerm(c float64, power int, first bool) string {
	sign := ""
	if !first {
		sign = " + "
		if c < 0 {
			sign = " - "
			c = -c
		}
	}
	switch {
	case power == 0:
		return sign + trimFloat(c)
	case power == 1:
		return sign + coeffPrefix(c) + "x"
	default:
		return sign + coeffPrefix(c) + "x^" + trimFloat(float64(power))
	}
}

func coeffPrefix(c float64) string {
	if c == 1 {
		return ""
	}
	return trimFloat(c)
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 4, 64)
}
