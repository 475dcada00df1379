package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hwidmann/taskcanvas/pkg/errors"
	"github.com/hwidmann/taskcanvas/pkg/problem"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(DefaultBundle())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r
}

func spec(typ string, data map[string]any) *problem.VizSpec {
	return &problem.VizSpec{Type: typ, Data: data}
}

func TestRenderAllTypes(t *testing.T) {
	tests := []struct {
		name string
		spec *problem.VizSpec
	}{
		{"vector", spec(problem.VizVector2D, map[string]any{
			"points": []any{[]any{3.0, 4.0}, []any{-1.0, 2.0}},
		})},
		{"triangle", spec(problem.VizTriangle, map[string]any{
			"points": []any{[]any{0.0, 0.0}, []any{4.0, 0.0}, []any{0.0, 3.0}},
		})},
		{"circle from center", spec(problem.VizCircle, map[string]any{
			"center": []any{1.0, 1.0}, "radius": 2.5,
		})},
		{"circle from points", spec(problem.VizCircle, map[string]any{
			"points": []any{[]any{0.0, 0.0}, []any{2.0, 0.0}, []any{0.0, 2.0}},
		})},
		{"lines", spec(problem.VizLineIntersection, map[string]any{
			"lines": []any{[]any{1.0, 1.0, 2.0}, []any{1.0, -1.0, 0.0}},
		})},
		{"plot", spec(problem.VizFunctionPlot, map[string]any{
			"coeffs": []any{0.0, 0.0, 1.0},
		})},
		{"tree", spec(problem.VizTree, map[string]any{
			"root": map[string]any{"label": "a", "children": []any{
				map[string]any{"label": "b"},
				map[string]any{"label": "c", "children": []any{map[string]any{"label": "d"}}},
			}},
		})},
		{"graph", spec(problem.VizGraph, map[string]any{
			"nodes": []any{"a", "b", "c"},
			"edges": []any{[]any{"a", "b"}, []any{"b", "c"}},
		})},
		{"matrix", spec(problem.VizMatrix, map[string]any{
			"values": []any{[]any{1.0, 2.0}, []any{3.0, 4.0}},
		})},
	}

	r := testRenderer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fig, err := r.Render(tt.spec)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			svg := string(fig.SVG)
			if !strings.HasPrefix(svg, "<svg") || !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
				t.Error("output is not a complete SVG document")
			}
			if fig.Width != 1000 || fig.Height != 1000 {
				t.Errorf("figure is not the square canvas: %gx%g", fig.Width, fig.Height)
			}
			if !strings.Contains(svg, `viewBox="0 0 1000.0 1000.0"`) {
				t.Error("viewBox does not match the canvas")
			}
		})
	}
}

func TestRenderGeometryErrors(t *testing.T) {
	tests := []struct {
		name     string
		spec     *problem.VizSpec
		wantCode errors.Code
	}{
		{"collinear triangle", spec(problem.VizTriangle, map[string]any{
			"points": []any{[]any{0.0, 0.0}, []any{1.0, 1.0}, []any{2.0, 2.0}},
		}), errors.ErrCodeDegenerateGeometry},
		{"collinear circle points", spec(problem.VizCircle, map[string]any{
			"points": []any{[]any{0.0, 0.0}, []any{1.0, 0.0}, []any{2.0, 0.0}},
		}), errors.ErrCodeDegenerateGeometry},
		{"parallel lines", spec(problem.VizLineIntersection, map[string]any{
			"lines": []any{[]any{1.0, 1.0, 0.0}, []any{2.0, 2.0, 5.0}},
		}), errors.ErrCodeSingularSystem},
		{"identical lines", spec(problem.VizLineIntersection, map[string]any{
			"lines": []any{[]any{1.0, -1.0, 0.0}, []any{1.0, -1.0, 0.0}},
		}), errors.ErrCodeSingularSystem},
		{"unknown type", spec("pie_chart", nil), errors.ErrCodeInvalidVizType},
	}

	r := testRenderer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Render(tt.spec)
			if err == nil {
				t.Fatal("expected error")
			}
			if code := errors.GetCode(err); code != tt.wantCode {
				t.Errorf("code = %v, want %v", code, tt.wantCode)
			}
			if !errors.IsRenderError(err) {
				t.Error("geometry failures must classify as render errors")
			}
		})
	}
}

func TestRenderUnknownTypeMessageVerbatim(t *testing.T) {
	// Type tags come from user config; one containing a verb like %s must
	// land in the message untouched, not as a formatting artifact.
	r := testRenderer(t)

	_, err := r.Render(spec("pie%schart", nil))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "pie%schart") {
		t.Errorf("message should carry the type tag verbatim: %s", err)
	}
	if strings.Contains(err.Error(), "%!") {
		t.Errorf("message corrupted by formatting: %s", err)
	}

	_, err = ToDOT(spec("pie%schart", nil))
	if err == nil {
		t.Fatal("expected DOT error")
	}
	if !strings.Contains(err.Error(), "pie%schart") {
		t.Errorf("DOT message should carry the type tag verbatim: %s", err)
	}
}

func TestRenderGraphDeterministic(t *testing.T) {
	g := spec(problem.VizGraph, map[string]any{
		"nodes": []any{"a", "b", "c", "d", "e"},
		"edges": []any{[]any{"a", "b"}, []any{"b", "c"}, []any{"c", "d"}, []any{"d", "e"}, []any{"e", "a"}},
	})

	r := testRenderer(t)
	first, err := r.Render(g)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := r.Render(g)
		if err != nil {
			t.Fatalf("Render #%d: %v", i+2, err)
		}
		if !bytes.Equal(first.SVG, again.SVG) {
			t.Fatal("graph rendering is not deterministic across runs")
		}
	}
}

func TestRenderGraphSeedChangesLayout(t *testing.T) {
	g := spec(problem.VizGraph, map[string]any{
		"nodes": []any{"a", "b", "c", "d"},
		"edges": []any{[]any{"a", "b"}, []any{"c", "d"}},
	})

	b1 := DefaultBundle()
	b2 := DefaultBundle()
	b2.Seed = 99

	r1, _ := NewRenderer(b1)
	r2, _ := NewRenderer(b2)
	f1, err1 := r1.Render(g)
	f2, err2 := r2.Render(g)
	if err1 != nil || err2 != nil {
		t.Fatalf("Render: %v / %v", err1, err2)
	}
	if bytes.Equal(f1.SVG, f2.SVG) {
		t.Error("different seeds should move graph nodes")
	}
}

func TestRenderPlotFallbackDomain(t *testing.T) {
	// Coefficients large enough to overflow float64 within the explicit
	// domain force the fallback window.
	p := spec(problem.VizFunctionPlot, map[string]any{
		"coeffs": []any{0.0, 1e308},
		"domain": []any{-10.0, 10.0},
	})

	r := testRenderer(t)
	fig, err := r.Render(p)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	found := false
	for _, w := range fig.Warnings {
		if w == WarnFallbackDomain {
			found = true
		}
	}
	if !found {
		t.Errorf("missing fallback warning, got %v", fig.Warnings)
	}
}

func TestPlaceholder(t *testing.T) {
	cause := errors.New(errors.ErrCodeDegenerateGeometry, "triangle vertices are collinear")
	fig := Placeholder(DefaultBundle(), cause)

	if !strings.Contains(string(fig.SVG), "figure unavailable") {
		t.Error("placeholder must carry its notice text")
	}
	if len(fig.Warnings) != 1 || !strings.Contains(fig.Warnings[0], "collinear") {
		t.Errorf("placeholder must carry the cause as a warning, got %v", fig.Warnings)
	}
}

func TestEvalPoly(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		x      float64
		want   float64
	}{
		{"constant", []float64{7}, 3, 7},
		{"linear", []float64{1, 2}, 3, 7},
		{"quadratic", []float64{0, 0, 1}, -4, 16},
		{"cubic", []float64{1, -1, 0, 2}, 2, 15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := evalPoly(tt.coeffs, tt.x); got != tt.want {
				t.Errorf("evalPoly(%v, %g) = %g, want %g", tt.coeffs, tt.x, got, tt.want)
			}
		})
	}
}

func TestToDOT(t *testing.T) {
	g := spec(problem.VizGraph, map[string]any{
		"nodes": []any{"a", "b"},
		"edges": []any{[]any{"a", "b"}},
	})
	dot, err := ToDOT(g)
	if err != nil {
		t.Fatalf("ToDOT: %v", err)
	}
	for _, want := range []string{"graph G {", `"a"`, `"a" -- "b"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}

	tr := spec(problem.VizTree, map[string]any{
		"root": map[string]any{"label": "root", "children": []any{map[string]any{"label": "leaf"}}},
	})
	dot, err = ToDOT(tr)
	if err != nil {
		t.Fatalf("ToDOT tree: %v", err)
	}
	if !strings.Contains(dot, `label="leaf"`) {
		t.Errorf("tree DOT missing leaf label:\n%s", dot)
	}

	if _, err := ToDOT(spec(problem.VizMatrix, nil)); err == nil {
		t.Error("matrix specs have no DOT form and must be rejected")
	}
}
