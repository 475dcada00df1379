package render

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestFitTransform(t *testing.T) {
	tests := []struct {
		name    string
		data    Rect
		uniform bool
		in      Point
		want    Point
	}{
		{
			name: "unit square fills inner area",
			data: Rect{0, 0, 1, 1}, uniform: true,
			in:   Point{0, 0},
			want: Point{80, 920}, // bottom-left maps to lower-left of inner square
		},
		{
			name: "y axis flips",
			data: Rect{0, 0, 1, 1}, uniform: true,
			in:   Point{0, 1},
			want: Point{80, 80},
		},
		{
			name: "uniform centers slack axis",
			data: Rect{0, 0, 2, 1}, uniform: true,
			in:   Point{1, 0.5}, // data center
			want: Point{500, 500},
		},
		{
			name: "anisotropic stretches both axes",
			data: Rect{0, 0, 2, 100}, uniform: false,
			in:   Point{2, 100},
			want: Point{920, 80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FitTransform(tt.data, 1000, 0.08, tt.uniform)
			got := tr.Apply(tt.in)
			if !almostEqual(got.X, tt.want.X) || !almostEqual(got.Y, tt.want.Y) {
				t.Errorf("Apply(%v) = (%.2f, %.2f), want (%.2f, %.2f)",
					tt.in, got.X, got.Y, tt.want.X, tt.want.Y)
			}
		})
	}
}

func TestFitTransformUniformPreservesAspect(t *testing.T) {
	tr := FitTransform(Rect{0, 0, 4, 1}, 1000, 0.1, true)
	if !almostEqual(tr.SX, -tr.SY) {
		t.Errorf("uniform fit has unequal scales: sx=%v sy=%v", tr.SX, tr.SY)
	}
}

func TestFitTransformDegenerate(t *testing.T) {
	tests := []struct {
		name string
		data Rect
	}{
		{"single point", Rect{3, 7, 3, 7}},
		{"horizontal line", Rect{-2, 5, 2, 5}},
		{"vertical line", Rect{1, -3, 1, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := FitTransform(tt.data, 1000, 0.08, true)
			if math.IsInf(tr.SX, 0) || math.IsNaN(tr.SX) || math.IsInf(tr.SY, 0) || math.IsNaN(tr.SY) {
				t.Fatalf("degenerate box produced non-finite scale: %+v", tr)
			}
			center := tr.Apply(Point{(tt.data.MinX + tt.data.MaxX) / 2, (tt.data.MinY + tt.data.MaxY) / 2})
			if !almostEqual(center.X, 500) || !almostEqual(center.Y, 500) {
				t.Errorf("degenerate box not centered: got (%.2f, %.2f)", center.X, center.Y)
			}
		})
	}
}

func TestFitTransformStaysInsideMargin(t *testing.T) {
	data := Rect{-13.7, 2.1, 44.9, 908}
	tr := FitTransform(data, 1000, 0.08, true)

	corners := []Point{
		{data.MinX, data.MinY}, {data.MinX, data.MaxY},
		{data.MaxX, data.MinY}, {data.MaxX, data.MaxY},
	}
	for _, p := range corners {
		got := tr.Apply(p)
		if got.X < 80-1e-9 || got.X > 920+1e-9 || got.Y < 80-1e-9 || got.Y > 920+1e-9 {
			t.Errorf("corner %v mapped outside inner square: (%.2f, %.2f)", p, got.X, got.Y)
		}
	}
}

func TestBoundsOf(t *testing.T) {
	got := BoundsOf([]Point{{3, -1}, {-2, 4}, {0, 0}})
	want := Rect{-2, -1, 3, 4}
	if got != want {
		t.Errorf("BoundsOf = %+v, want %+v", got, want)
	}
}
